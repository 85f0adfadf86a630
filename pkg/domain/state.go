package domain

// State is an opaque identifier of a control state.
type State string

// Base holds the fields shared by every Turing machine variant.
type Base struct {
	States       []State  `json:"states" yaml:"states" mapstructure:"states"`
	InputSymbols []Symbol `json:"input_symbols" yaml:"input_symbols" mapstructure:"input_symbols"`
	TapeSymbols  []Symbol `json:"tape_symbols" yaml:"tape_symbols" mapstructure:"tape_symbols"`
	InitialState State    `json:"initial_state" yaml:"initial_state" mapstructure:"initial_state"`
	BlankSymbol  Symbol   `json:"blank_symbol" yaml:"blank_symbol" mapstructure:"blank_symbol"`
	FinalStates  []State  `json:"final_states" yaml:"final_states" mapstructure:"final_states"`
}

// Definition describes a deterministic Turing machine.
type Definition struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	Base `yaml:",inline" mapstructure:",squash"`

	Transitions Transitions `json:"transitions" yaml:"transitions" mapstructure:"transitions"`
}

// Alphabet returns the set index of the definition.
func (b Base) Alphabet() Alphabet {
	a := Alphabet{
		states: make(map[State]struct{}, len(b.States)),
		input:  make(map[Symbol]struct{}, len(b.InputSymbols)),
		tape:   make(map[Symbol]struct{}, len(b.TapeSymbols)),
		final:  make(map[State]struct{}, len(b.FinalStates)),
	}
	for _, s := range b.States {
		a.states[s] = struct{}{}
	}
	for _, s := range b.InputSymbols {
		a.input[s] = struct{}{}
	}
	for _, s := range b.TapeSymbols {
		a.tape[s] = struct{}{}
	}
	for _, s := range b.FinalStates {
		a.final[s] = struct{}{}
	}
	return a
}

// Clone returns a deep copy, so callers can hold a definition that nobody else mutates.
func (d Definition) Clone() Definition {
	out := d
	out.States = append([]State(nil), d.States...)
	out.InputSymbols = append([]Symbol(nil), d.InputSymbols...)
	out.TapeSymbols = append([]Symbol(nil), d.TapeSymbols...)
	out.FinalStates = append([]State(nil), d.FinalStates...)
	out.Transitions = d.Transitions.Clone()
	return out
}

// Alphabet is a read-only membership index over a Base.
type Alphabet struct {
	states map[State]struct{}
	input  map[Symbol]struct{}
	tape   map[Symbol]struct{}
	final  map[State]struct{}
}

func (a Alphabet) HasState(s State) bool {
	_, ok := a.states[s]
	return ok
}

func (a Alphabet) HasInputSymbol(s Symbol) bool {
	_, ok := a.input[s]
	return ok
}

func (a Alphabet) HasTapeSymbol(s Symbol) bool {
	_, ok := a.tape[s]
	return ok
}

// IsFinal reports whether s is a halting (accepting) state.
func (a Alphabet) IsFinal(s State) bool {
	_, ok := a.final[s]
	return ok
}
