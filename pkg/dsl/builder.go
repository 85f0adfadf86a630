package dsl

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/validator"
)

// Builder manages the definition construction.
type Builder struct {
	def    domain.Definition
	states ordered[domain.State]
	tape   ordered[domain.Symbol]
	rules  map[domain.State]*StateBuilder
	errs   []error
}

// New creates a new definition builder.
func New(name string) *Builder {
	return &Builder{
		def:   domain.Definition{Name: name, Transitions: make(domain.Transitions)},
		rules: make(map[domain.State]*StateBuilder),
	}
}

// Describe sets the description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Input declares the input alphabet. Input symbols are tape symbols too.
func (b *Builder) Input(symbols ...domain.Symbol) *Builder {
	b.def.InputSymbols = append(b.def.InputSymbols, symbols...)
	b.tape.add(symbols...)
	return b
}

// Tape declares extra tape symbols that no rule mentions.
func (b *Builder) Tape(symbols ...domain.Symbol) *Builder {
	b.tape.add(symbols...)
	return b
}

// Blank sets the blank symbol.
func (b *Builder) Blank(symbol domain.Symbol) *Builder {
	b.def.BlankSymbol = symbol
	b.tape.add(symbol)
	return b
}

// Initial sets the initial state.
func (b *Builder) Initial(state domain.State) *Builder {
	b.def.InitialState = state
	b.states.add(state)
	return b
}

// Final adds final states.
func (b *Builder) Final(states ...domain.State) *Builder {
	b.def.FinalStates = append(b.def.FinalStates, states...)
	b.states.add(states...)
	return b
}

// States declares states that no rule mentions.
func (b *Builder) States(states ...domain.State) *Builder {
	b.states.add(states...)
	return b
}

// State returns the rule builder for a source state.
// Calling it again for the same state returns the same builder.
func (b *Builder) State(state domain.State) *StateBuilder {
	if sb, ok := b.rules[state]; ok {
		return sb
	}
	b.states.add(state)
	sb := &StateBuilder{state: state, builder: b}
	b.rules[state] = sb
	return sb
}

func (b *Builder) addRule(from domain.State, read domain.Symbol, res domain.TransitionResult) {
	paths, ok := b.def.Transitions[from]
	if !ok {
		paths = make(domain.Paths)
		b.def.Transitions[from] = paths
	}
	if _, dup := paths[read]; dup {
		b.errs = append(b.errs, fmt.Errorf("duplicate rule for (%s, %s)", from, read))
		return
	}
	paths[read] = res
	b.states.add(res.Next)
	b.tape.add(read, res.Write)
}

// Build returns the validated definition.
func (b *Builder) Build() (domain.Definition, error) {
	errs := slices.Clone(b.errs)
	for _, state := range b.states.items() {
		if sb, ok := b.rules[state]; ok && sb.pending != nil {
			errs = append(errs, errIncompleteRule(sb.state, sb.pending.read))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return domain.Definition{}, fmt.Errorf("failed to build %q: %w", b.def.Name, err)
	}

	def := b.def.Clone()
	def.States = b.states.items()
	def.TapeSymbols = b.tape.items()
	if err := validator.Validate(def); err != nil {
		return domain.Definition{}, fmt.Errorf("failed to build %q: %w", b.def.Name, err)
	}
	return def, nil
}

// Machine builds the definition and compiles it.
func (b *Builder) Machine(opts ...turing.Option) (*turing.Machine, error) {
	def, err := b.Build()
	if err != nil {
		return nil, err
	}
	return turing.New(def, opts...)
}

// Loader builds every definition into an in-memory loader.
func Loader(builders ...*Builder) (*memory.Loader, error) {
	defs := make([]domain.Definition, 0, len(builders))
	for _, b := range builders {
		def, err := b.Build()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	loader, err := memory.NewLoader(defs...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

func errIncompleteRule(state domain.State, read domain.Symbol) error {
	return fmt.Errorf("rule for (%s, %s) has no target state", state, read)
}

// ordered is an insertion-ordered set.
type ordered[T comparable] struct {
	seen map[T]struct{}
	list []T
}

func (o *ordered[T]) add(items ...T) {
	if o.seen == nil {
		o.seen = make(map[T]struct{})
	}
	for _, it := range items {
		if _, ok := o.seen[it]; ok {
			continue
		}
		o.seen[it] = struct{}{}
		o.list = append(o.list, it)
	}
}

func (o *ordered[T]) items() []T {
	return append([]T(nil), o.list...)
}
