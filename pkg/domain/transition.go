package domain

import (
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// TransitionResult is what the machine does when a (state, symbol) pair matches.
// It can be written as a tuple ([next, write, move]) or as a mapping.
type TransitionResult struct {
	Next  State     `json:"next" yaml:"next" mapstructure:"next"`
	Write Symbol    `json:"write" yaml:"write" mapstructure:"write"`
	Move  Direction `json:"move" yaml:"move" mapstructure:"move"`
}

// Paths maps the symbol under the head to the transition taken.
type Paths map[Symbol]TransitionResult

// Transitions is the transition function, keyed by source state.
// A missing (state, symbol) pair means there is no defined continuation.
type Transitions map[State]Paths

// Lookup returns the transition for the given state and symbol.
func (t Transitions) Lookup(state State, symbol Symbol) (TransitionResult, bool) {
	paths, ok := t[state]
	if !ok {
		return TransitionResult{}, false
	}
	result, ok := paths[symbol]
	return result, ok
}

// SourceStates returns the states with outgoing transitions, sorted.
func (t Transitions) SourceStates() []State {
	states := make([]State, 0, len(t))
	for s := range t {
		states = append(states, s)
	}
	slices.Sort(states)
	return states
}

// Symbols returns the symbols with a defined path, sorted.
func (p Paths) Symbols() []Symbol {
	symbols := make([]Symbol, 0, len(p))
	for s := range p {
		symbols = append(symbols, s)
	}
	slices.Sort(symbols)
	return symbols
}

// Clone returns a deep copy of the table.
func (t Transitions) Clone() Transitions {
	if t == nil {
		return nil
	}
	out := make(Transitions, len(t))
	for state, paths := range t {
		cp := make(Paths, len(paths))
		for sym, res := range paths {
			cp[sym] = res
		}
		out[state] = cp
	}
	return out
}

func (r *TransitionResult) fromTuple(parts []string) error {
	if len(parts) != 3 {
		return fmt.Errorf("transition tuple must have 3 elements (next, write, move), got %d", len(parts))
	}
	r.Next = State(parts[0])
	r.Write = Symbol(parts[1])
	if err := r.Move.UnmarshalText([]byte(parts[2])); err != nil {
		return err
	}
	return nil
}

// UnmarshalJSON accepts ["q1", "x", "R"] or {"next": "q1", "write": "x", "move": "R"}.
func (r *TransitionResult) UnmarshalJSON(data []byte) error {
	var tuple []string
	if err := json.Unmarshal(data, &tuple); err == nil {
		return r.fromTuple(tuple)
	}
	type plain TransitionResult
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid transition result: %w", err)
	}
	*r = TransitionResult(p)
	return nil
}

// UnmarshalYAML accepts a sequence or a mapping node.
func (r *TransitionResult) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var tuple []string
		if err := node.Decode(&tuple); err != nil {
			return err
		}
		return r.fromTuple(tuple)
	}
	type plain TransitionResult
	var p plain
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("invalid transition result: %w", err)
	}
	*r = TransitionResult(p)
	return nil
}

// MarshalYAML writes the compact tuple form.
func (r TransitionResult) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []string{string(r.Next), string(r.Write), string(r.Move)} {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: v})
	}
	return node, nil
}
