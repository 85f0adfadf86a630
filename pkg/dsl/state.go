package dsl

import "github.com/aretw0/turing/pkg/domain"

type pendingRule struct {
	read  domain.Symbol
	write domain.Symbol
	move  domain.Direction
}

// StateBuilder provides a fluent API for the rules leaving one state.
// A rule starts with On, optionally sets the written symbol and the head
// move, and is completed by Goto. The written symbol defaults to the read
// symbol and the move defaults to NoMove.
type StateBuilder struct {
	state   domain.State
	builder *Builder
	pending *pendingRule
}

// On starts a rule for the symbol under the head.
func (s *StateBuilder) On(read domain.Symbol) *StateBuilder {
	s.flush()
	s.pending = &pendingRule{read: read, write: read, move: domain.NoMove}
	return s
}

// Write sets the symbol written by the current rule.
func (s *StateBuilder) Write(symbol domain.Symbol) *StateBuilder {
	if s.pending != nil {
		s.pending.write = symbol
	}
	return s
}

// Move sets the head move of the current rule.
func (s *StateBuilder) Move(d domain.Direction) *StateBuilder {
	if s.pending != nil {
		s.pending.move = d
	}
	return s
}

// Left is Move(domain.Left).
func (s *StateBuilder) Left() *StateBuilder { return s.Move(domain.Left) }

// Right is Move(domain.Right).
func (s *StateBuilder) Right() *StateBuilder { return s.Move(domain.Right) }

// Stay is Move(domain.NoMove).
func (s *StateBuilder) Stay() *StateBuilder { return s.Move(domain.NoMove) }

// Goto completes the current rule with its target state.
func (s *StateBuilder) Goto(next domain.State) *StateBuilder {
	if s.pending == nil {
		return s
	}
	p := s.pending
	s.pending = nil
	s.builder.addRule(s.state, p.read, domain.TransitionResult{Next: next, Write: p.write, Move: p.move})
	return s
}

// flush drops an unfinished rule so Build can report it.
func (s *StateBuilder) flush() {
	if s.pending != nil {
		s.builder.errs = append(s.builder.errs, errIncompleteRule(s.state, s.pending.read))
		s.pending = nil
	}
}

// Done returns the machine builder.
func (s *StateBuilder) Done() *Builder { return s.builder }
