package validator

import (
	"github.com/aretw0/turing/pkg/domain"
)

// Validate checks a deterministic machine definition and returns the first
// violated invariant. It never modifies def.
//
// Order: symbol shape, input subset, blank symbol, transition table, initial state,
// final states, final states without outgoing transitions.
func Validate(def domain.Definition) error {
	a := def.Alphabet()
	return Run(def.Base, a,
		Symbols,
		InputSubset,
		BlankSymbol,
		transitionsCheck(def.Transitions),
		InitialState,
		NonFinalInitialState,
		FinalStates,
		finalStateTransitionsCheck(def.Transitions),
	)
}

func transitionsCheck(t domain.Transitions) Check {
	return func(_ domain.Base, a domain.Alphabet) error {
		return Transitions(t, a)
	}
}

func finalStateTransitionsCheck(t domain.Transitions) Check {
	return func(b domain.Base, _ domain.Alphabet) error {
		return FinalStateTransitions(b, t)
	}
}

// Transitions checks that the table only references declared states and
// tape symbols, and only uses L, R or N as directions.
// States and symbols are visited in sorted order so the reported error is stable.
func Transitions(t domain.Transitions, a domain.Alphabet) error {
	for _, state := range t.SourceStates() {
		if !a.HasState(state) {
			return domain.NewValidationError(domain.KindInvalidState, state,
				"transition state is not valid (%s)", state)
		}
		paths := t[state]
		for _, sym := range paths.Symbols() {
			if !a.HasTapeSymbol(sym) {
				return domain.NewValidationError(domain.KindInvalidSymbol, sym,
					"transition symbol %s for state %s is not valid", sym, state)
			}
		}
		for _, sym := range paths.Symbols() {
			if err := transitionResult(paths[sym], a); err != nil {
				return err
			}
		}
	}
	return nil
}

func transitionResult(r domain.TransitionResult, a domain.Alphabet) error {
	if !a.HasState(r.Next) {
		return domain.NewValidationError(domain.KindInvalidState, r.Next,
			"result state is not valid (%s)", r.Next)
	}
	if !a.HasTapeSymbol(r.Write) {
		return domain.NewValidationError(domain.KindInvalidSymbol, r.Write,
			"result symbol is not valid (%s)", r.Write)
	}
	if !r.Move.Valid() {
		return domain.NewValidationError(domain.KindInvalidDirection, r.Move,
			"result direction is not valid (%s)", r.Move)
	}
	return nil
}

// FinalStateTransitions ensures final states halt: none is a source key.
func FinalStateTransitions(b domain.Base, t domain.Transitions) error {
	for _, s := range b.FinalStates {
		if _, ok := t[s]; ok {
			return domain.NewValidationError(domain.KindFinalStateTransitions, s,
				"final state %s has transitions defined", s)
		}
	}
	return nil
}
