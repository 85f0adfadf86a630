package validator

import (
	"slices"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Check is a single invariant over a base definition.
type Check func(b domain.Base, a domain.Alphabet) error

// InputSubset ensures every input symbol is also a tape symbol.
func InputSubset(b domain.Base, a domain.Alphabet) error {
	var missing []string
	for _, s := range b.InputSymbols {
		if !a.HasTapeSymbol(s) {
			missing = append(missing, string(s))
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return domain.NewValidationError(domain.KindMissingSymbol, strings.Join(missing, ","),
			"the set of tape symbols is missing symbols from the input symbol set (%s)", strings.Join(missing, ", "))
	}
	return nil
}

// Symbols ensures every declared symbol is a single character.
func Symbols(b domain.Base, _ domain.Alphabet) error {
	for _, s := range b.TapeSymbols {
		if !s.Valid() {
			return domain.NewValidationError(domain.KindInvalidSymbol, s, "tape symbol %q must be exactly one character", s)
		}
	}
	for _, s := range b.InputSymbols {
		if !s.Valid() {
			return domain.NewValidationError(domain.KindInvalidSymbol, s, "input symbol %q must be exactly one character", s)
		}
	}
	return nil
}

// BlankSymbol ensures the blank is a tape symbol and never an input symbol.
func BlankSymbol(b domain.Base, a domain.Alphabet) error {
	if !a.HasTapeSymbol(b.BlankSymbol) {
		return domain.NewValidationError(domain.KindInvalidSymbol, b.BlankSymbol,
			"blank symbol %q is not a tape symbol", b.BlankSymbol)
	}
	if a.HasInputSymbol(b.BlankSymbol) {
		return domain.NewValidationError(domain.KindInvalidSymbol, b.BlankSymbol,
			"blank symbol %q cannot be an input symbol", b.BlankSymbol)
	}
	return nil
}

// InitialState ensures the initial state is declared.
func InitialState(b domain.Base, a domain.Alphabet) error {
	if !a.HasState(b.InitialState) {
		return domain.NewValidationError(domain.KindInvalidState, b.InitialState,
			"%q is not a valid initial state", b.InitialState)
	}
	return nil
}

// NonFinalInitialState ensures acceptance is never immediate.
func NonFinalInitialState(b domain.Base, a domain.Alphabet) error {
	if a.IsFinal(b.InitialState) {
		return domain.NewValidationError(domain.KindInitialState, b.InitialState,
			"initial state %q cannot be a final state", b.InitialState)
	}
	return nil
}

// FinalStates ensures every final state is declared.
func FinalStates(b domain.Base, a domain.Alphabet) error {
	var invalid []string
	for _, s := range b.FinalStates {
		if !a.HasState(s) {
			invalid = append(invalid, string(s))
		}
	}
	if len(invalid) > 0 {
		slices.Sort(invalid)
		return domain.NewValidationError(domain.KindInvalidState, strings.Join(invalid, ","),
			"final states are not valid (%s)", strings.Join(invalid, ", "))
	}
	return nil
}

// Run applies checks in order and returns the first failure.
func Run(b domain.Base, a domain.Alphabet, checks ...Check) error {
	for _, check := range checks {
		if err := check(b, a); err != nil {
			return err
		}
	}
	return nil
}
