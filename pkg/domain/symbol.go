package domain

import (
	"fmt"
	"unicode/utf8"
)

// Symbol is a single character usable on the tape.
type Symbol string

// ParseSymbol validates that s holds exactly one character.
func ParseSymbol(s string) (Symbol, error) {
	if utf8.RuneCountInString(s) != 1 {
		return "", fmt.Errorf("symbol %q must be exactly one character", s)
	}
	return Symbol(s), nil
}

// SplitSymbols breaks an input string into its symbols.
func SplitSymbols(input string) []Symbol {
	symbols := make([]Symbol, 0, utf8.RuneCountInString(input))
	for _, r := range input {
		symbols = append(symbols, Symbol(string(r)))
	}
	return symbols
}

// Valid reports whether the symbol holds exactly one character.
func (s Symbol) Valid() bool {
	return utf8.RuneCountInString(string(s)) == 1
}
