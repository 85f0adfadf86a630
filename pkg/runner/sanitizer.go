package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 64KB.
	DefaultMaxInputSize = 1 << 16
	// EnvMaxInputSize is the environment variable to override the default.
	EnvMaxInputSize = "TURING_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge    = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("input contains invalid UTF-8 sequences")
	ErrControlCharacter = errors.New("input contains control characters")
)

// SanitizeInput guards inputs arriving from outside (CLI, HTTP, MCP)
// before they reach a machine. Inputs are rejected, never rewritten,
// since every rune is a tape symbol.
func SanitizeInput(input string) (string, error) {
	limit := getMaxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	for i, r := range input {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: %U at byte %d", ErrControlCharacter, r, i)
		}
	}
	return input, nil
}

func getMaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
