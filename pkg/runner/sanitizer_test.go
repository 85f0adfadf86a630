package runner

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeInput_SizeLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "16")
	limit := 16

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Repeat("a", tt.inputSize)
			_, err := SanitizeInput(input)
			if tt.wantErr {
				if !errors.Is(err, ErrInputTooLarge) {
					t.Errorf("SanitizeInput() expected ErrInputTooLarge for size %d, got %v", tt.inputSize, err)
				}
			} else if err != nil {
				t.Errorf("SanitizeInput() unexpected error: %v", err)
			}
		})
	}
}

func TestSanitizeInput_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"Invalid UTF-8", "01\xff", ErrInvalidUTF8},
		{"Newline", "01\n", ErrControlCharacter},
		{"Escape", "\x1b[31m01", ErrControlCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SanitizeInput(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("SanitizeInput(%q) = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestSanitizeInput_KeepsSymbols(t *testing.T) {
	got, err := SanitizeInput("0 1␣ä")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0 1␣ä" {
		t.Errorf("input was rewritten: %q", got)
	}
}
