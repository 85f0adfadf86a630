package domain

import (
	"errors"
	"fmt"
)

// ErrorKind names the structural invariant a definition violates.
type ErrorKind string

const (
	KindInvalidState          ErrorKind = "invalid-state"
	KindInvalidSymbol         ErrorKind = "invalid-symbol"
	KindInvalidDirection      ErrorKind = "invalid-direction"
	KindFinalStateTransitions ErrorKind = "final-state-transitions"
	KindMissingSymbol         ErrorKind = "missing-symbol"
	KindInitialState          ErrorKind = "initial-state"
)

// Structural errors, reported by definition validation.
var (
	ErrInvalidState          = errors.New("invalid state")
	ErrInvalidSymbol         = errors.New("invalid symbol")
	ErrInvalidDirection      = errors.New("invalid direction")
	ErrFinalStateTransitions = errors.New("final state has transitions")
	ErrMissingSymbol         = errors.New("missing symbol")
	ErrInitialState          = errors.New("invalid initial state")
)

// Execution outcomes that are not definition errors.
var (
	// ErrRejected means the input is not accepted by a well-formed machine.
	ErrRejected = errors.New("input rejected")
	// ErrStepLimit means a bounded run did not halt within its budget.
	ErrStepLimit = errors.New("step limit reached")
	// ErrInvalidInput means the input contains symbols outside the input alphabet.
	ErrInvalidInput = errors.New("invalid input")
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrMachineNotFound is returned when a loader has no definition under a name.
var ErrMachineNotFound = errors.New("machine not found")

var kindSentinels = map[ErrorKind]error{
	KindInvalidState:          ErrInvalidState,
	KindInvalidSymbol:         ErrInvalidSymbol,
	KindInvalidDirection:      ErrInvalidDirection,
	KindFinalStateTransitions: ErrFinalStateTransitions,
	KindMissingSymbol:         ErrMissingSymbol,
	KindInitialState:          ErrInitialState,
}

// ValidationError identifies the first invariant a definition violates
// and the offending value.
type ValidationError struct {
	Kind    ErrorKind
	Value   string
	Message string
}

// NewValidationError formats a message for the given kind.
func NewValidationError(kind ErrorKind, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Kind:    kind,
		Value:   fmt.Sprint(value),
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the sentinel for the kind, so errors.Is works.
func (e *ValidationError) Unwrap() error {
	return kindSentinels[e.Kind]
}

// RejectionError is raised at the step where a non-final configuration
// has no transition for its (state, symbol) pair.
type RejectionError struct {
	State  State
	Symbol Symbol
	Step   int
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("the machine entered a non-final configuration for which no transition is defined (%s, %s) at step %d",
		e.State, e.Symbol, e.Step)
}

func (e *RejectionError) Unwrap() error { return ErrRejected }

// StepLimitError is returned by bounded runs that exhaust their budget.
type StepLimitError struct {
	Limit int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("machine did not halt within %d steps", e.Limit)
}

func (e *StepLimitError) Unwrap() error { return ErrStepLimit }

// InputError reports an input symbol outside the input alphabet.
type InputError struct {
	Symbol   Symbol
	Position int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input symbol %q at position %d is not in the input alphabet", e.Symbol, e.Position)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
