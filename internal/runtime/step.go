package runtime

import (
	"github.com/aretw0/turing/pkg/domain"
)

// Outcome tags the result of a single step.
type Outcome int

const (
	// Continue means the machine moved to a non-final configuration.
	Continue Outcome = iota
	// Accept means the machine is in a final configuration.
	Accept
	// Reject means there is no transition for the current (state, symbol).
	Reject
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	}
	return "unknown"
}

// StepResult is the tagged result of Step.
type StepResult struct {
	Outcome Outcome

	// Configuration is the next configuration for Continue and Accept,
	// and the unchanged current configuration for Reject.
	Configuration domain.Configuration

	// Read and Transition describe the transition taken, if any.
	Read       domain.Symbol
	Transition domain.TransitionResult

	// Rejection is set when Outcome is Reject.
	Rejection *domain.RejectionError
}

// Step is a pure function from one configuration to the next.
// Stepping a configuration that is already final returns Accept with the
// configuration unchanged.
func (e *Engine) Step(cfg domain.Configuration) StepResult {
	if e.alphabet.IsFinal(cfg.State) {
		return StepResult{Outcome: Accept, Configuration: cfg}
	}

	symbol := cfg.Tape.Read()
	tr, ok := e.transitions.Lookup(cfg.State, symbol)
	if !ok {
		return StepResult{
			Outcome:       Reject,
			Configuration: cfg,
			Read:          symbol,
			Rejection:     &domain.RejectionError{State: cfg.State, Symbol: symbol},
		}
	}

	tape := cfg.Tape.Write(tr.Write).Move(tr.Move)
	next := domain.NewConfiguration(tr.Next, tape)

	outcome := Continue
	if e.alphabet.IsFinal(next.State) {
		outcome = Accept
	}
	return StepResult{
		Outcome:       outcome,
		Configuration: next,
		Read:          symbol,
		Transition:    tr,
	}
}
