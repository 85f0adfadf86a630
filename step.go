package turing

import "github.com/aretw0/turing/internal/runtime"

// StepResult is the tagged result of Machine.Step.
type StepResult = runtime.StepResult

// StepOutcome tags a StepResult.
type StepOutcome = runtime.Outcome

const (
	StepContinue = runtime.Continue
	StepAccept   = runtime.Accept
	StepReject   = runtime.Reject
)
