package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventAccept   EventType = "accept"
	EventReject   EventType = "reject"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeRejected  Outcome = "rejected"
	OutcomeStepLimit Outcome = "step_limit"
	OutcomeCanceled  Outcome = "canceled"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Machine   string    `json:"machine,omitempty"`
}

// RunEvent is emitted once when a run yields its initial configuration.
type RunEvent struct {
	EventBase
	Input         string        `json:"input"`
	Configuration Configuration `json:"configuration"`
}

// StepEvent is emitted after every transition.
type StepEvent struct {
	EventBase
	Step          int              `json:"step"`
	From          State            `json:"from"`
	Read          Symbol           `json:"read"`
	Transition    TransitionResult `json:"transition"`
	Configuration Configuration    `json:"configuration"`
}

// HaltEvent is emitted when a run accepts or rejects.
type HaltEvent struct {
	EventBase
	Steps         int           `json:"steps"`
	Outcome       Outcome       `json:"outcome"`
	Configuration Configuration `json:"configuration"`
	Reason        string        `json:"reason,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the goroutine consuming the run.
type LifecycleHooks struct {
	OnStart  func(context.Context, *RunEvent)
	OnStep   func(context.Context, *StepEvent)
	OnAccept func(context.Context, *HaltEvent)
	OnReject func(context.Context, *HaltEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStart:  chain(h.OnStart, other.OnStart),
		OnStep:   chain(h.OnStep, other.OnStep),
		OnAccept: chain(h.OnAccept, other.OnAccept),
		OnReject: chain(h.OnReject, other.OnReject),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
