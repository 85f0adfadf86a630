package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// LogHooks returns hooks that write an audit record per event. Steps are
// logged at Debug, run boundaries at Info.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStart: func(ctx context.Context, e *domain.RunEvent) {
			logger.InfoContext(ctx, "run_start", "machine", e.Machine, "input", e.Input)
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step",
				"machine", e.Machine,
				"step", e.Step,
				"from", e.From,
				"read", e.Read,
				"to", e.Transition.Next,
			)
		},
		OnAccept: func(ctx context.Context, e *domain.HaltEvent) {
			logger.InfoContext(ctx, "run_halt", "machine", e.Machine, "outcome", e.Outcome, "steps", e.Steps)
		},
		OnReject: func(ctx context.Context, e *domain.HaltEvent) {
			logger.InfoContext(ctx, "run_halt", "machine", e.Machine, "outcome", e.Outcome, "steps", e.Steps, "reason", e.Reason)
		},
	}
}
