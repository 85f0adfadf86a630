package runtime

import (
	"context"
	"time"

	"github.com/aretw0/turing/pkg/domain"
)

func (e *Engine) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Machine: e.name}
}

func (e *Engine) emitStart(ctx context.Context, input string, cfg domain.Configuration) {
	e.logger.Debug("run started", "input", input, "state", cfg.State)
	if e.hooks.OnStart != nil {
		e.hooks.OnStart(ctx, &domain.RunEvent{
			EventBase:     e.base(domain.EventRunStart),
			Input:         input,
			Configuration: cfg,
		})
	}
}

func (e *Engine) emitStep(ctx context.Context, step int, from domain.Configuration, res StepResult) {
	e.logger.Debug("step",
		"step", step,
		"from", from.State,
		"read", res.Read,
		"to", res.Transition.Next,
		"write", res.Transition.Write,
		"move", res.Transition.Move,
	)
	if e.hooks.OnStep != nil {
		e.hooks.OnStep(ctx, &domain.StepEvent{
			EventBase:     e.base(domain.EventStep),
			Step:          step,
			From:          from.State,
			Read:          res.Read,
			Transition:    res.Transition,
			Configuration: res.Configuration,
		})
	}
}

func (e *Engine) emitAccept(ctx context.Context, steps int, cfg domain.Configuration) {
	e.logger.Debug("input accepted", "steps", steps, "state", cfg.State)
	if e.hooks.OnAccept != nil {
		e.hooks.OnAccept(ctx, &domain.HaltEvent{
			EventBase:     e.base(domain.EventAccept),
			Steps:         steps,
			Outcome:       domain.OutcomeAccepted,
			Configuration: cfg,
		})
	}
}

func (e *Engine) emitReject(ctx context.Context, steps int, cfg domain.Configuration, rej *domain.RejectionError) {
	e.logger.Debug("input rejected", "steps", steps, "state", rej.State, "symbol", rej.Symbol)
	if e.hooks.OnReject != nil {
		e.hooks.OnReject(ctx, &domain.HaltEvent{
			EventBase:     e.base(domain.EventReject),
			Steps:         steps,
			Outcome:       domain.OutcomeRejected,
			Configuration: cfg,
			Reason:        rej.Error(),
		})
	}
}

// emitStepLimit reports a bounded run that did not halt. It goes through
// OnReject because the machine stopped without accepting.
func (e *Engine) emitStepLimit(ctx context.Context, cfg domain.Configuration, limit *domain.StepLimitError) {
	e.logger.Debug("step limit reached", "limit", limit.Limit, "state", cfg.State)
	if e.hooks.OnReject != nil {
		e.hooks.OnReject(ctx, &domain.HaltEvent{
			EventBase:     e.base(domain.EventReject),
			Steps:         limit.Limit,
			Outcome:       domain.OutcomeStepLimit,
			Configuration: cfg,
			Reason:        limit.Error(),
		})
	}
}
