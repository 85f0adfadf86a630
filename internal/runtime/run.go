package runtime

import (
	"context"
	"iter"

	"github.com/aretw0/turing/pkg/domain"
)

type runConfig struct {
	maxSteps int
}

// RunOption configures a single run.
type RunOption func(*runConfig)

// WithMaxSteps bounds the run to n transitions. Without it a run that never
// halts yields configurations forever. n <= 0 means unbounded.
func WithMaxSteps(n int) RunOption {
	return func(c *runConfig) {
		c.maxSteps = n
	}
}

// Run returns the lazy sequence of configurations the machine passes
// through on input.
//
// The initial configuration is always yielded first. The sequence ends after
// a final configuration is yielded (acceptance). If a non-final
// configuration has no transition, a *domain.RejectionError is yielded with a
// zero configuration and the sequence ends. A bounded run that exhausts its
// budget yields a *domain.StepLimitError, reported to the OnReject hook with
// outcome step_limit; a canceled ctx yields ctx.Err().
//
// The sequence only advances when the consumer pulls the next element.
// Each call to the returned function starts a fresh, identical run.
func (e *Engine) Run(ctx context.Context, input string, opts ...RunOption) iter.Seq2[domain.Configuration, error] {
	var rc runConfig
	for _, opt := range opts {
		opt(&rc)
	}

	return func(yield func(domain.Configuration, error) bool) {
		current := e.Start(input)
		e.emitStart(ctx, input, current)
		if !yield(current, nil) {
			return
		}

		for step := 1; ; step++ {
			if e.alphabet.IsFinal(current.State) {
				return
			}
			if err := ctx.Err(); err != nil {
				e.logger.Debug("run canceled", "step", step, "err", err)
				yield(domain.Configuration{}, err)
				return
			}
			if rc.maxSteps > 0 && step > rc.maxSteps {
				limit := &domain.StepLimitError{Limit: rc.maxSteps}
				e.emitStepLimit(ctx, current, limit)
				yield(domain.Configuration{}, limit)
				return
			}

			res := e.Step(current)
			if res.Outcome == Reject {
				res.Rejection.Step = step
				e.emitReject(ctx, step-1, current, res.Rejection)
				yield(domain.Configuration{}, res.Rejection)
				return
			}

			e.emitStep(ctx, step, current, res)
			current = res.Configuration
			if res.Outcome == Accept {
				e.emitAccept(ctx, step, current)
			}
			if !yield(current, nil) {
				return
			}
		}
	}
}
