package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/domain"
)

// Runner executes a machine over one input and reports through a Handler.
type Runner struct {
	// Handler presents the run. Defaults to a TextHandler on stdout.
	Handler Handler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// MaxSteps bounds the run. Zero means unbounded.
	MaxSteps int
}

// NewRunner creates a Runner. Without options it writes a text trace to
// stdout and never gives up on a run.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdout)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run checks input, then walks m over it, streaming every configuration to
// the handler. Rejection and the step limit are outcomes on the Result.
// The error is non-nil for invalid input, cancellation and handler
// failures.
func (r *Runner) Run(ctx context.Context, m *turing.Machine, input string) (*turing.Result, error) {
	clean, err := SanitizeInput(input)
	if err != nil {
		return nil, err
	}
	if err := m.CheckInput(clean); err != nil {
		return nil, err
	}

	if err := r.Handler.Begin(ctx, m.Inspect(), clean); err != nil {
		return nil, fmt.Errorf("output error: %w", err)
	}

	res, runErr := m.Walk(ctx, clean, r.MaxSteps, func(step int, cfg domain.Configuration) error {
		return r.Handler.Configuration(ctx, step, cfg)
	})
	if res == nil {
		return nil, runErr
	}

	r.Logger.Debug("run finished", "machine", m.Name(), "outcome", res.Outcome, "steps", res.Steps)

	if err := r.Handler.End(ctx, res); err != nil && runErr == nil {
		runErr = fmt.Errorf("output error: %w", err)
	}
	return res, runErr
}
