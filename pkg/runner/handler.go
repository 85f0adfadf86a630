package runner

import (
	"context"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// Handler defines how a run is presented.
// This allows switching between Text (CLI/TUI) and JSON (structured) modes.
type Handler interface {
	// Begin is called once, before the initial configuration.
	Begin(ctx context.Context, info turing.Info, input string) error

	// Configuration is called for every configuration the machine enters.
	// step is the number of transitions taken to reach it.
	Configuration(ctx context.Context, step int, cfg domain.Configuration) error

	// End is called once with the outcome, also for canceled runs.
	End(ctx context.Context, res *turing.Result) error
}

// ContentRenderer transforms markdown before it is written out.
// This allows TUI rendering (markdown to ANSI) without coupling this package.
type ContentRenderer func(string) (string, error)

// StatusStyler decorates an outcome label, e.g. with terminal colors.
type StatusStyler func(outcome domain.Outcome, label string) string
