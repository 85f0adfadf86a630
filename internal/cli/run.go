package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/tui"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/muesli/termenv"
)

// RunOptions configures a single run from the command line.
type RunOptions struct {
	Ref      string
	Input    string
	MaxSteps int
	JSON     bool
	Quiet    bool
	// Pretty forces styled output on or off. Nil picks it when the output
	// is a terminal.
	Pretty *bool
}

// Exit codes by outcome.
const (
	ExitAccepted  = 0
	ExitError     = 1
	ExitRejected  = 2
	ExitStepLimit = 3
	ExitCanceled  = 130
)

// ExitCode maps a run result to the process exit status.
func ExitCode(res *turing.Result) int {
	if res == nil {
		return ExitError
	}
	switch res.Outcome {
	case domain.OutcomeAccepted:
		return ExitAccepted
	case domain.OutcomeRejected:
		return ExitRejected
	case domain.OutcomeStepLimit:
		return ExitStepLimit
	case domain.OutcomeCanceled:
		return ExitCanceled
	}
	return ExitError
}

// Run resolves the machine and streams its run to w. An interrupted run is
// reported through the canceled Result rather than an error.
func Run(ctx context.Context, ws *Workspace, w io.Writer, opts RunOptions) (*turing.Result, error) {
	m, err := ws.Machine(ctx, opts.Ref)
	if err != nil {
		return nil, err
	}

	handler, err := newHandler(w, opts)
	if err != nil {
		return nil, err
	}
	r := runner.NewRunner(
		runner.WithHandler(handler),
		runner.WithLogger(ws.Logger),
		runner.WithMaxSteps(opts.MaxSteps),
	)

	res, err := r.Run(ctx, m, opts.Input)
	if res != nil && errors.Is(err, context.Canceled) {
		ws.Logger.Info("run interrupted", "machine", m.Name(), "steps", res.Steps)
		return res, nil
	}
	return res, err
}

func newHandler(w io.Writer, opts RunOptions) (runner.Handler, error) {
	if opts.JSON {
		return runner.NewJSONHandler(w), nil
	}

	textOpts := []runner.TextHandlerOption{runner.WithQuiet(opts.Quiet)}
	if pretty, profile, width := prettyOutput(w, opts.Pretty); pretty {
		render, err := tui.NewRenderer(width)
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
		textOpts = append(textOpts,
			runner.WithTextRenderer(render),
			runner.WithTextStyler(tui.StatusStyler(profile)),
		)
	}
	return runner.NewTextHandler(w, textOpts...), nil
}

// prettyOutput decides on styled output for w and picks its color profile
// and wrap width.
func prettyOutput(w io.Writer, force *bool) (bool, termenv.Profile, int) {
	f, isFile := w.(*os.File)
	terminal := isFile && tui.IsTerminal(f)

	if force != nil && !*force {
		return false, termenv.Ascii, 0
	}
	if !terminal {
		if force == nil {
			return false, termenv.Ascii, 0
		}
		return true, termenv.ANSI256, 80
	}
	return true, termenv.NewOutput(f).EnvColorProfile(), tui.Width(f)
}
