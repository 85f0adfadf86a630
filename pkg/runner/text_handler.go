package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// TextHandler writes a human readable trace.
//
//	[0] q0: 01
//	        ^
type TextHandler struct {
	Writer   io.Writer
	Renderer ContentRenderer
	Styler   StatusStyler

	// Quiet suppresses per-step output; only the summary is written.
	Quiet bool
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextRenderer renders the summary as markdown.
func WithTextRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextStyler decorates the outcome label.
func WithTextStyler(styler StatusStyler) TextHandlerOption {
	return func(h *TextHandler) {
		h.Styler = styler
	}
}

// WithQuiet only writes the summary.
func WithQuiet(quiet bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Quiet = quiet
	}
}

// NewTextHandler creates a handler writing to w, or stdout if w is nil.
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Begin(ctx context.Context, info turing.Info, input string) error {
	if h.Quiet {
		return nil
	}
	name := info.Name
	if name == "" {
		name = "machine"
	}
	_, err := fmt.Fprintf(h.Writer, "%s on %q\n", name, input)
	return err
}

func (h *TextHandler) Configuration(ctx context.Context, step int, cfg domain.Configuration) error {
	if h.Quiet {
		return nil
	}
	prefix := fmt.Sprintf("[%d] ", step)
	lines := strings.SplitN(cfg.Render(), "\n", 2)
	_, err := fmt.Fprintf(h.Writer, "%s%s\n%s%s\n", prefix, lines[0], strings.Repeat(" ", len(prefix)), lines[1])
	return err
}

func (h *TextHandler) End(ctx context.Context, res *turing.Result) error {
	if h.Renderer != nil {
		rendered, err := h.Renderer(SummaryMarkdown(res))
		if err == nil {
			_, err = fmt.Fprintln(h.Writer, strings.TrimSpace(rendered))
			return err
		}
	}

	label := string(res.Outcome)
	if h.Styler != nil {
		label = h.Styler(res.Outcome, label)
	}
	line := fmt.Sprintf("%s after %d steps", label, res.Steps)
	if res.Reason != "" && res.Outcome != domain.OutcomeAccepted {
		line += ": " + res.Reason
	}
	_, err := fmt.Fprintln(h.Writer, line)
	return err
}

// SummaryMarkdown describes a result as a small markdown document.
func SummaryMarkdown(res *turing.Result) string {
	var b strings.Builder
	title := res.Machine
	if title == "" {
		title = "run"
	}
	fmt.Fprintf(&b, "## %s: %s\n\n", title, res.Outcome)
	b.WriteString("| input | steps | state | tape |\n")
	b.WriteString("|---|---|---|---|\n")
	fmt.Fprintf(&b, "| `%s` | %d | %s | `%s` |\n", res.Input, res.Steps, res.Final.State, res.Final.Tape.Content())
	if res.Reason != "" && res.Outcome != domain.OutcomeAccepted {
		fmt.Fprintf(&b, "\n> %s\n", res.Reason)
	}
	return b.String()
}
