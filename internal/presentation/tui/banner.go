package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/muesli/termenv"
)

var outcomeColors = map[domain.Outcome]string{
	domain.OutcomeAccepted:  "#22c55e",
	domain.OutcomeRejected:  "#ef4444",
	domain.OutcomeStepLimit: "#eab308",
	domain.OutcomeCanceled:  "#94a3b8",
}

// StatusStyler colors outcome labels for profile p.
func StatusStyler(p termenv.Profile) runner.StatusStyler {
	return func(outcome domain.Outcome, label string) string {
		hex, ok := outcomeColors[outcome]
		if !ok {
			return label
		}
		return p.String(label).Foreground(p.Color(hex)).Bold().String()
	}
}

// PrintBanner writes the service banner to w.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{" _              _            ", "#818cf8"},
		{"| |_ _   _ _ __(_)_ __   __ _ ", "#a78bfa"},
		{"| __| | | | '__| | '_ \\ / _` |", "#c084fc"},
		{"| |_| |_| | |  | | | | | (_| |", "#e879f9"},
		{" \\__|\\__,_|_|  |_|_| |_|\\__, |", "#f472b6"},
		{"                        |___/ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
