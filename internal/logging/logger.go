package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a configured application logger.
// It writes to Stderr (to separate from Stdout trace/NDJSON output).
// It standardizes common keys (e.g., "error" -> "err").
// Extra handlers receive every record as well.
func New(level slog.Level, extra ...slog.Handler) *slog.Logger {
	return NewWithWriter(os.Stderr, level, extra...)
}

// NewWithWriter is New with an explicit destination for the text handler.
func NewWithWriter(w io.Writer, level slog.Level, extra ...slog.Handler) *slog.Logger {
	text := slog.NewTextHandler(w, handlerOptions(level))
	if len(extra) == 0 {
		return slog.New(text)
	}
	return slog.New(slogmulti.Fanout(append([]slog.Handler{text}, extra...)...))
}

// FileHandler opens path for appending and returns a JSON handler writing
// to it. The caller must close the returned file.
func FileHandler(path string, level slog.Level) (slog.Handler, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.NewJSONHandler(f, handlerOptions(level)), f, nil
}

// ParseLevel accepts debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
}
