package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Engine steps a deterministic Turing machine.
// It holds only the read-only definition, so a single Engine can drive any
// number of runs concurrently.
type Engine struct {
	name        string
	initial     domain.State
	blank       domain.Symbol
	transitions domain.Transitions
	alphabet    domain.Alphabet
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Steps are logged at Debug level.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine compiles a definition into an engine.
// The definition is expected to be validated already; it is copied so later
// changes by the caller cannot leak into running executions.
func NewEngine(def domain.Definition, opts ...EngineOption) *Engine {
	def = def.Clone()
	e := &Engine{
		name:        def.Name,
		initial:     def.InitialState,
		blank:       def.BlankSymbol,
		transitions: def.Transitions,
		alphabet:    def.Alphabet(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.name != "" {
		e.logger = e.logger.With("machine", e.name)
	}
	return e
}

// Start builds the initial configuration: initial state, input laid out
// from cell 0, head on the leftmost cell.
func (e *Engine) Start(input string) domain.Configuration {
	return domain.NewConfiguration(e.initial, domain.NewTape(input, e.blank))
}

// IsFinal reports whether the configuration is accepting.
func (e *Engine) IsFinal(cfg domain.Configuration) bool {
	return e.alphabet.IsFinal(cfg.State)
}
