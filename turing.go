package turing

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/internal/runtime"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/validator"
)

// Machine is a validated deterministic Turing machine.
// It is read-only after construction and safe for concurrent use.
type Machine struct {
	def      domain.Definition
	alphabet domain.Alphabet
	engine   *runtime.Engine
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. Calling it more than
// once merges the hooks in order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Machine) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

// New validates def and compiles it into a Machine.
// An invalid definition never yields a Machine; the returned error wraps a
// *domain.ValidationError.
func New(def domain.Definition, opts ...Option) (*Machine, error) {
	if err := validator.Validate(def); err != nil {
		if def.Name != "" {
			return nil, fmt.Errorf("machine %q: %w", def.Name, err)
		}
		return nil, err
	}

	m := &Machine{def: def.Clone()}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m.alphabet = m.def.Alphabet()
	m.engine = runtime.NewEngine(m.def,
		runtime.WithLogger(m.logger),
		runtime.WithLifecycleHooks(m.hooks),
	)
	return m, nil
}

// MustNew is like New but panics on an invalid definition.
// It is meant for machines defined in code, such as tests and examples.
func MustNew(def domain.Definition, opts ...Option) *Machine {
	m, err := New(def, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the machine name. It may be empty.
func (m *Machine) Name() string { return m.def.Name }

// Definition returns a copy of the validated definition.
func (m *Machine) Definition() domain.Definition { return m.def.Clone() }

// CheckInput reports the first symbol of input that is not in the input
// alphabet as a *domain.InputError.
func (m *Machine) CheckInput(input string) error {
	for i, sym := range domain.SplitSymbols(input) {
		if !m.alphabet.HasInputSymbol(sym) {
			return &domain.InputError{Symbol: sym, Position: i}
		}
	}
	return nil
}

// Run returns the lazy sequence of configurations for input.
// See the package documentation for the termination rules. If input holds
// symbols outside the input alphabet, the only element is a
// *domain.InputError.
func (m *Machine) Run(ctx context.Context, input string) iter.Seq2[domain.Configuration, error] {
	return m.run(ctx, input)
}

// RunBounded is Run with a limit on the number of transitions. A run that
// has not halted after maxSteps transitions ends with a
// *domain.StepLimitError.
func (m *Machine) RunBounded(ctx context.Context, input string, maxSteps int) iter.Seq2[domain.Configuration, error] {
	return m.run(ctx, input, runtime.WithMaxSteps(maxSteps))
}

func (m *Machine) run(ctx context.Context, input string, opts ...runtime.RunOption) iter.Seq2[domain.Configuration, error] {
	if err := m.CheckInput(input); err != nil {
		return func(yield func(domain.Configuration, error) bool) {
			yield(domain.Configuration{}, err)
		}
	}
	return m.engine.Run(ctx, input, opts...)
}

// Start returns the initial configuration for input.
func (m *Machine) Start(input string) (domain.Configuration, error) {
	if err := m.CheckInput(input); err != nil {
		return domain.Configuration{}, err
	}
	return m.engine.Start(input), nil
}

// Step applies one transition to cfg. It does not fire lifecycle hooks.
func (m *Machine) Step(cfg domain.Configuration) StepResult {
	return m.engine.Step(cfg)
}

// IsFinal reports whether cfg is an accepting configuration.
func (m *Machine) IsFinal(cfg domain.Configuration) bool {
	return m.engine.IsFinal(cfg)
}

// Accepts runs the machine to completion and reports whether input is
// accepted. A rejection is reported as false with a nil error; any other
// failure (invalid input, cancellation) is returned as an error.
// Accepts does not return for inputs on which the machine never halts
// unless ctx is canceled.
func (m *Machine) Accepts(ctx context.Context, input string) (bool, error) {
	res, err := m.Trace(ctx, input, 0)
	if err != nil {
		return false, err
	}
	return res.Accepted(), nil
}

// Graph renders the machine as a Mermaid state diagram.
func (m *Machine) Graph() string {
	return graph.GenerateMermaid(m.def, nil)
}

// Info is a summary of a machine, suitable for listings.
type Info struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	States       []domain.State  `json:"states"`
	InputSymbols []domain.Symbol `json:"input_symbols"`
	TapeSymbols  []domain.Symbol `json:"tape_symbols"`
	InitialState domain.State    `json:"initial_state"`
	BlankSymbol  domain.Symbol   `json:"blank_symbol"`
	FinalStates  []domain.State  `json:"final_states"`
	Transitions  int             `json:"transitions"`
}

// Inspect summarizes the machine.
func (m *Machine) Inspect() Info {
	def := m.Definition()
	n := 0
	for _, paths := range def.Transitions {
		n += len(paths)
	}
	return Info{
		Name:         def.Name,
		Description:  def.Description,
		States:       def.States,
		InputSymbols: def.InputSymbols,
		TapeSymbols:  def.TapeSymbols,
		InitialState: def.InitialState,
		BlankSymbol:  def.BlankSymbol,
		FinalStates:  def.FinalStates,
		Transitions:  n,
	}
}
