package observability

import (
	"context"
	"errors"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the run and step collectors.
type Metrics struct {
	started  *prometheus.CounterVec
	runs     *prometheus.CounterVec
	steps    *prometheus.CounterVec
	runSteps *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Registering twice with the same registerer reuses the existing collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turing_runs_started_total",
			Help: "Total number of runs started.",
		}, []string{"machine"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turing_runs_total",
			Help: "Total number of halted runs by outcome.",
		}, []string{"machine", "outcome"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turing_steps_total",
			Help: "Total number of transitions taken.",
		}, []string{"machine"}),
		runSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "turing_run_steps",
			Help:    "Number of transitions per halted run.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"machine"}),
	}

	var err error
	m.started, err = register(reg, m.started)
	if err != nil {
		return nil, err
	}
	m.runs, err = register(reg, m.runs)
	if err != nil {
		return nil, err
	}
	m.steps, err = register(reg, m.steps)
	if err != nil {
		return nil, err
	}
	m.runSteps, err = register(reg, m.runSteps)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStart: func(_ context.Context, e *domain.RunEvent) {
			m.started.WithLabelValues(e.Machine).Inc()
		},
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.steps.WithLabelValues(e.Machine).Inc()
		},
		OnAccept: m.observeHalt,
		OnReject: m.observeHalt,
	}
}

func (m *Metrics) observeHalt(_ context.Context, e *domain.HaltEvent) {
	m.runs.WithLabelValues(e.Machine, string(e.Outcome)).Inc()
	m.runSteps.WithLabelValues(e.Machine).Observe(float64(e.Steps))
}
