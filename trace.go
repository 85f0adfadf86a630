package turing

import (
	"context"
	"errors"

	"github.com/aretw0/turing/pkg/domain"
)

// Result is a completed run.
type Result struct {
	Machine        string                 `json:"machine,omitempty"`
	Input          string                 `json:"input"`
	Outcome        domain.Outcome         `json:"outcome"`
	Steps          int                    `json:"steps"`
	Final          domain.Configuration   `json:"final"`
	Configurations []domain.Configuration `json:"configurations,omitempty"`
	Reason         string                 `json:"reason,omitempty"`
}

// Accepted reports whether the run ended in a final configuration.
func (r *Result) Accepted() bool { return r.Outcome == domain.OutcomeAccepted }

// Last returns the last configuration reached.
func (r *Result) Last() domain.Configuration { return r.Final }

// Trace runs the machine and collects every configuration.
// maxSteps <= 0 means no limit. Rejection and exhausting the step limit are
// outcomes, not errors. The error is non-nil only for invalid input or a
// canceled ctx; in the latter case the partial Result is returned too, with
// outcome canceled.
func (m *Machine) Trace(ctx context.Context, input string, maxSteps int) (*Result, error) {
	var configs []domain.Configuration
	res, err := m.Walk(ctx, input, maxSteps, func(_ int, cfg domain.Configuration) error {
		configs = append(configs, cfg)
		return nil
	})
	if res != nil {
		res.Configurations = configs
	}
	return res, err
}

// Walk is Trace without the collection: each configuration is handed to
// fn together with the number of transitions taken to reach it, and only
// the last one is kept on the Result. An error from fn stops the run and
// is returned with a canceled Result.
func (m *Machine) Walk(ctx context.Context, input string, maxSteps int, fn func(step int, cfg domain.Configuration) error) (*Result, error) {
	if err := m.CheckInput(input); err != nil {
		return nil, err
	}

	res := &Result{Machine: m.def.Name, Input: input, Steps: -1}
	for cfg, err := range m.RunBounded(ctx, input, maxSteps) {
		if err != nil {
			var rej *domain.RejectionError
			var limit *domain.StepLimitError
			switch {
			case errors.As(err, &rej):
				res.Outcome = domain.OutcomeRejected
			case errors.As(err, &limit):
				res.Outcome = domain.OutcomeStepLimit
			default:
				return m.interrupted(res, err)
			}
			res.Reason = err.Error()
			break
		}

		res.Steps++
		res.Final = cfg
		if fn != nil {
			if err := fn(res.Steps, cfg); err != nil {
				return m.interrupted(res, err)
			}
		}
		if m.IsFinal(cfg) {
			res.Outcome = domain.OutcomeAccepted
		}
	}

	m.logger.Info("run halted", "machine", m.def.Name, "outcome", res.Outcome, "steps", res.Steps)
	return res, nil
}

func (m *Machine) interrupted(res *Result, err error) (*Result, error) {
	res.Outcome = domain.OutcomeCanceled
	res.Reason = err.Error()
	m.logger.Info("run halted", "machine", m.def.Name, "outcome", res.Outcome, "steps", res.Steps)
	return res, err
}
