package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// Record types written by JSONHandler.
const (
	RecordBegin         = "begin"
	RecordConfiguration = "configuration"
	RecordResult        = "result"
)

// Record is one JSON line. Fields are filled according to Type.
type Record struct {
	Type    string         `json:"type"`
	Machine string         `json:"machine,omitempty"`
	Input   *string        `json:"input,omitempty"`
	Step    *int           `json:"step,omitempty"`
	State   domain.State   `json:"state,omitempty"`
	Tape    *string        `json:"tape,omitempty"`
	Head    *int           `json:"head,omitempty"`
	Outcome domain.Outcome `json:"outcome,omitempty"`
	Reason  string         `json:"reason,omitempty"`
}

// JSONHandler writes the run as JSON Lines: a begin record, one record per
// configuration and a final result record.
type JSONHandler struct {
	Encoder *json.Encoder
	machine string
}

// NewJSONHandler creates a handler writing to w, or stdout if w is nil.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{Encoder: json.NewEncoder(w)}
}

func (h *JSONHandler) Begin(ctx context.Context, info turing.Info, input string) error {
	h.machine = info.Name
	return h.Encoder.Encode(Record{Type: RecordBegin, Machine: info.Name, Input: &input})
}

func (h *JSONHandler) Configuration(ctx context.Context, step int, cfg domain.Configuration) error {
	tape := cfg.Tape.Content()
	head := cfg.Tape.Head()
	return h.Encoder.Encode(Record{
		Type:    RecordConfiguration,
		Machine: h.machine,
		Step:    &step,
		State:   cfg.State,
		Tape:    &tape,
		Head:    &head,
	})
}

func (h *JSONHandler) End(ctx context.Context, res *turing.Result) error {
	tape := res.Final.Tape.Content()
	head := res.Final.Tape.Head()
	return h.Encoder.Encode(Record{
		Type:    RecordResult,
		Machine: res.Machine,
		Input:   &res.Input,
		Step:    &res.Steps,
		State:   res.Final.State,
		Tape:    &tape,
		Head:    &head,
		Outcome: res.Outcome,
		Reason:  res.Reason,
	})
}
