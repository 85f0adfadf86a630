package http

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/go-playground/validator/v10"
)

// MaxRunSteps caps runs requested over HTTP unless the server is
// configured otherwise.
const MaxRunSteps = 100_000

var requestValidate = validator.New(validator.WithRequiredStructEnabled())

// RunRequest is the body of POST /machines/{name}/run.
type RunRequest struct {
	Input    string `json:"input"`
	MaxSteps int    `json:"max_steps" validate:"gte=0"`
	Trace    bool   `json:"trace"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Format     string `json:"format" validate:"omitempty,oneof=yaml json"`
	Definition string `json:"definition" validate:"required"`
}

// StartSessionRequest is the body of POST /sessions.
type StartSessionRequest struct {
	Machine string `json:"machine" validate:"required"`
	Input   string `json:"input"`
}

// StepRequest is the body of POST /sessions/{id}/step. An empty body
// steps once.
type StepRequest struct {
	Steps int `json:"steps" validate:"omitempty,gte=1,lte=100000"`
}

// ValidateResponse reports whether a definition is well formed.
type ValidateResponse struct {
	Valid   bool          `json:"valid"`
	Name    string        `json:"name,omitempty"`
	Error   *ErrorPayload `json:"error,omitempty"`
	Machine any           `json:"machine,omitempty"`
}

// ErrorPayload is the JSON body of every error response.
type ErrorPayload struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
	Value string           `json:"value,omitempty"`
}

func validateRequest(v any) error {
	return requestValidate.Struct(v)
}
