package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/turing/internal/compiler"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/session"
	"github.com/go-playground/validator/v10"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *domain.ValidationError
	var fields validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrHalted):
		return http.StatusConflict
	case errors.As(err, &fields),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, compiler.ErrUnsupportedFormat),
		errors.Is(err, runner.ErrInputTooLarge),
		errors.Is(err, runner.ErrInvalidUTF8),
		errors.Is(err, runner.ErrControlCharacter):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorPayload(err error) *ErrorPayload {
	p := &ErrorPayload{Error: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		p.Kind = verr.Kind
		p.Value = verr.Value
	}
	return p
}
