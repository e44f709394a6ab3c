package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexshd/fuzzy"
	"github.com/alexshd/fuzzy/internal/catalog"
	"github.com/alexshd/fuzzy/ruleset"
)

// ErrInvalidInput marks malformed requests.
var ErrInvalidInput = errors.New("invalid input")

// StatusClientClosedRequest is the non-standard status (nginx convention) for
// requests abandoned by the client before a response was written.
const StatusClientClosedRequest = 499

// AppError is an error carrying the HTTP status it should be rendered with.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapError maps package errors to an AppError with an appropriate status.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, context.Canceled):
		return NewAppError(StatusClientClosedRequest, "Request cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewAppError(http.StatusRequestTimeout, "Request timed out", err)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, catalog.ErrInvalidName):
		return NewAppError(http.StatusBadRequest, "Invalid request", err)
	case errors.Is(err, catalog.ErrNotFound):
		return NewAppError(http.StatusNotFound, "Rule set not found", err)
	case errors.Is(err, ruleset.ErrInvalidDefinition),
		errors.Is(err, fuzzy.ErrMissingCurve),
		errors.Is(err, fuzzy.ErrUnseeded),
		errors.Is(err, fuzzy.ErrInvalidCurve):
		return NewAppError(http.StatusUnprocessableEntity, "Rule set cannot be evaluated", err)
	}

	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}
