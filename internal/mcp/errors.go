package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/worklog/internal/domain/activity"
)

// APIError is the caller-facing form of a failed tool call.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// causer is implemented by storage errors that can describe themselves
// without filesystem paths.
type causer interface {
	Cause() string
}

// MapError maps domain errors to API errors. Messages never carry paths.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *activity.ValidationError
	switch {
	case errors.As(err, &verr):
		return &APIError{Code: "INVALID_INPUT", Message: verr.Error()}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: activity.ErrInvalidInput.Error()}
	case errors.Is(err, activity.ErrStorage):
		msg := "failed to write worklog"
		var c causer
		if errors.As(err, &c) {
			msg += ": " + c.Cause()
		}
		return &APIError{Code: "STORAGE_FAILURE", Message: msg}
	default:
		return &APIError{Code: "INTERNAL", Message: "unexpected failure"}
	}
}
