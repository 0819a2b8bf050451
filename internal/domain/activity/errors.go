package activity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a record failed validation.
	ErrInvalidInput = errors.New("invalid activity input")
	// ErrStorage indicates the daily log could not be read or written.
	ErrStorage = errors.New("worklog storage failure")
)

// ValidationError names the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return ErrInvalidInput.Error()
	case 1:
		return fmt.Sprintf("%s is required", e.Fields[0])
	default:
		return "tool_name and log_message are required"
	}
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
