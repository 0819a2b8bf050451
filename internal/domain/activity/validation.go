package activity

import "strings"

// Validate checks the fields a record cannot be logged without.
func Validate(rec Record) error {
	var missing []string
	if strings.TrimSpace(rec.ToolName) == "" {
		missing = append(missing, "tool_name")
	}
	if strings.TrimSpace(rec.Message) == "" {
		missing = append(missing, "log_message")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
