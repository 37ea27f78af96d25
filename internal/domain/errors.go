// Package domain holds shared value types used by both evaluation engines.
package domain

import "fmt"

// ValidationError reports a structurally invalid input. It carries the name
// of the offending field so callers can surface it directly.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
