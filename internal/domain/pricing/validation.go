package pricing

import (
	"fmt"
	"strings"
)

// FieldError points the editing session at one offending document field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationResult collects field errors from a validation pass. A result
// with no errors means the configuration can be saved and quoted against.
type ValidationResult struct {
	Errors []FieldError
}

// OK reports whether validation passed.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Add records a field error.
func (r *ValidationResult) Add(field, format string, args ...any) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all errors from other.
func (r *ValidationResult) Merge(other ValidationResult) {
	r.Errors = append(r.Errors, other.Errors...)
}

// ErrorFor returns the first error recorded for a field, if any.
func (r ValidationResult) ErrorFor(field string) (FieldError, bool) {
	for _, e := range r.Errors {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

func (r ValidationResult) String() string {
	if r.OK() {
		return "ok"
	}
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
