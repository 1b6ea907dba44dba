package validation

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError is a validation failure attributed to a single field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func newFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects field errors into a multi-field report.
type Errors []*FieldError

// Add appends err to the report. Nil is ignored; an Errors value is
// flattened; any *FieldError in the chain is appended as-is. Other errors
// are recorded with an empty field.
func (e *Errors) Add(err error) {
	if err == nil {
		return
	}
	var many Errors
	if errors.As(err, &many) {
		*e = append(*e, many...)
		return
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		*e = append(*e, fe)
		return
	}
	*e = append(*e, &FieldError{Message: err.Error()})
}

// Fields returns the names of the failing fields, in order.
func (e Errors) Fields() []string {
	fields := make([]string, len(e))
	for i, fe := range e {
		fields[i] = fe.Field
	}
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// ErrOrNil returns nil for an empty report and the report itself otherwise.
func (e Errors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
