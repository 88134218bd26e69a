package domain

import (
	"errors"
	"strings"
)

// Sentinels are matched with errors.Is; the REST layer maps each one to a
// status code.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every rejected field of a request so a client
// can flag all of them at once. It matches ErrValidation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation: " + e.Errors[0].Field + ": " + e.Errors[0].Message
	}
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		fields = append(fields, fe.Field)
	}
	return "validation: " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError rejects a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// Invalid returns nil when errs is empty, so Validate methods can end with
// `return domain.Invalid(errs)`.
func Invalid(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}
