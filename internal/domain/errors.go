package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyDeck is returned when a deck is required to hold at least one card.
	ErrEmptyDeck = errors.New("deck must contain at least one flashcard")

	// ErrSetNotFound is returned when a set is not present in the catalog.
	ErrSetNotFound = errors.New("flashcard set not found")
)

// FieldError describes a single invalid field on a domain value.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

// NewFieldError creates a FieldError wrapping the given cause.
func NewFieldError(field, message string, err error) *FieldError {
	return &FieldError{Field: field, Message: message, Err: err}
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel so callers can use errors.Is.
func (e *FieldError) Unwrap() error {
	return e.Err
}
