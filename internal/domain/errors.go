package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientWords = errors.New("insufficient words")
	ErrStorage           = errors.New("storage error")
	ErrConfig            = errors.New("required configuration missing")
	ErrDelivery          = errors.New("push delivery failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// MinQuizWords is the smallest pool that can offer four distinct options.
const MinQuizWords = 4

// InsufficientWordsError is returned when the word pool cannot back a quiz.
type InsufficientWordsError struct {
	Have int
	Need int
}

func (e *InsufficientWordsError) Error() string {
	return fmt.Sprintf("quiz needs at least %d words, have %d", e.Need, e.Have)
}

func (e *InsufficientWordsError) Unwrap() error { return ErrInsufficientWords }

// DeliveryError is a failed push delivery to a single subscription.
// StatusCode is zero when the push service was never reached.
type DeliveryError struct {
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("push delivery: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("push delivery: status %d", e.StatusCode)
}

func (e *DeliveryError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDelivery, e.Err}
	}
	return []error{ErrDelivery}
}

// Gone reports whether the push service says the endpoint no longer exists.
func (e *DeliveryError) Gone() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusGone
}
