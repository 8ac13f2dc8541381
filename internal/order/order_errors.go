package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned by the store when no order has the requested id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrValidation is the sentinel every ValidationError unwraps to.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports the first violated field invariant of an order request.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError carries the id that was looked up.
type NotFoundError struct {
	ID string
}

func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Order not found with id: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrOrderNotFound
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is, or wraps, ErrOrderNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}
