package services

import (
	"errors"
	"fmt"

	"github.com/cakeshelf/cakeshelf/internal/model"
)

// ValidationError carries the full set of field violations for a rejected
// draft. Violations are accumulated, never truncated to the first failure.
type ValidationError struct {
	Violations []model.FieldViolation
}

func (e ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Violations[0].Field, e.Violations[0].Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(violations []model.FieldViolation) ValidationError {
	return ValidationError{Violations: violations}
}

// IsValidationError checks if an error is a validation error (including wrapped errors).
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// AsValidationError extracts the ValidationError, if any.
func AsValidationError(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// ConflictError represents a unique constraint or duplicate resource error.
type ConflictError struct {
	Field   string
	Message string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Field, e.Message)
}

// NewConflictError constructs ConflictError.
func NewConflictError(field, message string) ConflictError {
	return ConflictError{Field: field, Message: message}
}

// IsConflictError checks if error is ConflictError.
func IsConflictError(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

// AsConflictError extracts the ConflictError, if any.
func AsConflictError(err error) (ConflictError, bool) {
	var ce ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

// NotFoundError represents a missing record.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string { return e.Message }

// NewNotFoundError constructs NotFoundError.
func NewNotFoundError(message string) NotFoundError {
	return NotFoundError{Message: message}
}

// IsNotFoundError checks if error is NotFoundError.
func IsNotFoundError(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}
