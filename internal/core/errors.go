package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by collaborators when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation matches every ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidKind       = errors.New("invalid record kind")
	ErrInvalidLimit      = errors.New("budget limit must be positive")
	ErrInvalidThreshold  = errors.New("alert threshold must be between 1 and 100")
	ErrInvalidCount      = errors.New("occurrence count must be at least 1")
	ErrInvalidFrequency  = errors.New("recurring template needs a weekly, monthly or yearly frequency")
	ErrNotRecurring      = errors.New("record is not recurring")
	ErrPostponeNotFuture = errors.New("postpone date must be after today")
	ErrEmptyID           = errors.New("empty id")
)

// ValidationError is a caller-contract violation detected before any
// computation. It matches both ErrValidation and its cause.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Invalid wraps err as a ValidationError on field.
func Invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
