// Package common defines shared sentinel errors used across service and
// handler layers. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTimestamp flags a timestamp that could not be parsed as an
	// ISO-8601 instant.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidPayload flags a request body that could not be decoded.
	ErrInvalidPayload = errors.New("invalid payload")
)

// MissingFieldError reports a required field that was absent from the caller's
// input (or, for session close, from the stored consent record).
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NewMissingField constructs a MissingFieldError for the named field.
func NewMissingField(field string) error {
	return &MissingFieldError{Field: field}
}

// IsMissingField reports whether err wraps a MissingFieldError.
func IsMissingField(err error) bool {
	var mf *MissingFieldError
	return errors.As(err, &mf)
}
