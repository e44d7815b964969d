package models

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned for unknown product ids so handlers can respond with 404.
	ErrNotFound = errors.New("product not found")
	// ErrUnauthorized means the admin gate refused a catalog mutation.
	ErrUnauthorized = errors.New("admin authorization required")
	// ErrPayloadTooLarge is returned when an upload exceeds the size ceiling.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// ValidationError reports user input that must be corrected and resubmitted.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
