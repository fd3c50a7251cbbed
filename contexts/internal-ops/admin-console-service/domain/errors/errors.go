package errors

import (
	"errors"
	"fmt"
)

var (
	ErrStorage       = errors.New("storage backend failure")
	ErrValidation    = errors.New("record rejected by storage constraints")
	ErrInvalidPage   = errors.New("offset must be non-negative and limit positive")
	ErrUnidentified  = errors.New("record has no identifier")
	ErrRecordGone    = errors.New("record does not exist anymore")
	ErrSessionClosed = errors.New("dialog session already closed")
	ErrInvalidInput  = errors.New("invalid input")
)

// Storage marks cause as a backend failure while keeping it inspectable.
func Storage(cause error) error {
	return fmt.Errorf("%w: %w", ErrStorage, cause)
}

// Validation marks cause as a constraint violation reported by the backend.
func Validation(cause error) error {
	return fmt.Errorf("%w: %w", ErrValidation, cause)
}
