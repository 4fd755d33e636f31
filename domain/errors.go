// Package domain holds the error taxonomy shared by services, repositories
// and transport adapters. Handlers use errors.Is / errors.As against these
// to decide how a failure is surfaced.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds coins + bonus coins.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned for missing items, pools or balances on
	// read-only paths. Missing balances on mutation paths are lazily
	// initialized instead.
	ErrNotFound = errors.New("not found")

	// ErrConcurrencyConflict is returned when the database reports a
	// serialization failure or deadlock. The operation left no partial
	// state and is safe to retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict")

	// ErrPersistence is returned when storage is unreachable or shutting
	// down. The enclosing transaction never applied partially.
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError reports a malformed request amount or parameter.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
