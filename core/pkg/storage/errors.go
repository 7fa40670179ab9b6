package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a session has no snapshot.
	ErrNotFound = errors.New("session not found")

	// ErrClosed is returned by every operation on a closed backend.
	ErrClosed = errors.New("storage is closed")
)

// NewNotFoundError wraps ErrNotFound with the session name.
func NewNotFoundError(session string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, session)
}

// IsNotFound reports whether err means the session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ContextCancelledError represents an error when context is cancelled
type ContextCancelledError struct {
	Err error
}

// Error implements error interface
func (e ContextCancelledError) Error() string {
	return "context cancelled: " + e.Err.Error()
}

// Unwrap returns the context error.
func (e ContextCancelledError) Unwrap() error {
	return e.Err
}

// IsContextCancelled checks if an error is a context cancellation error
func IsContextCancelled(err error) bool {
	var target ContextCancelledError
	return errors.As(err, &target)
}

// NewContextCancelledError creates a new context cancellation error
func NewContextCancelledError(ctx context.Context) error {
	return ContextCancelledError{Err: ctx.Err()}
}
