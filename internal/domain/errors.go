// Package domain defines domain-specific errors.
// These errors represent carousel failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that the carousel and its adapters can return.
var (
	// ErrIndexOutOfRange is returned when a page index is outside the augmented sequence.
	ErrIndexOutOfRange = errors.New("page index out of range")

	// ErrControllerClosed is returned when an operation is attempted after teardown.
	ErrControllerClosed = errors.New("carousel controller closed")

	// ErrInvalidTransition is returned when a transition effect name is unknown.
	ErrInvalidTransition = errors.New("invalid transition effect")

	// ErrEmptySource is returned when an item source yields no items.
	ErrEmptySource = errors.New("item source is empty")

	// ErrSchedulerClosed is returned when a scheduler is used after Close.
	ErrSchedulerClosed = errors.New("scheduler closed")

	// ErrBusClosed is returned when an event bus is closed twice.
	ErrBusClosed = errors.New("event bus closed")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string      // Field that failed validation
	Value   interface{} // Value that failed validation
	Message string      // Error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// SourceError represents a failure while reading items from a source.
// This wraps filesystem and metadata errors with additional context.
type SourceError struct {
	Op      string // Operation that failed (e.g., "scan", "read")
	Path    string // File or directory path (if applicable)
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("source %s failed for '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("source %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewSourceError creates a new SourceError.
func NewSourceError(op, path, message string, err error) *SourceError {
	return &SourceError{
		Op:      op,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// RepositoryError represents an error from a repository.
// This wraps persistence layer errors with additional context.
type RepositoryError struct {
	Op      string // Operation that failed (e.g., "save", "load")
	Type    string // Repository type (e.g., "preferences")
	Message string // Error message
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s.%s failed: %s", e.Type, e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// NewRepositoryError creates a new RepositoryError.
func NewRepositoryError(op, repoType, message string, err error) *RepositoryError {
	return &RepositoryError{
		Op:      op,
		Type:    repoType,
		Message: message,
		Err:     err,
	}
}
