// Package errors provides centralized error definitions and error handling utilities
// for caseclipper. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - ClipboardError: errors reading or writing the system clipboard
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or configuration
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewClipboardError("read", errors.ErrClipboardUnavailable)
//	err := errors.NewValidationError("unknown mode").WithField("mode").WithValue("shout")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrClipboardUnavailable) { ... }
//
//	var clipErr *errors.ClipboardError
//	if errors.As(err, &clipErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
//
// # Classification
//
// The CLI prints every error, but only points at the debug log for errors
// that are not user-facing. The TUI styles clipboard failures by severity:
// an absent clipboard is informational, a failed write is an error.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Clipboard-related sentinel errors
var (
	// ErrClipboardUnavailable indicates that no clipboard backend could be used.
	ErrClipboardUnavailable = New("clipboard unavailable")
	// ErrNothingToCopy indicates a copy was requested with an empty buffer.
	ErrNothingToCopy = New("nothing to copy")
)

// Input-related sentinel errors
var (
	// ErrUnknownMode indicates a case conversion mode name was not recognized.
	ErrUnknownMode = New("unknown mode")
	// ErrNoInput indicates a command expected text but received none.
	ErrNoInput = New("no input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// AppError is the base interface for all caseclipper errors.
type AppError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ClipboardError represents a failed clipboard operation.
//
// Example:
//
//	err := errors.NewClipboardError("write", cause).WithBackend("osc52")
//	fmt.Println(err) // "clipboard error [op=write, backend=osc52]: ..."
type ClipboardError struct {
	baseError
	Op      string
	Backend string
}

// NewClipboardError creates a new ClipboardError for the given operation.
func NewClipboardError(op string, cause error) *ClipboardError {
	return &ClipboardError{
		baseError: baseError{
			message:    op + " failed",
			cause:      cause,
			severity:   SeverityWarning,
			userFacing: true,
		},
		Op: op,
	}
}

// WithBackend records which clipboard backend produced the error.
func (e *ClipboardError) WithBackend(backend string) *ClipboardError {
	e.Backend = backend
	return e
}

// WithSeverity sets the error severity.
func (e *ClipboardError) WithSeverity(s Severity) *ClipboardError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *ClipboardError) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}
	if e.Backend != "" {
		parts = append(parts, fmt.Sprintf("backend=%s", e.Backend))
	}

	prefix := "clipboard error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("clipboard error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("unknown mode").WithField("mode").WithValue("shout")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is reports whether target is a ValidationError.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
// Sentinel errors describing user mistakes (nothing to copy, unknown mode,
// no input) are user-facing as well.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var appErr AppError
	if As(err, &appErr) {
		return appErr.IsUserFacing()
	}

	return Is(err, ErrNothingToCopy) || Is(err, ErrUnknownMode) || Is(err, ErrNoInput)
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement AppError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var appErr AppError
	if As(err, &appErr) {
		return appErr.Severity()
	}

	if Is(err, ErrNothingToCopy) {
		return SeverityInfo
	}

	return SeverityError
}

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "reading stdin")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
