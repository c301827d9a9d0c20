package errors

import (
	"errors"
	"fmt"
)

// Exit codes for forage-select
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitConfigError  = 2
	ExitLoadError    = 3
	ExitNoSelection  = 4
	ExitCancelled    = 130
)

// SelectError is the base error type for forage-select
type SelectError struct {
	Code    int
	Message string
	Cause   error
}

func (e *SelectError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SelectError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *SelectError) ExitCode() int {
	return e.Code
}

// New creates a new SelectError
func New(code int, message string) *SelectError {
	return &SelectError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SelectError
func Wrap(code int, message string, cause error) *SelectError {
	return &SelectError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// ConfigError returns an error for settings that cannot be loaded or are invalid
func ConfigError(message string, cause error) *SelectError {
	return Wrap(ExitConfigError, message, cause)
}

// LoadFailed returns an error for a candidate load that was explicitly requested
func LoadFailed(source string, cause error) *SelectError {
	return Wrap(ExitLoadError, fmt.Sprintf("failed to load options from %s", source), cause)
}

// NoSelection returns an error when the widget finished with an empty active set
func NoSelection() *SelectError {
	return New(ExitNoSelection, "nothing selected")
}

// Cancelled returns an error when the user dismissed the widget
func Cancelled() *SelectError {
	return New(ExitCancelled, "selection cancelled")
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *SelectError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var selectErr *SelectError
	if errors.As(err, &selectErr) {
		return selectErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
