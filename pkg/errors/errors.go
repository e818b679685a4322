package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Node errors
	ErrInvalidNode   ErrorCode = "INVALID_NODE"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Filesystem errors
	ErrTempCreate ErrorCode = "TEMP_CREATE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDelete     ErrorCode = "DELETE"
)

// FixtreeError represents a structured error with code and details
type FixtreeError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *FixtreeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FixtreeError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FixtreeError) Is(target error) bool {
	var targetErr *FixtreeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FixtreeError with the given code and message
func New(code ErrorCode, message string) *FixtreeError {
	return &FixtreeError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new FixtreeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FixtreeError {
	return &FixtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with a FixtreeError
func Wrap(err error, code ErrorCode, message string) *FixtreeError {
	if err == nil {
		return nil
	}
	return &FixtreeError{
		Code:    code,
		Message: message,
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FixtreeError {
	if err == nil {
		return nil
	}
	return &FixtreeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Wrapped: err,
	}
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ferr *FixtreeError
	if errors.As(err, &ferr) {
		return ferr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FixtreeError
func GetErrorCode(err error) ErrorCode {
	var ferr *FixtreeError
	if errors.As(err, &ferr) {
		return ferr.Code
	}
	return ErrUnknown
}
