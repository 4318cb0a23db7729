// Package errors provides coded errors for the prop8 decision core.
//
// Error codes are grouped by the part of the system that raises them:
//   - General errors (1-99)
//   - Validation and configuration errors (100-199)
//   - Data and snapshot errors (200-299)
//   - Strategy errors (400-499)
//   - Feed errors (700-799)
//   - Callback errors (800-899)
//
// Expected outcomes such as missing history or a rejected gate are not errors
// and are never reported through this package.
//
// Usage:
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "no snapshot path configured")
//	err := errors.Wrapf(errors.ErrCodeSnapshotWriteFailed, cause, "write %s", path)
//	if errors.HasCode(err, errors.ErrCodeIncompatibleVersion) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is a structured error carrying an ErrorCode.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap attaches a code and message to cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf attaches a code and formatted message to cause.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the first *Error in err's chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError reports that a computation was asked for more history
// than an instrument holds. Components return absent values instead of this
// error; it is raised only at API boundaries that must explain the refusal,
// such as the diagnostics server.
type InsufficientDataError struct {
	Required   int
	Actual     int
	Instrument string
	Message    string
}

// NewInsufficientDataError creates an InsufficientDataError with a default message.
func NewInsufficientDataError(required, actual int, instrument string) *InsufficientDataError {
	return &InsufficientDataError{
		Required:   required,
		Actual:     actual,
		Instrument: instrument,
		Message:    fmt.Sprintf("%s: need %d bars, have %d", instrument, required, actual),
	}
}

func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError reports whether err's chain holds an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
