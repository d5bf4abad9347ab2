// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, missing data, degenerate inputs
//   - Data/Resource errors (200-299): Data not found, query failures, unsupported files
//   - Indicator errors (300-399): Technical indicator calculation and lookup errors
//   - Report errors (600-699): Report rendering and batch execution errors
//   - Market data errors (700-799): Market data parsing errors
//
// Two typed errors describe the numeric failures of the indicator engine:
// InsufficientDataError (series too short) and DegenerateRangeError (zero range
// or zero divisor). GetCode maps both onto their error codes.
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeDataNotFound, "no prices in %s", path)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeInsufficientData) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from the outermost coded error in err's chain.
// InsufficientDataError and DegenerateRangeError resolve to ErrCodeInsufficientData
// and ErrCodeDegenerateRange. Returns ErrCodeUnknown for anything else.
func GetCode(err error) ErrorCode {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *InsufficientDataError:
			return ErrCodeInsufficientData
		case *DegenerateRangeError:
			return ErrCodeDegenerateRange
		}

		err = errors.Unwrap(err)
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError represents an error when there is not enough data
// for a calculation (e.g., indicator calculations requiring a minimum period).
type InsufficientDataError struct {
	Indicator string // Indicator that rejected the series
	Required  int    // Minimum data points required
	Actual    int    // Actual data points available
	Message   string // Human-readable message
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(indicator string, required, actual int, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Indicator: indicator,
		Required:  required,
		Actual:    actual,
		Message:   message,
	}
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(indicator string, required, actual int, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Indicator: indicator,
		Required:  required,
		Actual:    actual,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
// It uses errors.As to check the error chain.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}

// DegenerateRangeError represents a calculation whose divisor is zero,
// either because every price in the series is equal or because a
// required reference price is zero.
type DegenerateRangeError struct {
	Indicator string // Indicator that rejected the series
	Message   string // Human-readable message
}

// NewDegenerateRangeError creates a new DegenerateRangeError.
func NewDegenerateRangeError(indicator, message string) *DegenerateRangeError {
	return &DegenerateRangeError{
		Indicator: indicator,
		Message:   message,
	}
}

// NewDegenerateRangeErrorf creates a new DegenerateRangeError with a formatted message.
func NewDegenerateRangeErrorf(indicator, format string, args ...any) *DegenerateRangeError {
	return &DegenerateRangeError{
		Indicator: indicator,
		Message:   fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *DegenerateRangeError) Error() string {
	return e.Message
}

// IsDegenerateRangeError checks if an error is a DegenerateRangeError.
func IsDegenerateRangeError(err error) bool {
	var degenerateErr *DegenerateRangeError

	return errors.As(err, &degenerateErr)
}
