// Package errors provides structured error types for the isograph application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the conversion core
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The conversion core fails with one of a small set of codes:
//   - PARSE_ERROR: the input graph is absent, malformed or incomplete
//   - WRITE_ERROR: the artifact writer hit a filesystem failure
//   - RESOLUTION_ERROR: a protein token could not be resolved
//   - DOWNLOAD_ERROR: a remote entry could not be fetched
//   - LEDGER_ERROR: the retention ledger is corrupt or its lock unobtainable
//   - GENERATION_ERROR: the external graph generator failed
//
// Input validation uses the INVALID_* codes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "node %s has no sequence", id)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeWrite, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Conversion core
	ErrCodeParse      Code = "PARSE_ERROR"
	ErrCodeWrite      Code = "WRITE_ERROR"
	ErrCodeResolution Code = "RESOLUTION_ERROR"
	ErrCodeDownload   Code = "DOWNLOAD_ERROR"
	ErrCodeLedger     Code = "LEDGER_ERROR"
	ErrCodeGeneration Code = "GENERATION_ERROR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It checks the outermost *Error in the chain only, so a WRITE_ERROR that
// wraps a NETWORK_ERROR is reported as WRITE_ERROR.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
