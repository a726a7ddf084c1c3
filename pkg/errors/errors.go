// Package errors provides structured error types for pinmap.
//
// Every fault pinmap can report is a configuration-time fault over static
// board data: a physical pin defined twice, a logical pin nobody wires to,
// a route directive the router does not understand. Each fault carries a
// machine-readable [Code] so the CLI and tests can select on the kind of
// failure without parsing messages.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingPinDefinition, "missing definition for physical pin %d", n)
//	if errors.Is(err, errors.ErrCodeMissingPinDefinition) {
//	    // handle
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidBoard, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Physical pin map faults
	ErrCodeDuplicatePhysicalPin Code = "DUPLICATE_PHYSICAL_PIN"
	ErrCodeUnrenderedConflict   Code = "UNRENDERED_CONFLICT"
	ErrCodeMissingPinDefinition Code = "MISSING_PIN_DEFINITION"

	// Logical pin coverage faults
	ErrCodeUnmappedLogicalPin           Code = "UNMAPPED_LOGICAL_PIN"
	ErrCodeDuplicateLogicalPinReference Code = "DUPLICATE_LOGICAL_PIN_REFERENCE"

	// Declaration faults
	ErrCodeUnknownPinKind        Code = "UNKNOWN_PIN_KIND"
	ErrCodeUnknownRouteDirective Code = "UNKNOWN_ROUTE_DIRECTIVE"
	ErrCodeInvalidBoard          Code = "INVALID_BOARD"

	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error with a matching code.
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

// IsFatal reports whether err is one of the board faults that must abort
// generation. All coded errors except ErrCodeUnsupported are fatal.
func IsFatal(err error) bool {
	code := GetCode(err)
	return code != "" && code != ErrCodeUnsupported
}
