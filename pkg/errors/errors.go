// Package errors provides structured error types for the antmaze libraries.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core packages and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention mirroring the
// validation taxonomy:
//   - STRUCTURAL_*: grid and wall-lattice shape violations
//   - ELEMENT_*: element registry failures (duplicates, unknown tokens)
//   - GEOMETRY_*: hub sizing and angle-span violations
//   - REFERENCE_*: out-of-range or dangling references
//   - TYPE_*: operations invoked against the wrong maze type
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRaggedGrid, "row %d has %d columns, want %d", r, got, want)
//	if errors.Is(err, errors.ErrCodeRaggedGrid) {
//	    // Handle structural error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the different validation categories.
const (
	// Structural errors: grid and lattice shapes
	ErrCodeRaggedGrid      Code = "STRUCTURAL_RAGGED_GRID"
	ErrCodeEmptyGrid       Code = "STRUCTURAL_EMPTY_GRID"
	ErrCodeWallDimensions  Code = "STRUCTURAL_WALL_DIMENSIONS"
	ErrCodeInvalidDocument Code = "STRUCTURAL_INVALID_DOCUMENT"

	// Element registry errors
	ErrCodeDuplicateName  Code = "ELEMENT_DUPLICATE_NAME"
	ErrCodeDuplicateToken Code = "ELEMENT_DUPLICATE_TOKEN"
	ErrCodeDuplicateValue Code = "ELEMENT_DUPLICATE_VALUE"
	ErrCodeInvalidName    Code = "ELEMENT_INVALID_NAME"
	ErrCodeInvalidToken   Code = "ELEMENT_INVALID_TOKEN"
	ErrCodeUnknownToken   Code = "ELEMENT_UNKNOWN_TOKEN"
	ErrCodeUnknownName    Code = "ELEMENT_UNKNOWN_NAME"
	ErrCodeUnknownValue   Code = "ELEMENT_UNKNOWN_VALUE"
	ErrCodeMissingElement Code = "ELEMENT_MISSING"

	// Geometry errors: hub sizing and angles
	ErrCodeHubTooSmall  Code = "GEOMETRY_HUB_TOO_SMALL"
	ErrCodeInvalidAngle Code = "GEOMETRY_INVALID_ANGLE"
	ErrCodeInvalidHub   Code = "GEOMETRY_INVALID_HUB"

	// Reference errors: positions, levels, arms, connectors
	ErrCodeOutOfRange        Code = "REFERENCE_OUT_OF_RANGE"
	ErrCodeUnknownLevel      Code = "REFERENCE_UNKNOWN_LEVEL"
	ErrCodeInvalidConnector  Code = "REFERENCE_INVALID_CONNECTOR"
	ErrCodeDanglingConnector Code = "REFERENCE_DANGLING_CONNECTOR"

	// Type errors
	ErrCodeTypeMismatch    Code = "TYPE_MISMATCH"
	ErrCodeUnknownMazeType Code = "TYPE_UNKNOWN_MAZE_TYPE"

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

// Category returns the validation category prefix of an error code
// (e.g. "STRUCTURAL", "ELEMENT"). Returns empty string for non-coded errors.
func Category(err error) string {
	code := string(GetCode(err))
	for i := 0; i < len(code); i++ {
		if code[i] == '_' {
			return code[:i]
		}
	}
	return code
}
