// Package errors provides structured error types for the Matterframe
// application surface.
//
// The core scene packages use plain sentinel errors; this package wraps
// them with machine-readable codes so the CLI and embedding applications
// can present failures as actionable feedback ("cannot nest a container
// inside itself") rather than opaque strings.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: input validation and rejected edits
//   - NOT_FOUND: missing objects or files
//   - CORRUPT_*: fatal integrity violations
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeCircularReference, "cannot nest %d inside its own subtree", id)
//	if errors.Is(err, errors.ErrCodeCircularReference) {
//	    // Surface to the user
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSnapshot, origErr, "loading %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Rejected edits
	ErrCodeInvalidParent     Code = "INVALID_PARENT"
	ErrCodeCircularReference Code = "CIRCULAR_REFERENCE"
	ErrCodeContainerNotEmpty Code = "CONTAINER_NOT_EMPTY"
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Missing resources
	ErrCodeNotFound Code = "NOT_FOUND"

	// Fatal integrity violations
	ErrCodeCorruptHierarchy  Code = "CORRUPT_HIERARCHY"
	ErrCodeAlgorithmContract Code = "ALGORITHM_CONTRACT_VIOLATION"
	ErrCodeCascadeDepth      Code = "CASCADE_DEPTH_EXCEEDED"
	ErrCodeSnapshot          Code = "INVALID_SNAPSHOT"

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
