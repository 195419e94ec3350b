// Package errors provides structured error types for minipm.
//
// Error codes give every failure mode a machine-readable identity so the
// CLI can map them to exit behavior and user messages consistently:
//
//	err := errors.New(errors.ErrCodeVersionNotFound, "express: version 9.9.9 not found")
//	if errors.Is(err, errors.ErrCodeVersionNotFound) {
//	    // handle missing version
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRegistry, origErr, "fetching %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the failure taxonomy.
const (
	// Resolution errors
	ErrCodeCycle               Code = "CYCLE_DETECTED"
	ErrCodeVersionNotFound     Code = "VERSION_NOT_FOUND"
	ErrCodeUnsupportedSelector Code = "UNSUPPORTED_SELECTOR"

	// Registry errors
	ErrCodeRegistry Code = "REGISTRY_ERROR"
	ErrCodeNotFound Code = "NOT_FOUND"

	// Manifest errors
	ErrCodeAlreadyExists   Code = "ALREADY_EXISTS"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"

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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Error types outside this package participate by exposing a Code() method.
// Returns empty string if no code is found.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var coded interface{ Code() Code }
	if errors.As(err, &coded) {
		return coded.Code()
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
