// Package domainerrors provides coded errors shared across modules.
//
// Services translate infrastructure sentinel errors into these coded errors
// at their boundary; the HTTP layer maps codes onto status lines and wire
// error strings. Messages on validation and bad-request errors are
// user-facing and safe to return; internal error messages are not.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks rejected input with a field-specific reason.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks requests that are malformed beyond field level,
	// such as unparseable identifiers or bodies.
	CodeBadRequest Code = "bad_request"
	// CodeUnauthorized marks absent or failed authentication. Messages on
	// these errors never distinguish the underlying cause.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound marks a missing entity.
	CodeNotFound Code = "not_found"
	// CodeConflict marks uniqueness or state conflicts.
	CodeConflict Code = "conflict"
	// CodeInternal marks infrastructure failures. The message is logged but
	// never written to a response body.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with a message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal when err is not a
// domain error. Unclassified failures must never leak details to callers.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message for err, or an empty string for
// non-domain errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
