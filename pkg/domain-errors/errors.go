// Package domainerrors carries a stable error code alongside a message so that
// services can classify failures and transports can translate them without
// string matching.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeNotFound covers unknown identifiers and person/note mismatches.
	CodeNotFound Code = "not_found"
	// CodeForbidden is an access-policy denial.
	CodeForbidden Code = "forbidden"
	// CodeBadRequest is an invalid argument: unknown type combinations, malformed filters or ids.
	CodeBadRequest Code = "bad_request"
	// CodeValidation is a request body that fails field validation.
	CodeValidation Code = "validation_error"
	// CodeInvalidState is an operation against an entity in the wrong state (e.g. an inactive type).
	CodeInvalidState Code = "invalid_state"
	// CodeUnavailable is a failure or timeout of an upstream dependency.
	CodeUnavailable Code = "unavailable"

	CodeUnauthorized Code = "unauthorized"
	CodeConflict     Code = "conflict"
	CodeTimeout      Code = "timeout"
	CodeInternal     Code = "internal_error"
)

// Error is a coded domain error. Err, when set, is the underlying cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in err's chain, or
// CodeInternal when err carries no code.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the client-safe message of a domain error, or an empty string.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
