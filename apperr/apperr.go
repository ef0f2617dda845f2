// Package apperr defines the error taxonomy shared by the booking
// engine, review gate and stats aggregator. Every error here is a
// caller-input problem surfaced synchronously; infrastructure
// failures stay plain wrapped errors and map to a 500.
package apperr

import (
	"errors"
	"fmt"
)

// Code identifies a class of domain error.
type Code string

const (
	CodeValidation        Code = "validation_error"   // malformed or out-of-range input
	CodeInvalidReference  Code = "invalid_reference"  // dangling provider/category id
	CodeNotFound          Code = "not_found"          // missing booking/review/profile
	CodeAccessDenied      Code = "access_denied"      // actor not party to the entity
	CodeInvalidTransition Code = "invalid_transition" // state machine rule violated
	CodeInvalidState      Code = "invalid_state"      // entity not in the state the operation requires
	CodeConflict          Code = "conflict"           // duplicate review for a booking
)

// Error is a typed domain error.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return newf(CodeValidation, format, args...)
}

func InvalidReference(format string, args ...any) *Error {
	return newf(CodeInvalidReference, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return newf(CodeNotFound, format, args...)
}

func AccessDenied(format string, args ...any) *Error {
	return newf(CodeAccessDenied, format, args...)
}

func InvalidTransition(format string, args ...any) *Error {
	return newf(CodeInvalidTransition, format, args...)
}

func InvalidState(format string, args ...any) *Error {
	return newf(CodeInvalidState, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return newf(CodeConflict, format, args...)
}

// CodeOf extracts the domain code from err, unwrapping as needed.
// The second result is false when err carries no domain code.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// Is reports whether err carries the given domain code.
func Is(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}
