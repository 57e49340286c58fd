// Package apperr carries the error taxonomy shared by every bounded context:
// Unauthenticated, Forbidden (business-rule violations) and NotFound, each with
// a human-readable reason surfaced to the caller.
package apperr

import (
	"errors"
	"net/http"
)

type kind int

const (
	kindUnauthenticated kind = iota
	kindForbidden
	kindNotFound
)

// Error is a rejected operation with a reason meant for the client.
type Error struct {
	kind kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unauthenticated means the credential is missing or invalid.
func Unauthenticated(msg string) error { return &Error{kind: kindUnauthenticated, msg: msg} }

// Forbidden means a business rule rejected the operation.
func Forbidden(msg string) error { return &Error{kind: kindForbidden, msg: msg} }

// NotFound means a referenced resource does not exist.
func NotFound(msg string) error { return &Error{kind: kindNotFound, msg: msg} }

// IsForbidden reports whether err is a Forbidden rejection.
func IsForbidden(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kindForbidden
}

// IsNotFound reports whether err is a NotFound rejection.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kindNotFound
}

// IsUnauthenticated reports whether err is an Unauthenticated rejection.
func IsUnauthenticated(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kindUnauthenticated
}

// StatusCode maps err to an HTTP status. Unknown errors are a 500: persistence
// failures are not recovered locally, they fail the current operation.
func StatusCode(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.kind {
	case kindUnauthenticated:
		return http.StatusUnauthorized
	case kindForbidden:
		return http.StatusForbidden
	case kindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
