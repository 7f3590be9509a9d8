// Package apperr defines the typed failure kinds the services raise and
// the boundary layer translates to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindDuplicate
	KindConflict
)

// Error carries a failure kind alongside a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports that no record of the given resource has the id.
func NotFound(resource string, id uint) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found with id: %d", resource, id),
	}
}

// Duplicate reports a collision on a unique field.
func Duplicate(resource, field, value string) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Message: fmt.Sprintf("%s already exists with %s: %s", resource, field, value),
	}
}

// Conflict reports a state that forbids the requested operation, such
// as deleting a category that products still reference.
func Conflict(message string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: message,
	}
}

// KindOf extracts the failure kind when err is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

func IsDuplicate(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindDuplicate
}

// HTTPStatus maps a failure kind to its status code. Untyped errors are
// treated as internal.
func HTTPStatus(err error) int {
	switch k, ok := KindOf(err); {
	case ok && k == KindNotFound:
		return http.StatusNotFound
	case ok && (k == KindDuplicate || k == KindConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
