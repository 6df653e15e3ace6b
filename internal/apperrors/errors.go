// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can map it to an HTTP status
// without inspecting message text.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidationFailed
	KindNotFound
	KindForbidden
	KindInvalidTransition
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "VALIDATION_FAILED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindForbidden:
		return "FORBIDDEN"
	case KindInvalidTransition:
		return "INVALID_TRANSITION"
	case KindConflict:
		return "CONFLICT"
	default:
		return "UNEXPECTED"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind of err, or KindUnexpected when err is not an
// *Error from this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func ValidationFailed(message string) *Error {
	return New(KindValidationFailed, message)
}

func NotFound(resource string) *Error {
	return New(KindNotFound, resource+" not found")
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// InvalidTransition reports an action attempted from a status that does not
// permit it. The message always carries both so the caller can render an
// actionable diagnostic.
func InvalidTransition(action, currentStatus string) *Error {
	return Newf(KindInvalidTransition, "action %s is not allowed from status %s", action, currentStatus)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func Unexpected(message string, err error) *Error {
	return Wrap(KindUnexpected, message, err)
}
