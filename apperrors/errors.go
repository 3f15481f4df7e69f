// Package apperrors defines the typed errors raised by the service layer.
// Translation to HTTP status codes happens in the controllers.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindNoPermission
	KindDuplicated
	KindValidation
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNoPermission:
		return "no_permission"
	case KindDuplicated:
		return "duplicated"
	case KindValidation:
		return "validation_failed"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Error carries a machine readable Code (e.g. POST_NOT_FOUND) and, for
// duplicates, the offending Field.
type Error struct {
	Kind    Kind
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field: %s)", msg, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(code string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: code}
}

func NoPermission(code string) *Error {
	return &Error{Kind: KindNoPermission, Code: code, Message: code}
}

func Duplicated(code, field, message string) *Error {
	return &Error{Kind: KindDuplicated, Code: code, Field: field, Message: message}
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Unauthorized(code string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: code}
}

// Internal wraps an unexpected failure. The wrapped error is for logs only.
func Internal(op string, err error) *Error {
	return &Error{Kind: KindInternal, Code: "INTERNAL_SERVER_ERROR", Message: op, Err: err}
}

// KindOf reports the Kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
