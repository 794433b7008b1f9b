// Package apperr classifies business failures so handlers can map them to
// HTTP statuses without matching on message strings.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindConflict
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindPermission:
		return "permission"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	}

	return "unknown"
}

type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

func Validation(msg string) *Error {
	return &Error{kind: KindValidation, msg: msg}
}

func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

func NotFound(msg string) *Error {
	return &Error{kind: KindNotFound, msg: msg}
}

func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Sprintf(format, args...))
}

func Permission(msg string) *Error {
	return &Error{kind: KindPermission, msg: msg}
}

func Conflict(msg string) *Error {
	return &Error{kind: KindConflict, msg: msg}
}

func Conflictf(format string, args ...any) *Error {
	return Conflict(fmt.Sprintf(format, args...))
}

// Persistence wraps a storage failure. The wrapped error stays available
// for logs; callers only see the message.
func Persistence(msg string, err error) *Error {
	return &Error{kind: KindPersistence, msg: msg, err: err}
}

// KindOf reports the classification of err, or KindUnknown for errors that
// did not come from this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}

	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
