// Package apperror defines the typed failures every marketplace operation
// surfaces to its caller.
package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindUnauthorized       Kind = "Unauthorized"
	KindForbidden          Kind = "Forbidden"
	KindProfileRequired    Kind = "ProfileRequired"
	KindNotFound           Kind = "NotFound"
	KindInvalidInput       Kind = "InvalidInput"
	KindOutOfRange         Kind = "OutOfRange"
	KindInsufficientStock  Kind = "InsufficientStock"
	KindProductUnavailable Kind = "ProductUnavailable"
	KindInvalidTransition  Kind = "InvalidTransition"
	KindEmptyCart          Kind = "EmptyCart"
	KindBusy               Kind = "Busy" // retryable contention
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrForbidden          = &Error{Kind: KindForbidden}
	ErrProfileRequired    = &Error{Kind: KindProfileRequired}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
	ErrOutOfRange         = &Error{Kind: KindOutOfRange}
	ErrInsufficientStock  = &Error{Kind: KindInsufficientStock}
	ErrProductUnavailable = &Error{Kind: KindProductUnavailable}
	ErrInvalidTransition  = &Error{Kind: KindInvalidTransition}
	ErrEmptyCart          = &Error{Kind: KindEmptyCart}
	ErrBusy               = &Error{Kind: KindBusy}
)

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or "" for
// infrastructure failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
