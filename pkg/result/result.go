// Package result implements a success-or-error value, the common currency
// between the scheduler, the data plane, and the operation Future/Promise
// pair. Errors are deliberately coarse: the runtime never branches on error
// kind, so diagnosis is carried in the message rather than in a rich type
// hierarchy.
package result

import "fmt"

// Kind classifies an Error without committing to a specific cause. Callers
// that need finer-grained handling should inspect Message or wrap the
// producing call with their own sentinel error.
type Kind int

const (
	// KindOK is never set on an Error value returned from FromError; it
	// exists so a zero Error is distinguishable from "unknown".
	KindOK Kind = iota
	KindNotOK
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotOK:
		return "notOk"
	case KindUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Error is the error half of a Result. It implements the standard error
// interface so it composes with errors.Is/errors.As and with zap.Error.
type Error struct {
	Kind    Kind
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds an Error of the given kind.
func NewError(kind Kind, format string, args ...any) Error {
	return Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotOK is a convenience constructor for the common "not ok" kind, e.g. "no
// sample available" or "no handler registered".
func NotOK(format string, args ...any) Error {
	return NewError(KindNotOK, format, args...)
}

// Unknown wraps an arbitrary error as a Result error of unknown kind.
func Unknown(err error) Error {
	return NewError(KindUnknown, "%s", err.Error())
}

// Result is a tagged union of {value, error}. The zero value holds the zero
// value of T and is considered ok (hasValue reports false only after
// FromError).
type Result[T any] struct {
	value    T
	err      Error
	hasError bool
}

// FromValue builds an ok Result.
func FromValue[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// FromError builds an error Result.
func FromError[T any](err Error) Result[T] {
	return Result[T]{err: err, hasError: true}
}

// HasValue reports whether the Result is ok.
func (r Result[T]) HasValue() bool {
	return !r.hasError
}

// Value returns the carried value. It returns the zero value of T when the
// Result is error-valued; callers that care should check HasValue first.
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the carried error. It returns the zero Error when the
// Result is ok.
func (r Result[T]) Error() Error {
	return r.err
}

// InspectError runs fn with the carried error if the Result is error-valued
// and returns the Result unchanged, enabling fluent chains such as
// r.InspectError(logError).Value().
func (r Result[T]) InspectError(fn func(Error)) Result[T] {
	if r.hasError {
		fn(r.err)
	}
	return r
}

// AndThen maps a Result[T] into a Result[U] through fn when r is ok. If r is
// an error, the error is propagated without invoking fn.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.hasError {
		return Result[U]{err: r.err, hasError: true}
	}
	return fn(r.value)
}
