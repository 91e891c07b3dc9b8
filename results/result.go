// Package results provides Result, a value that is either a success carrying a T
// or a failure carrying an E.
//
// A Result is immutable. Every operation returns a new value and leaves its receiver
// untouched, so a Result can be copied and shared between goroutines freely.
//
// Failures are data: they travel through Map, MapErr and AndThen chains until a caller
// decides what to do with them via Match, UnwrapOr or the comma-ok accessors. The two
// extraction calls that assume a variant, Unwrap and UnwrapErr, panic with an *UnwrapError
// when the assumption is wrong. Those panics flag a bug at the call site and are not meant
// to be recovered as part of normal control flow.
package results

import "fmt"

// Result is either a success holding a T or a failure holding an E.
//
// The zero value is a failure holding the zero E. Build Results with Ok, Err or New.
type Result[T, E any] struct {
	val T
	err E
	ok  bool
}

// Ok returns a successful Result wrapping v.
func Ok[T, E any](v T) Result[T, E] {
	return Result[T, E]{val: v, ok: true}
}

// Err returns a failed Result wrapping e.
func Err[T, E any](e E) Result[T, E] {
	return Result[T, E]{err: e}
}

// New converts a Go (value, error) pair into a Result. A nil err yields a success.
func New[T any](v T, err error) Result[T, error] {
	if err != nil {
		return Err[T](err)
	}
	return Ok[T, error](v)
}

// Success is Ok for results whose failure type is error.
func Success[T any](v T) Result[T, error] {
	return Ok[T, error](v)
}

// Failure is Err for results whose failure type is error.
func Failure[T any](err error) Result[T, error] {
	return Err[T](err)
}

func (r Result[T, E]) IsSuccess() bool {
	return r.ok
}

func (r Result[T, E]) IsFailure() bool {
	return !r.ok
}

// Unwrap returns the success value.
// It panics with an *UnwrapError describing the failure if r is a failure.
func (r Result[T, E]) Unwrap() T {
	if !r.ok {
		panic(&UnwrapError{Op: "Unwrap", Payload: r.err})
	}
	return r.val
}

// Expect is Unwrap with msg leading the panic message.
func (r Result[T, E]) Expect(msg string) T {
	if !r.ok {
		panic(&UnwrapError{Op: "Expect", Msg: msg, Payload: r.err})
	}
	return r.val
}

// UnwrapOr returns the success value, or def if r is a failure.
func (r Result[T, E]) UnwrapOr(def T) T {
	if !r.ok {
		return def
	}
	return r.val
}

// UnwrapOrElse returns the success value, or fn applied to the failure.
func (r Result[T, E]) UnwrapOrElse(fn func(E) T) T {
	if !r.ok {
		return fn(r.err)
	}
	return r.val
}

// UnwrapErr returns the failure value.
// It panics with an *UnwrapError describing the success value if r is a success.
func (r Result[T, E]) UnwrapErr() E {
	if r.ok {
		panic(&UnwrapError{Op: "UnwrapErr", Payload: r.val, success: true})
	}
	return r.err
}

// ExpectErr is UnwrapErr with msg leading the panic message.
func (r Result[T, E]) ExpectErr(msg string) E {
	if r.ok {
		panic(&UnwrapError{Op: "ExpectErr", Msg: msg, Payload: r.val, success: true})
	}
	return r.err
}

// Value returns the success value and true, or the zero T and false.
func (r Result[T, E]) Value() (T, bool) {
	if !r.ok {
		return *new(T), false
	}
	return r.val, true
}

// Failure returns the failure value and true, or the zero E and false.
func (r Result[T, E]) Failure() (E, bool) {
	if r.ok {
		return *new(E), false
	}
	return r.err, true
}

// Get returns both slots. The slot of the inactive variant holds its zero value,
// so for E = error this reads like an ordinary Go (value, err) return.
func (r Result[T, E]) Get() (T, E) {
	return r.val, r.err
}

func (r Result[T, E]) String() string {
	if r.ok {
		return fmt.Sprintf("Ok(%v)", r.val)
	}
	return fmt.Sprintf("Err(%v)", r.err)
}
