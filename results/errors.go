package results

import "fmt"

// UnwrapError is the panic value raised when a Result is asked for the variant it does not hold.
type UnwrapError struct {
	// Op is the method that was misused, e.g. "Unwrap".
	Op string
	// Msg is the caller supplied message of Expect and ExpectErr.
	Msg string
	// Payload is what the Result actually held.
	Payload any

	success bool
}

func (e *UnwrapError) Error() string {
	held := "failure"
	if e.success {
		held = "success"
	}

	if e.Msg != "" {
		return fmt.Sprintf("%s: %s result: %v", e.Msg, held, e.Payload)
	}
	return fmt.Sprintf("results: %s called on a %s result: %v", e.Op, held, e.Payload)
}

// Unwrap exposes the payload to errors.Is and errors.As when it is itself an error.
func (e *UnwrapError) Unwrap() error {
	if err, ok := e.Payload.(error); ok {
		return err
	}
	return nil
}

// Rejection is the error a future fails with when it is built from a failed Result
// whose failure type does not implement error.
type Rejection[E any] struct {
	Reason E
}

func (r *Rejection[E]) Error() string {
	return fmt.Sprintf("rejected: %v", r.Reason)
}

func asError[E any](e E) error {
	if err, ok := any(e).(error); ok && err != nil {
		return err
	}
	return &Rejection[E]{Reason: e}
}
