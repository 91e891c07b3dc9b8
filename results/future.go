package results

import (
	"context"

	"github.com/King-witcher/trust/futures"
)

// AsFuture returns a future that is already settled from r: completed with the success value,
// or failed with the failure value. A failure value that is not an error is wrapped in a *Rejection.
func (r Result[T, E]) AsFuture() *futures.Future[T] {
	if r.ok {
		return futures.Resolved(r.val)
	}
	return futures.Rejected[T](asError(r.err))
}

// FromFuture returns a future that completes with a Result once f settles.
// A value from f becomes Ok and an error from f becomes Err. The returned future itself never fails.
// No timeout or cancellation is added; it settles exactly when f does.
func FromFuture[T any](f *futures.Future[T]) *futures.Future[Result[T, error]] {
	out := futures.New[Result[T, error]]()

	go func() {
		<-f.Done()
		// f is settled, so Get returns without waiting.
		v, err := f.Get(context.Background())
		out.Complete(New(v, err))
	}()

	return out
}

// ResolveAll waits for all of the provided Futures to complete and returns a Result for each
// future at the index corresponding to the provided slice.
// If the provided context is canceled, the cancellation error will be returned as an error by this function.
func ResolveAll[T any](ctx context.Context, fs []*futures.Future[T]) ([]Result[T, error], error) {
	res := make([]Result[T, error], 0, len(fs))

	for _, f := range fs {
		r, err := f.Get(ctx)
		// check for error at the end of the loop to avoid the race of cancelling while Getting the last value in the list
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res = append(res, New(r, err))
	}

	return res, nil
}
