package tsk

import (
	"context"

	"github.com/King-witcher/trust/futures"
	"github.com/King-witcher/trust/results"
)

// TaskFuture is a submitted task travelling to a worker together with the future its result is delivered through.
type TaskFuture[T any, R any] struct {
	Ctx    context.Context
	Task   T
	Future *futures.Future[R]
}

func NewTaskFuture[T any, R any](ctx context.Context, task T) TaskFuture[T, R] {
	return TaskFuture[T, R]{
		Ctx:    ctx,
		Task:   task,
		Future: futures.New[R](),
	}
}

// Settle completes the future from r. A failure always fails the future; a nil
// failure error is reported as a *results.Rejection.
func (tf TaskFuture[T, R]) Settle(r results.Result[R, error]) {
	if err, failed := r.Failure(); failed {
		if err == nil {
			err = &results.Rejection[error]{}
		}
		tf.Future.Fail(err)
		return
	}
	tf.Future.Complete(r.Unwrap())
}

// Run invokes run for the task and settles the future with its outcome.
// A context that is already done fails the task without calling run.
func (tf TaskFuture[T, R]) Run(run func(ctx context.Context, task T) (R, error)) results.Result[R, error] {
	var r results.Result[R, error]
	if err := tf.Ctx.Err(); err != nil {
		r = results.Failure[R](err)
	} else {
		v, err := run(tf.Ctx, tf.Task)
		r = results.New(v, err)
	}

	tf.Settle(r)
	return r
}
