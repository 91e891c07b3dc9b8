// Package taskqueue runs submitted tasks on a fixed pool of workers and reports each outcome
// as a future or a results.Result.
package taskqueue

import (
	"context"
	"strconv"
	"sync"

	"github.com/King-witcher/trust/closewaiter"
	"github.com/King-witcher/trust/futures"
	"github.com/King-witcher/trust/internal/tsk"
	"github.com/King-witcher/trust/results"
	"go.uber.org/zap"
)

type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type TaskQueue[T any, R any] struct {
	run      RunFunction[T, R]
	taskChan chan tsk.TaskFuture[T, R]
	submit   tsk.SubmitFunction[T, R]

	cw      *closewaiter.CloseWaiter
	workers sync.WaitGroup
	log     *zap.Logger
}

// New creates a TaskQueue and starts its workers. It panics if opts are invalid.
func New[T any, R any](opts Opts, run RunFunction[T, R]) *TaskQueue[T, R] {
	opts.validate()

	tq := &TaskQueue[T, R]{
		run:      run,
		taskChan: make(chan tsk.TaskFuture[T, R], opts.MaxQueueDepth),
		submit:   tsk.GetSubmitFunction[T, R](tsk.FullQueueStrategy(opts.FullQueueStrategy)),
		cw:       closewaiter.New(),
		log:      opts.logger(),
	}

	for i := 0; i < opts.MaxWorkers; i++ {
		tq.workers.Add(1)
		go tq.worker(i)
	}

	return tq
}

func (tq *TaskQueue[T, R]) worker(id int) {
	defer tq.workers.Done()

	log := tq.log.With(zap.Int("worker", id))

	for tf := range tq.taskChan {
		tf.Ctx = withWorkerID(tf.Ctx, id)

		r := tf.Run(tq.run)
		if err, failed := r.Failure(); failed {
			log.Debug("task failed", zap.Error(err))
			continue
		}
		log.Debug("task completed")
	}

	log.Debug("worker stopped")
}

// Submit runs task on the queue and blocks until it completes or ctx is done.
func (tq *TaskQueue[T, R]) Submit(ctx context.Context, task T) (R, error) {
	return tq.SubmitF(ctx, task).Get(ctx)
}

// SubmitResult is Submit with the outcome folded into a Result.
func (tq *TaskQueue[T, R]) SubmitResult(ctx context.Context, task T) results.Result[R, error] {
	v, err := tq.Submit(ctx, task)
	return results.New(v, err)
}

// SubmitF hands task to the queue and returns the future its outcome is delivered through.
// Submission errors such as ErrQueueFull or ErrStopped fail the returned future.
func (tq *TaskQueue[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	tf := tsk.NewTaskFuture[T, R](ctx, task)

	err := tq.cw.Do(func() {
		if err := tq.submit(tq.taskChan, tf); err != nil {
			tf.Future.Fail(err)
		}
	})
	if err != nil {
		tf.Future.Fail(ErrStopped)
	}

	return tf.Future
}

// Close stops accepting tasks, lets queued tasks run and waits for the workers to exit.
// It is safe to call more than once.
func (tq *TaskQueue[T, R]) Close() {
	tq.cw.Close(func() {
		close(tq.taskChan)
	})

	tq.workers.Wait()
}

type workerIDKey struct{}

func withWorkerID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, workerIDKey{}, "worker-"+strconv.Itoa(id))
}

// WorkerIDFromContext attempts to retrieve a worker id string from the current context.
// The worker id string is added to the current context by the TaskQueue before invoking the run
// function. This id can be useful for logging.
func WorkerIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(workerIDKey{}).(string)
	return v, ok
}
