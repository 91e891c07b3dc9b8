// Package ratelimiter starts submitted tasks no faster than a token bucket allows
// and reports each outcome as a future or a results.Result.
package ratelimiter

import (
	"context"
	"sync"

	"github.com/King-witcher/trust/closewaiter"
	"github.com/King-witcher/trust/futures"
	"github.com/King-witcher/trust/internal/tsk"
	"github.com/King-witcher/trust/results"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	ErrStopped = errs.New("rate limiter has been stopped")
)

type RunFunction[T any, R any] func(ctx context.Context, task T) (R, error)

type RateLimiter[T any, R any] struct {
	limiter  *rate.Limiter
	taskChan chan tsk.TaskFuture[T, R]

	submit tsk.SubmitFunction[T, R]
	run    RunFunction[T, R]

	cw      *closewaiter.CloseWaiter
	running sync.WaitGroup
	log     *zap.Logger
}

// New creates a RateLimiter and starts its dispatcher. It panics if opts are invalid.
func New[T any, R any](opts Opts, run RunFunction[T, R]) *RateLimiter[T, R] {
	opts.validate()

	rl := &RateLimiter[T, R]{
		limiter:  rate.NewLimiter(opts.Limit, opts.Burst),
		taskChan: make(chan tsk.TaskFuture[T, R], opts.MaxQueueDepth),
		submit:   tsk.GetSubmitFunction[T, R](tsk.FullQueueStrategy(opts.FullQueueStrategy)),
		run:      run,
		cw:       closewaiter.New(),
		log:      opts.logger(),
	}

	rl.running.Add(1)
	go rl.dispatch()

	return rl
}

func (rl *RateLimiter[T, R]) dispatch() {
	defer rl.running.Done()

	for tf := range rl.taskChan {
		if err := rl.limiter.Wait(tf.Ctx); err != nil {
			rl.log.Debug("task dropped while waiting for a token", zap.Error(err))
			tf.Settle(results.Failure[R](err))
			continue
		}

		rl.running.Add(1)
		go rl.runTask(tf)
	}
}

func (rl *RateLimiter[T, R]) runTask(tf tsk.TaskFuture[T, R]) {
	defer rl.running.Done()

	if err, failed := tf.Run(rl.run).Failure(); failed {
		rl.log.Debug("task failed", zap.Error(err))
	}
}

// Submit runs task once the rate limit allows and blocks until it completes or ctx is done.
func (rl *RateLimiter[T, R]) Submit(ctx context.Context, task T) (R, error) {
	return rl.SubmitF(ctx, task).Get(ctx)
}

// SubmitResult is Submit with the outcome folded into a Result.
func (rl *RateLimiter[T, R]) SubmitResult(ctx context.Context, task T) results.Result[R, error] {
	v, err := rl.Submit(ctx, task)
	return results.New(v, err)
}

// SubmitF queues task and returns the future its outcome is delivered through.
func (rl *RateLimiter[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	tf := tsk.NewTaskFuture[T, R](ctx, task)

	err := rl.cw.Do(func() {
		if err := rl.submit(rl.taskChan, tf); err != nil {
			tf.Future.Fail(err)
		}
	})
	if err != nil {
		tf.Future.Fail(ErrStopped)
	}

	return tf.Future
}

// Close stops accepting tasks and waits for queued and running tasks to finish.
// It is safe to call more than once.
func (rl *RateLimiter[T, R]) Close() {
	rl.cw.Close(func() {
		close(rl.taskChan)
	})

	rl.running.Wait()
}
