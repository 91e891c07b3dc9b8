// Package batch groups submitted tasks into batches by size or by age and runs each batch with a
// single call that returns one results.Result per task.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/King-witcher/trust/closewaiter"
	"github.com/King-witcher/trust/futures"
	"github.com/King-witcher/trust/internal/tsk"
	"github.com/King-witcher/trust/results"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
)

var (
	// ErrBatchResultMismatch fails every task of a batch whose run function returned
	// a different number of results than it was given tasks.
	ErrBatchResultMismatch = errs.New("batch run returned a result count different from the task count")
	ErrStopped             = errs.New("batch executor has been stopped")
)

// RunBatchFunction runs a batch of tasks. It returns one Result per task, in task order, or an
// error that fails the whole batch.
type RunBatchFunction[T any, R any] func(tasks []T) ([]results.Result[R, error], error)

type batch[T any, R any] struct {
	id    int
	tasks []tsk.TaskFuture[T, R]
	timer *time.Timer
}

func (b *batch[T, R]) items() []T {
	items := make([]T, len(b.tasks))
	for i, tf := range b.tasks {
		items[i] = tf.Task
	}
	return items
}

type Executor[T any, R any] struct {
	m            sync.Mutex
	sequenceNum  int
	currentBatch *batch[T, R]

	run       RunBatchFunction[T, R]
	maxSize   int
	maxLinger time.Duration

	cw      *closewaiter.CloseWaiter
	running sync.WaitGroup
	log     *zap.Logger
}

// NewExecutor creates an Executor. It panics if opts are invalid.
func NewExecutor[T any, R any](opts Opts, run RunBatchFunction[T, R]) *Executor[T, R] {
	opts.validate()

	return &Executor[T, R]{
		run:       run,
		maxSize:   opts.MaxSize,
		maxLinger: opts.MaxLinger,
		cw:        closewaiter.New(),
		log:       opts.logger(),
	}
}

// Submit adds task to the current batch and blocks until its result is available or ctx is done.
func (be *Executor[T, R]) Submit(ctx context.Context, task T) (R, error) {
	return be.SubmitF(ctx, task).Get(ctx)
}

// SubmitResult is Submit with the outcome folded into a Result.
func (be *Executor[T, R]) SubmitResult(ctx context.Context, task T) results.Result[R, error] {
	v, err := be.Submit(ctx, task)
	return results.New(v, err)
}

// SubmitF adds task to the current batch and returns the future its result is delivered through.
// A task whose ctx is already done is failed without joining a batch.
func (be *Executor[T, R]) SubmitF(ctx context.Context, task T) *futures.Future[R] {
	tf := tsk.NewTaskFuture[T, R](ctx, task)

	if err := ctx.Err(); err != nil {
		tf.Future.Fail(err)
		return tf.Future
	}

	if err := be.cw.Do(func() { be.addTask(tf) }); err != nil {
		tf.Future.Fail(ErrStopped)
	}

	return tf.Future
}

func (be *Executor[T, R]) addTask(tf tsk.TaskFuture[T, R]) {
	be.m.Lock()
	defer be.m.Unlock()

	if be.currentBatch == nil {
		be.currentBatch = be.newBatch()
	}
	be.currentBatch.tasks = append(be.currentBatch.tasks, tf)

	if len(be.currentBatch.tasks) >= be.maxSize {
		be.flushLocked()
	}
}

func (be *Executor[T, R]) newBatch() *batch[T, R] {
	be.sequenceNum++

	b := &batch[T, R]{
		id:    be.sequenceNum,
		tasks: make([]tsk.TaskFuture[T, R], 0, be.maxSize),
	}

	id := b.id
	b.timer = time.AfterFunc(be.maxLinger, func() { be.expireBatch(id) })
	return b
}

func (be *Executor[T, R]) expireBatch(batchID int) {
	be.m.Lock()
	defer be.m.Unlock()

	if be.currentBatch != nil && be.currentBatch.id == batchID {
		be.flushLocked()
	}
}

// flushLocked starts the current batch. be.m must be held.
func (be *Executor[T, R]) flushLocked() {
	b := be.currentBatch
	be.currentBatch = nil

	b.timer.Stop()
	be.running.Add(1)
	go be.runBatch(b)
}

func (be *Executor[T, R]) runBatch(b *batch[T, R]) {
	defer be.running.Done()

	log := be.log.With(zap.Int("batch", b.id), zap.Int("size", len(b.tasks)))
	log.Debug("running batch")

	rs, err := be.run(b.items())
	switch {
	case err != nil:
		log.Debug("batch failed", zap.Error(err))
		be.failAll(b, err)
	case len(rs) != len(b.tasks):
		log.Warn("batch result count mismatch", zap.Int("results", len(rs)))
		be.failAll(b, ErrBatchResultMismatch)
	default:
		for i, tf := range b.tasks {
			tf.Settle(rs[i])
		}
	}
}

func (be *Executor[T, R]) failAll(b *batch[T, R], err error) {
	for _, tf := range b.tasks {
		tf.Settle(results.Failure[R](err))
	}
}

// Close stops accepting tasks, runs the pending partial batch right away and waits for all
// batches to finish. It is safe to call more than once.
func (be *Executor[T, R]) Close() {
	be.cw.Close(func() {
		be.m.Lock()
		defer be.m.Unlock()

		if be.currentBatch != nil {
			be.flushLocked()
		}
	})

	be.running.Wait()
}
