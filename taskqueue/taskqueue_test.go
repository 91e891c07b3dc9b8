package taskqueue

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errTest = errors.New("task failed")

func TestTaskQueue(t *testing.T) {
	req := require.New(t)

	maxWorkers := 3
	wg := sync.WaitGroup{}

	run := func(ctx context.Context, task int) (int, error) {
		workerId, ok := WorkerIDFromContext(ctx)
		req.True(ok)
		req.True(isValidWorkerID(workerId, maxWorkers))
		return task * 2, nil
	}

	tq := New(Opts{MaxWorkers: maxWorkers, MaxQueueDepth: 10}, run)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			val, err := tq.Submit(context.Background(), n)
			req.NoError(err)
			req.Equal(n*2, val)
		}(i)
	}

	wg.Wait()
	tq.Close()
}

func TestTaskQueueSubmitResult(t *testing.T) {
	req := require.New(t)

	run := func(ctx context.Context, task int) (int, error) {
		if task%2 == 1 {
			return 0, errTest
		}
		return task / 2, nil
	}

	tq := New(Opts{MaxWorkers: 2, MaxQueueDepth: 4}, run)
	defer tq.Close()

	r := tq.SubmitResult(context.Background(), 8)
	req.Equal(4, r.Unwrap())

	r = tq.SubmitResult(context.Background(), 3)
	req.ErrorIs(r.UnwrapErr(), errTest)
}

func TestTaskQueueContextCancellation(t *testing.T) {
	req := require.New(t)

	run := func(ctx context.Context, task int) (int, error) {
		<-ctx.Done()
		return 0, context.Canceled
	}

	tq := New(Opts{MaxWorkers: 3, MaxQueueDepth: 10, FullQueueStrategy: BlockWhenFull}, run)
	defer tq.Close()

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tq.Submit(ctx, i)
		req.ErrorIs(err, context.Canceled)
	}
}

func TestTaskQueueErrorWhenFull(t *testing.T) {
	req := require.New(t)

	release := make(chan struct{})
	started := make(chan struct{}, 2)

	run := func(ctx context.Context, task int) (int, error) {
		started <- struct{}{}
		<-release
		return task, nil
	}

	tq := New(Opts{MaxWorkers: 1, MaxQueueDepth: 1, FullQueueStrategy: ErrorWhenFull}, run)

	first := tq.SubmitF(context.Background(), 1)
	<-started

	// the only worker is busy, so the second task fills the queue
	second := tq.SubmitF(context.Background(), 2)

	_, err := tq.Submit(context.Background(), 3)
	req.ErrorIs(err, ErrQueueFull)

	close(release)

	v, err := first.Get(context.Background())
	req.NoError(err)
	req.Equal(1, v)

	v, err = second.Get(context.Background())
	req.NoError(err)
	req.Equal(2, v)

	tq.Close()
}

func TestTaskQueueSubmitAfterClose(t *testing.T) {
	req := require.New(t)

	tq := New(Opts{MaxWorkers: 1}, func(ctx context.Context, task int) (int, error) {
		return task, nil
	})

	tq.Close()
	tq.Close()

	_, err := tq.Submit(context.Background(), 1)
	req.ErrorIs(err, ErrStopped)
}

func TestTaskQueueLogsFailures(t *testing.T) {
	req := require.New(t)

	core, logs := observer.New(zapcore.DebugLevel)

	tq := New(Opts{MaxWorkers: 1, Logger: zap.New(core)}, func(ctx context.Context, task int) (int, error) {
		return 0, errTest
	})

	_, err := tq.Submit(context.Background(), 1)
	req.ErrorIs(err, errTest)
	tq.Close()

	failed := logs.FilterMessage("task failed").All()
	req.Len(failed, 1)
	req.Equal("taskqueue", failed[0].LoggerName)
	req.Equal(int64(0), failed[0].ContextMap()["worker"])
}

func isValidWorkerID(id string, maxWorkers int) bool {
	for i := 0; i < maxWorkers; i++ {
		if id == "worker-"+strconv.Itoa(i) {
			return true
		}
	}
	return false
}
