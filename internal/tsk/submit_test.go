package tsk

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/King-witcher/trust/results"
	"github.com/stretchr/testify/require"
)

func TestGetSubmitFunction(t *testing.T) {
	req := require.New(t)

	f := GetSubmitFunction[int, int](BlockWhenFull)
	req.NotNil(f)

	f = GetSubmitFunction[int, int](ErrorWhenFull)
	req.NotNil(f)
}

func TestGetSubmitFunctionPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("GetSubmitFunction did not panic")
		}
	}()

	GetSubmitFunction[int, int](-1)
}

func TestBlockWhenFullStrategy(t *testing.T) {
	req := require.New(t)

	c := make(chan TaskFuture[int, int])

	// Test cancellation
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tf := NewTaskFuture[int, int](ctx, 1)
	err := blockWhenFullStrategy(c, tf)
	req.ErrorIs(err, context.Canceled)

	// Test consumption
	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			v, ok := <-c
			if !ok {
				return
			}
			v.Future.Complete(42)
		}
	}()

	ctx = context.Background()
	tf = NewTaskFuture[int, int](ctx, 1)

	err = blockWhenFullStrategy(c, tf)
	req.NoError(err)

	v, err := tf.Future.Get(ctx)
	req.NoError(err)
	req.Equal(42, v)

	close(c)
	wg.Wait()
}

func TestErrorWhenFull(t *testing.T) {
	req := require.New(t)

	c := make(chan TaskFuture[int, int])

	startConsumer := func() {
		go func() {
			for {
				v, ok := <-c
				if !ok {
					return
				}
				v.Future.Complete(42)
			}
		}()
	}

	wg := sync.WaitGroup{}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx := context.Background()
			tf := NewTaskFuture[int, int](ctx, 1)
			err := errorWhenFullStrategy(c, tf)
			if errors.Is(err, ErrQueueFull) {
				startConsumer()
			} else {
				v, err := tf.Future.Get(ctx)
				req.NoError(err)
				req.Equal(42, v)
			}
		}()
	}

	wg.Wait()
	close(c)
}

func TestTaskFutureRun(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	tf := NewTaskFuture[int, int](ctx, 21)
	r := tf.Run(func(_ context.Context, n int) (int, error) { return n * 2, nil })
	req.Equal(42, r.Unwrap())

	v, err := tf.Future.Get(ctx)
	req.NoError(err)
	req.Equal(42, v)

	errRun := errors.New("run failed")
	tf = NewTaskFuture[int, int](ctx, 1)
	r = tf.Run(func(context.Context, int) (int, error) { return 0, errRun })
	req.ErrorIs(r.UnwrapErr(), errRun)

	_, err = tf.Future.Get(ctx)
	req.ErrorIs(err, errRun)
}

func TestTaskFutureRunCanceled(t *testing.T) {
	req := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	tf := NewTaskFuture[int, int](ctx, 1)
	r := tf.Run(func(context.Context, int) (int, error) {
		called = true
		return 1, nil
	})

	req.False(called)
	req.ErrorIs(r.UnwrapErr(), context.Canceled)
}

func TestTaskFutureSettle(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	tf := NewTaskFuture[int, string](ctx, 1)
	tf.Settle(results.Success("ok"))
	tf.Settle(results.Failure[string](ErrQueueFull))

	v, err := tf.Future.Get(ctx)
	req.NoError(err)
	req.Equal("ok", v)
}

func TestBlockWhenFullStrategyDeadline(t *testing.T) {
	req := require.New(t)

	c := make(chan TaskFuture[int, int])

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := blockWhenFullStrategy(c, NewTaskFuture[int, int](ctx, 1))
	req.ErrorIs(err, context.DeadlineExceeded)
}

func TestTaskFutureSettleNilFailure(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	tf := NewTaskFuture[int, int](ctx, 1)
	tf.Settle(results.Failure[int](nil))

	_, err := tf.Future.Get(ctx)
	req.Error(err)

	var rej *results.Rejection[error]
	req.ErrorAs(err, &rej)

	v, err := tf.Future.Get(ctx)
	req.True(results.New(v, err).IsFailure())
}
