package taskqueue

import (
	"github.com/King-witcher/trust/internal/tsk"
	"go.uber.org/zap"
)

// FullQueueStrategy is the type of behavior that should occur when too many items are submitted to the task queue
type FullQueueStrategy tsk.FullQueueStrategy

const (
	// BlockWhenFull exerts back pressure by blocking the caller when too many items have been submitted.
	BlockWhenFull FullQueueStrategy = FullQueueStrategy(tsk.BlockWhenFull)
	// ErrorWhenFull immediately fails the submission with ErrQueueFull when too many items have been submitted.
	ErrorWhenFull FullQueueStrategy = FullQueueStrategy(tsk.ErrorWhenFull)
)

// Opts is used to configure a TaskQueue via the New function.
type Opts struct {
	// MaxWorkers is the number of goroutines running tasks concurrently.
	MaxWorkers int
	// MaxQueueDepth controls the number of submitted tasks that may wait for a free worker.
	MaxQueueDepth int
	// FullQueueStrategy determines the queue's behavior when MaxQueueDepth is exceeded.
	// By default the caller is blocked.
	FullQueueStrategy FullQueueStrategy
	// Logger receives debug output about task execution. Nil disables logging.
	Logger *zap.Logger
}

func (o Opts) validate() {
	if o.MaxWorkers < 1 {
		panic("task queue max workers must be 1 or greater")
	}

	if o.MaxQueueDepth < 0 {
		panic("task queue max queue depth must be 0 or greater")
	}
}

func (o Opts) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger.Named("taskqueue")
}
