package batch

import (
	"time"

	"go.uber.org/zap"
)

// Opts is used to configure an Executor via the NewExecutor function.
type Opts struct {
	// MaxSize is the number of tasks that triggers a batch run.
	MaxSize int
	// MaxLinger is how long the first task of a batch waits for the batch to fill up.
	MaxLinger time.Duration
	// Logger receives debug output about batch runs. Nil disables logging.
	Logger *zap.Logger
}

func (o Opts) validate() {
	if o.MaxSize <= 1 {
		panic("maximum batch size must be greater than 1")
	}

	if o.MaxLinger <= 0 {
		panic("batch linger must be greater than 0")
	}
}

func (o Opts) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger.Named("batch")
}
