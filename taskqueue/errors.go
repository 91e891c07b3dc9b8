package taskqueue

import (
	"github.com/King-witcher/trust/internal/tsk"
	"github.com/zeebo/errs"
)

var (
	ErrQueueFull = tsk.ErrQueueFull
	ErrStopped   = errs.New("task queue has been stopped")
)
