// Package closewaiter coordinates shutdown between callers still handing work to a resource
// and the one goroutine that closes it.
package closewaiter

import (
	"sync"

	"github.com/zeebo/errs"
)

var (
	ErrClosed = errs.New("closed")
)

// CloseWaiter lets calls made through Do finish before the close hook passed to Close runs.
// Once Close has started every later Do returns ErrClosed without running its function.
type CloseWaiter struct {
	mu       sync.RWMutex
	isClosed bool

	once   sync.Once
	closed chan struct{}
}

func New() *CloseWaiter {
	return &CloseWaiter{
		closed: make(chan struct{}),
	}
}

// Do runs f unless the waiter is closed, in which case it returns ErrClosed.
func (c *CloseWaiter) Do(f func()) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.isClosed {
		return ErrClosed
	}

	f()
	return nil
}

// Close waits for in-flight calls to Do to return and then runs f exactly once.
// Concurrent and repeated calls block until that first close has finished.
func (c *CloseWaiter) Close(f func()) {
	c.once.Do(func() {
		c.mu.Lock()
		c.isClosed = true
		c.mu.Unlock()

		f()
		close(c.closed)
	})

	<-c.closed
}

// Closed returns a channel that is closed once the close hook has run.
func (c *CloseWaiter) Closed() <-chan struct{} {
	return c.closed
}
