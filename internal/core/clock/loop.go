package clock

import (
	"context"
	"sync"
)

// Loop is a single-goroutine executor. Every function passed to Dispatch runs
// on the goroutine that called Run, in submission order.
type Loop struct {
	queue    chan func()
	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 16
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Dispatch enqueues fn. Functions dispatched after Run returned are dropped.
func (loop *Loop) Dispatch(fn func()) {
	select {
	case <-loop.done:
	case loop.queue <- fn:
	}
}

// Run executes queued functions until ctx is done.
func (loop *Loop) Run(ctx context.Context) error {
	defer loop.doneOnce.Do(func() { close(loop.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-loop.queue:
			fn()
		}
	}
}
