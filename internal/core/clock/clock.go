package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Handle represents an armed timer that can be cancelled.
type Handle interface {
	Cancel()
}

// Provider arms one-shot or repeating callbacks.
// This interface allows the state machines to run against a virtual clock in tests.
type Provider interface {
	Schedule(d time.Duration, repeats bool, fn func()) Handle
}

// Clock is a Provider that also reports the current time.
type Clock interface {
	Provider
	Now() time.Time
}

// Dispatcher moves a fired callback onto the control thread.
type Dispatcher func(func())

// System is the wall-clock Provider.
//
// Timer goroutines never run callbacks themselves: every fire is handed to the
// dispatcher, and a fire that reaches the control thread after Cancel is dropped.
type System struct {
	dispatch Dispatcher
}

// NewSystem creates a wall-clock provider. A nil dispatcher runs callbacks
// directly on the timer goroutine.
func NewSystem(dispatch Dispatcher) *System {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &System{dispatch: dispatch}
}

// Now returns the wall-clock time.
func (system *System) Now() time.Time {
	return time.Now()
}

// Schedule arms fn after d, once or every d.
func (system *System) Schedule(d time.Duration, repeats bool, fn func()) Handle {
	handle := &systemHandle{stopCh: make(chan struct{})}
	deliver := func() {
		system.dispatch(func() {
			if handle.cancelled.Load() {
				return
			}
			fn()
		})
	}

	if !repeats {
		handle.timer = time.AfterFunc(d, deliver)
		return handle
	}

	if d <= 0 {
		d = time.Nanosecond
	}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-handle.stopCh:
				return
			case <-ticker.C:
				deliver()
			}
		}
	}()
	return handle
}

type systemHandle struct {
	cancelled atomic.Bool
	timer     *time.Timer
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func (handle *systemHandle) Cancel() {
	handle.cancelled.Store(true)
	handle.stopOnce.Do(func() {
		if handle.timer != nil {
			handle.timer.Stop()
		}
		close(handle.stopCh)
	})
}
