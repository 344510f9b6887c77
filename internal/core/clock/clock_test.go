package clock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestFake_OneShotFiresOnceAtDeadline(t *testing.T) {
	fake := NewFake(epoch)
	fired := 0
	fake.Schedule(time.Minute, false, func() { fired++ })

	fake.Advance(59 * time.Second)
	assert.Equal(t, 0, fired)
	assert.Equal(t, 1, fake.Pending())

	fake.Advance(time.Second)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, fake.Pending())

	fake.Advance(time.Hour)
	assert.Equal(t, 1, fired)
}

func TestFake_RepeatingFiresEveryPeriod(t *testing.T) {
	fake := NewFake(epoch)
	fired := 0
	handle := fake.Schedule(time.Second, true, func() { fired++ })

	fake.Advance(5 * time.Second)
	assert.Equal(t, 5, fired)

	handle.Cancel()
	fake.Advance(5 * time.Second)
	assert.Equal(t, 5, fired)
	assert.Equal(t, 0, fake.Pending())
}

func TestFake_CallbackSeesDeadlineAsNow(t *testing.T) {
	fake := NewFake(epoch)
	var seen time.Time
	fake.Schedule(90*time.Second, false, func() { seen = fake.Now() })

	fake.Advance(10 * time.Minute)
	assert.Equal(t, epoch.Add(90*time.Second), seen)
	assert.Equal(t, epoch.Add(10*time.Minute), fake.Now())
}

func TestFake_FiresInDeadlineOrder(t *testing.T) {
	fake := NewFake(epoch)
	var order []string
	fake.Schedule(3*time.Second, false, func() { order = append(order, "c") })
	fake.Schedule(time.Second, false, func() { order = append(order, "a") })
	fake.Schedule(2*time.Second, false, func() { order = append(order, "b") })

	fake.Advance(time.Minute)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestFake_CallbackCanRearm(t *testing.T) {
	fake := NewFake(epoch)
	fired := 0
	var handle Handle
	var arm func()
	arm = func() {
		handle = fake.Schedule(time.Second, true, func() {
			fired++
			handle.Cancel()
			arm()
		})
	}
	arm()

	fake.Advance(3 * time.Second)
	assert.Equal(t, 3, fired)
	assert.Equal(t, 1, fake.Pending())
}

func TestFake_CancelTwiceIsSafe(t *testing.T) {
	fake := NewFake(epoch)
	handle := fake.Schedule(time.Second, false, func() {})
	handle.Cancel()
	handle.Cancel()
	assert.Equal(t, 0, fake.Pending())

	_, ok := fake.NextDeadline()
	assert.False(t, ok)
}

func TestSystem_DispatchesThroughLoop(t *testing.T) {
	loop := NewLoop(4)
	system := NewSystem(loop.Dispatch)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	fired := make(chan struct{}, 1)
	system.Schedule(5*time.Millisecond, false, func() {
		fired <- struct{}{}
	})

	go func() {
		_ = loop.Run(ctx)
	}()

	select {
	case <-fired:
	case <-ctx.Done():
		t.Fatal("timer did not fire")
	}
}

func TestSystem_CancelledFireIsDropped(t *testing.T) {
	queued := make(chan func(), 1)
	system := NewSystem(func(fn func()) { queued <- fn })

	fired := false
	handle := system.Schedule(time.Millisecond, false, func() { fired = true })

	var deliver func()
	select {
	case deliver = <-queued:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}

	handle.Cancel()
	deliver()
	assert.False(t, fired)
}

func TestSystem_RepeatingStopsAfterCancel(t *testing.T) {
	loop := NewLoop(16)
	system := NewSystem(loop.Dispatch)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = loop.Run(ctx)
	}()

	ticks := make(chan int, 64)
	count := 0
	var mu sync.Mutex
	var handle Handle
	mu.Lock()
	handle = system.Schedule(2*time.Millisecond, true, func() {
		count++
		ticks <- count
		if count == 3 {
			mu.Lock()
			handle.Cancel()
			mu.Unlock()
		}
	})
	mu.Unlock()

	deadline := time.After(2 * time.Second)
	for received := 0; received < 3; {
		select {
		case <-ticks:
			received++
		case <-deadline:
			t.Fatal("repeating timer stalled")
		}
	}

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, ticks, 0)
}

func TestLoop_DispatchAfterRunIsDropped(t *testing.T) {
	loop := NewLoop(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	done := make(chan struct{})
	go func() {
		loop.Dispatch(func() {})
		loop.Dispatch(func() {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch blocked after loop stopped")
	}
}
