package clock

import (
	"sort"
	"time"
)

// Fake is a virtual clock. Timers fire only from Advance, on the caller's goroutine.
type Fake struct {
	now    time.Time
	nextID uint64
	timers []*fakeTimer
}

type fakeTimer struct {
	id       uint64
	fake     *Fake
	deadline time.Time
	period   time.Duration
	repeats  bool
	fn       func()
	armed    bool
}

// NewFake creates a virtual clock starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now returns the virtual time.
func (fake *Fake) Now() time.Time {
	return fake.now
}

// Schedule arms fn at Now()+d.
func (fake *Fake) Schedule(d time.Duration, repeats bool, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	fake.nextID++
	timer := &fakeTimer{
		id:       fake.nextID,
		fake:     fake,
		deadline: fake.now.Add(d),
		period:   d,
		repeats:  repeats,
		fn:       fn,
		armed:    true,
	}
	fake.timers = append(fake.timers, timer)
	return timer
}

// Advance moves the clock forward by d, firing every callback whose deadline
// falls within the window in deadline order. Callbacks may arm or cancel timers.
func (fake *Fake) Advance(d time.Duration) {
	target := fake.now.Add(d)
	for {
		timer := fake.nextDue(target)
		if timer == nil {
			break
		}
		fake.now = timer.deadline
		if timer.repeats && timer.period > 0 {
			timer.deadline = timer.deadline.Add(timer.period)
		} else {
			timer.armed = false
			fake.remove(timer)
		}
		timer.fn()
	}
	fake.now = target
}

// Pending reports the number of armed timers.
func (fake *Fake) Pending() int {
	return len(fake.timers)
}

// NextDeadline returns the earliest armed deadline.
func (fake *Fake) NextDeadline() (time.Time, bool) {
	if len(fake.timers) == 0 {
		return time.Time{}, false
	}
	fake.sortTimers()
	return fake.timers[0].deadline, true
}

func (fake *Fake) nextDue(target time.Time) *fakeTimer {
	if len(fake.timers) == 0 {
		return nil
	}
	fake.sortTimers()
	first := fake.timers[0]
	if first.deadline.After(target) {
		return nil
	}
	return first
}

func (fake *Fake) sortTimers() {
	sort.SliceStable(fake.timers, func(i, j int) bool {
		if fake.timers[i].deadline.Equal(fake.timers[j].deadline) {
			return fake.timers[i].id < fake.timers[j].id
		}
		return fake.timers[i].deadline.Before(fake.timers[j].deadline)
	})
}

func (fake *Fake) remove(target *fakeTimer) {
	for index, timer := range fake.timers {
		if timer == target {
			fake.timers = append(fake.timers[:index], fake.timers[index+1:]...)
			return
		}
	}
}

func (timer *fakeTimer) Cancel() {
	if !timer.armed {
		return
	}
	timer.armed = false
	timer.fake.remove(timer)
}
