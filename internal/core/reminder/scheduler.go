package reminder

import (
	"time"

	"letsstretch/internal/core/clock"
	"letsstretch/internal/core/model"
	"letsstretch/internal/events"
)

const (
	DefaultIntervalMinutes = 45
	DefaultSnoozeMinutes   = 10
)

// Scheduler is a state machine that decides when to nudge the user.
//
// It is not safe for concurrent use: every method and every timer callback
// must run on the same control thread.
type Scheduler struct {
	state           State
	intervalMinutes int
	snoozeMinutes   int
	provider        clock.Provider
	timer           clock.Handle
	onReminded      func(Event)
	changes         *events.CallbackEvent[Event]
}

// New creates an idle Scheduler. Minute values below one are raised to one.
func New(config model.ReminderConfig, provider clock.Provider) *Scheduler {
	return &Scheduler{
		state:           StateIdle,
		intervalMinutes: atLeastOne(config.IntervalMinutes),
		snoozeMinutes:   atLeastOne(config.SnoozeMinutes),
		provider:        provider,
		changes:         events.NewCallbackEvent[Event](false),
	}
}

// SetOnReminded installs the single sink invoked on entry to StateReminded.
func (scheduler *Scheduler) SetOnReminded(handler func(Event)) {
	scheduler.onReminded = handler
}

// Subscribe registers an observer for every transition and returns its
// unsubscribe function.
func (scheduler *Scheduler) Subscribe(observer func(Event)) func() {
	return scheduler.changes.Listen(observer)
}

// State returns the current state.
func (scheduler *Scheduler) State() State {
	return scheduler.state
}

// Armed reports whether a timer is pending.
func (scheduler *Scheduler) Armed() bool {
	return scheduler.timer != nil
}

// IntervalMinutes returns the reminder interval.
func (scheduler *Scheduler) IntervalMinutes() int {
	return scheduler.intervalMinutes
}

// SnoozeMinutes returns the snooze duration.
func (scheduler *Scheduler) SnoozeMinutes() int {
	return scheduler.snoozeMinutes
}

// SetIntervalMinutes changes the interval used by the next arm.
func (scheduler *Scheduler) SetIntervalMinutes(minutes int) {
	scheduler.intervalMinutes = atLeastOne(minutes)
}

// SetSnoozeMinutes changes the snooze used by the next arm.
func (scheduler *Scheduler) SetSnoozeMinutes(minutes int) {
	scheduler.snoozeMinutes = atLeastOne(minutes)
}

// UpdateConfig applies both durations. An armed timer keeps its deadline.
func (scheduler *Scheduler) UpdateConfig(config model.ReminderConfig) {
	scheduler.SetIntervalMinutes(config.IntervalMinutes)
	scheduler.SetSnoozeMinutes(config.SnoozeMinutes)
}

// Start (re)arms the interval timer from any state.
func (scheduler *Scheduler) Start() {
	scheduler.cancelTimer()
	scheduler.state = StateIdle
	scheduler.arm(scheduler.intervalMinutes, StateScheduled)
}

// Stop cancels any timer and returns to StateIdle.
func (scheduler *Scheduler) Stop() {
	scheduler.cancelTimer()
	if scheduler.state == StateIdle {
		return
	}
	scheduler.state = StateIdle
	scheduler.emit(Event{Type: EventStateChange, State: StateIdle})
}

// Snooze delays the reminder by the snooze duration. Only valid while reminded.
func (scheduler *Scheduler) Snooze() {
	if scheduler.state != StateReminded {
		return
	}
	scheduler.arm(scheduler.snoozeMinutes, StateSnoozed)
}

// Skip drops the current reminder and waits a full interval. Valid while
// reminded or snoozed.
func (scheduler *Scheduler) Skip() {
	if scheduler.state != StateReminded && scheduler.state != StateSnoozed {
		return
	}
	scheduler.arm(scheduler.intervalMinutes, StateScheduled)
}

// Dismiss acknowledges the reminder and waits a full interval. Only valid
// while reminded.
func (scheduler *Scheduler) Dismiss() {
	if scheduler.state != StateReminded {
		return
	}
	scheduler.arm(scheduler.intervalMinutes, StateScheduled)
}

// arm replaces the current timer and enters next.
func (scheduler *Scheduler) arm(minutes int, next State) {
	scheduler.cancelTimer()
	delay := time.Duration(minutes) * time.Minute

	var handle clock.Handle
	handle = scheduler.provider.Schedule(delay, false, func() {
		scheduler.fire(handle)
	})
	scheduler.timer = handle
	scheduler.state = next
	scheduler.emit(Event{Type: EventStateChange, State: next, Delay: delay})
}

func (scheduler *Scheduler) fire(handle clock.Handle) {
	if handle != scheduler.timer {
		return
	}
	if scheduler.state != StateScheduled && scheduler.state != StateSnoozed {
		return
	}
	scheduler.timer = nil
	scheduler.state = StateReminded

	event := Event{Type: EventReminded, State: StateReminded}
	scheduler.emit(event)
	if scheduler.onReminded != nil {
		scheduler.onReminded(event)
	}
}

func (scheduler *Scheduler) cancelTimer() {
	if scheduler.timer != nil {
		scheduler.timer.Cancel()
		scheduler.timer = nil
	}
}

func (scheduler *Scheduler) emit(event Event) {
	scheduler.changes.Notify(event)
}

func atLeastOne(minutes int) int {
	if minutes < 1 {
		return 1
	}
	return minutes
}
