package reminder

import (
	"testing"
	"time"

	"letsstretch/internal/core/clock"
	"letsstretch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func newTestScheduler(interval, snooze int) (*Scheduler, *clock.Fake, *int) {
	fake := clock.NewFake(epoch)
	scheduler := New(model.ReminderConfig{IntervalMinutes: interval, SnoozeMinutes: snooze}, fake)
	reminded := 0
	scheduler.SetOnReminded(func(Event) { reminded++ })
	return scheduler, fake, &reminded
}

// driveTo puts a fresh scheduler into the requested state.
func driveTo(t *testing.T, scheduler *Scheduler, fake *clock.Fake, state State) {
	t.Helper()
	switch state {
	case StateIdle:
	case StateScheduled:
		scheduler.Start()
	case StateReminded:
		scheduler.Start()
		fake.Advance(time.Duration(scheduler.IntervalMinutes()) * time.Minute)
	case StateSnoozed:
		scheduler.Start()
		fake.Advance(time.Duration(scheduler.IntervalMinutes()) * time.Minute)
		scheduler.Snooze()
	}
	require.Equal(t, state, scheduler.State())
}

func TestScheduler_InitialState(t *testing.T) {
	scheduler, fake, _ := newTestScheduler(45, 10)
	assert.Equal(t, StateIdle, scheduler.State())
	assert.False(t, scheduler.Armed())
	assert.Equal(t, 0, fake.Pending())
	assert.Equal(t, 45, scheduler.IntervalMinutes())
	assert.Equal(t, 10, scheduler.SnoozeMinutes())
}

func TestScheduler_TransitionTable(t *testing.T) {
	actions := map[string]func(*Scheduler){
		"start":   (*Scheduler).Start,
		"stop":    (*Scheduler).Stop,
		"snooze":  (*Scheduler).Snooze,
		"skip":    (*Scheduler).Skip,
		"dismiss": (*Scheduler).Dismiss,
	}

	tests := []struct {
		from      State
		action    string
		want      State
		wantDelay time.Duration // zero means no timer afterwards
	}{
		{StateIdle, "start", StateScheduled, 45 * time.Minute},
		{StateIdle, "stop", StateIdle, 0},
		{StateIdle, "snooze", StateIdle, 0},
		{StateIdle, "skip", StateIdle, 0},
		{StateIdle, "dismiss", StateIdle, 0},

		{StateScheduled, "start", StateScheduled, 45 * time.Minute},
		{StateScheduled, "stop", StateIdle, 0},
		{StateScheduled, "snooze", StateScheduled, 45 * time.Minute},
		{StateScheduled, "skip", StateScheduled, 45 * time.Minute},
		{StateScheduled, "dismiss", StateScheduled, 45 * time.Minute},

		{StateReminded, "start", StateScheduled, 45 * time.Minute},
		{StateReminded, "stop", StateIdle, 0},
		{StateReminded, "snooze", StateSnoozed, 10 * time.Minute},
		{StateReminded, "skip", StateScheduled, 45 * time.Minute},
		{StateReminded, "dismiss", StateScheduled, 45 * time.Minute},

		{StateSnoozed, "start", StateScheduled, 45 * time.Minute},
		{StateSnoozed, "stop", StateIdle, 0},
		{StateSnoozed, "snooze", StateSnoozed, 10 * time.Minute},
		{StateSnoozed, "skip", StateScheduled, 45 * time.Minute},
		{StateSnoozed, "dismiss", StateSnoozed, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.action, func(t *testing.T) {
			scheduler, fake, _ := newTestScheduler(45, 10)
			driveTo(t, scheduler, fake, tt.from)
			deadlineBefore, armedBefore := fake.NextDeadline()

			actions[tt.action](scheduler)

			assert.Equal(t, tt.want, scheduler.State())
			if tt.wantDelay == 0 {
				assert.False(t, scheduler.Armed())
				assert.Equal(t, 0, fake.Pending())
				return
			}

			assert.True(t, scheduler.Armed())
			assert.Equal(t, 1, fake.Pending())
			deadline, ok := fake.NextDeadline()
			require.True(t, ok)

			noop := tt.from == tt.want && tt.action != "start"
			if noop {
				assert.True(t, armedBefore)
				assert.Equal(t, deadlineBefore, deadline, "no-op must leave the timer untouched")
				return
			}
			assert.Equal(t, fake.Now().Add(tt.wantDelay), deadline)
		})
	}
}

func TestScheduler_TimerInvariant(t *testing.T) {
	for _, state := range []State{StateIdle, StateScheduled, StateReminded, StateSnoozed} {
		t.Run(string(state), func(t *testing.T) {
			scheduler, fake, _ := newTestScheduler(30, 5)
			driveTo(t, scheduler, fake, state)
			wantArmed := state == StateScheduled || state == StateSnoozed
			assert.Equal(t, wantArmed, scheduler.Armed())
			if wantArmed {
				assert.Equal(t, 1, fake.Pending())
			} else {
				assert.Equal(t, 0, fake.Pending())
			}
		})
	}
}

func TestScheduler_ScenarioSnoozeThenDismiss(t *testing.T) {
	scheduler, fake, reminded := newTestScheduler(45, 10)

	scheduler.Start()
	assert.Equal(t, StateScheduled, scheduler.State())

	fake.Advance(45 * time.Minute)
	assert.Equal(t, StateReminded, scheduler.State())
	assert.Equal(t, 1, *reminded)

	scheduler.Snooze()
	assert.Equal(t, StateSnoozed, scheduler.State())

	fake.Advance(10 * time.Minute)
	assert.Equal(t, StateReminded, scheduler.State())
	assert.Equal(t, 2, *reminded)

	scheduler.Dismiss()
	assert.Equal(t, StateScheduled, scheduler.State())
}

func TestScheduler_OneNotificationPerInterval(t *testing.T) {
	scheduler, fake, reminded := newTestScheduler(20, 5)
	scheduler.Start()

	for round := 1; round <= 4; round++ {
		fake.Advance(20*time.Minute - time.Second)
		assert.Equal(t, round-1, *reminded)
		fake.Advance(time.Second)
		assert.Equal(t, round, *reminded)

		// Staying reminded never produces another notification.
		fake.Advance(3 * time.Hour)
		assert.Equal(t, round, *reminded)
		scheduler.Dismiss()
	}
}

func TestScheduler_SnoozeCountsFromSnoozeMoment(t *testing.T) {
	scheduler, fake, reminded := newTestScheduler(45, 10)
	scheduler.Start()
	fake.Advance(45 * time.Minute)
	require.Equal(t, 1, *reminded)

	// The user reacts seven minutes after the reminder.
	fake.Advance(7 * time.Minute)
	scheduler.Snooze()

	fake.Advance(10*time.Minute - time.Second)
	assert.Equal(t, 1, *reminded)
	assert.Equal(t, StateSnoozed, scheduler.State())

	fake.Advance(time.Second)
	assert.Equal(t, 2, *reminded)
}

func TestScheduler_StartRestartsInterval(t *testing.T) {
	scheduler, fake, reminded := newTestScheduler(45, 10)
	scheduler.Start()
	fake.Advance(40 * time.Minute)

	scheduler.Start()
	assert.Equal(t, 1, fake.Pending())

	fake.Advance(40 * time.Minute)
	assert.Equal(t, 0, *reminded)
	fake.Advance(5 * time.Minute)
	assert.Equal(t, 1, *reminded)
}

func TestScheduler_StopPreventsFurtherFires(t *testing.T) {
	scheduler, fake, reminded := newTestScheduler(1, 1)
	scheduler.Start()
	scheduler.Stop()

	fake.Advance(24 * time.Hour)
	assert.Equal(t, 0, *reminded)
	assert.Equal(t, StateIdle, scheduler.State())
}

func TestScheduler_ConfigChangeAppliesOnNextArm(t *testing.T) {
	scheduler, fake, reminded := newTestScheduler(45, 10)
	scheduler.Start()

	scheduler.SetIntervalMinutes(15)
	scheduler.SetSnoozeMinutes(3)

	fake.Advance(15 * time.Minute)
	assert.Equal(t, 0, *reminded, "armed timer keeps its original deadline")
	fake.Advance(30 * time.Minute)
	assert.Equal(t, 1, *reminded)

	scheduler.Snooze()
	fake.Advance(3 * time.Minute)
	assert.Equal(t, 2, *reminded)

	scheduler.Skip()
	fake.Advance(15 * time.Minute)
	assert.Equal(t, 3, *reminded)
}

func TestScheduler_UpdateConfigClampsToOneMinute(t *testing.T) {
	scheduler, _, _ := newTestScheduler(0, -4)
	assert.Equal(t, 1, scheduler.IntervalMinutes())
	assert.Equal(t, 1, scheduler.SnoozeMinutes())

	scheduler.UpdateConfig(model.ReminderConfig{IntervalMinutes: 60, SnoozeMinutes: 0})
	assert.Equal(t, 60, scheduler.IntervalMinutes())
	assert.Equal(t, 1, scheduler.SnoozeMinutes())
}

func TestScheduler_SubscribeReceivesTransitions(t *testing.T) {
	scheduler, fake, _ := newTestScheduler(45, 10)

	var received []Event
	unsubscribe := scheduler.Subscribe(func(event Event) {
		received = append(received, event)
	})

	scheduler.Start()
	fake.Advance(45 * time.Minute)
	scheduler.Snooze()
	scheduler.Dismiss() // no-op while snoozed
	scheduler.Stop()

	assert.Equal(t, []Event{
		{Type: EventStateChange, State: StateScheduled, Delay: 45 * time.Minute},
		{Type: EventReminded, State: StateReminded},
		{Type: EventStateChange, State: StateSnoozed, Delay: 10 * time.Minute},
		{Type: EventStateChange, State: StateIdle},
	}, received)

	unsubscribe()
	scheduler.Start()
	assert.Len(t, received, 4)
}

func TestScheduler_ReminderSinkSeesRemindedState(t *testing.T) {
	fake := clock.NewFake(epoch)
	scheduler := New(model.ReminderConfig{IntervalMinutes: 5, SnoozeMinutes: 5}, fake)

	var seen State
	scheduler.SetOnReminded(func(event Event) {
		seen = scheduler.State()
		assert.Equal(t, EventReminded, event.Type)
	})

	scheduler.Start()
	fake.Advance(5 * time.Minute)
	assert.Equal(t, StateReminded, seen)
}

func TestScheduler_SinkMayActSynchronously(t *testing.T) {
	fake := clock.NewFake(epoch)
	scheduler := New(model.ReminderConfig{IntervalMinutes: 5, SnoozeMinutes: 2}, fake)
	scheduler.SetOnReminded(func(Event) {
		scheduler.Snooze()
	})

	var states []State
	scheduler.Subscribe(func(event Event) { states = append(states, event.State) })

	scheduler.Start()
	fake.Advance(5 * time.Minute)
	assert.Equal(t, StateSnoozed, scheduler.State())
	assert.Equal(t, 1, fake.Pending())
	assert.Equal(t, []State{StateScheduled, StateReminded, StateSnoozed}, states)
}
