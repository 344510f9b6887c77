package reminder

import "time"

// State represents the current Scheduler mode.
type State string

const (
	StateIdle      State = "idle"
	StateScheduled State = "scheduled"
	StateReminded  State = "reminded"
	StateSnoozed   State = "snoozed"
)

// EventType defines the type of Scheduler event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventReminded    EventType = "reminded"
)

// Event represents a Scheduler update for observers.
type Event struct {
	Type  EventType
	State State
	// Delay is the duration of the timer armed by the transition, zero if none.
	Delay time.Duration
}
