package session

import "fmt"

// PhaseKind distinguishes the parts of a session.
type PhaseKind int

const (
	PhaseStretching PhaseKind = iota
	PhaseResting
	PhaseCompleted
)

// Phase is the active part of a session. Index is the playlist position being
// stretched while stretching, and the upcoming position while resting.
type Phase struct {
	Kind  PhaseKind
	Index int
}

// Stretching returns the phase for performing the stretch at index.
func Stretching(index int) Phase {
	return Phase{Kind: PhaseStretching, Index: index}
}

// Resting returns the rest phase before the stretch at nextIndex.
func Resting(nextIndex int) Phase {
	return Phase{Kind: PhaseResting, Index: nextIndex}
}

// Completed returns the terminal phase.
func Completed() Phase {
	return Phase{Kind: PhaseCompleted}
}

func (phase Phase) String() string {
	switch phase.Kind {
	case PhaseStretching:
		return fmt.Sprintf("stretching(%d)", phase.Index)
	case PhaseResting:
		return fmt.Sprintf("resting(%d)", phase.Index)
	default:
		return "completed"
	}
}

// PlayState reports whether the countdown is running.
type PlayState string

const (
	Playing PlayState = "playing"
	Paused  PlayState = "paused"
)

// EventType defines the type of Player event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventPhaseChange EventType = "phase"
	EventPlayState   EventType = "play_state"
	EventCompleted   EventType = "completed"
)

// Event is a snapshot of the Player published after a mutation.
type Event struct {
	Type             EventType
	Phase            Phase
	PlayState        PlayState
	SecondsRemaining int
	Progress         float64
}
