package model

import (
	"time"

	"github.com/google/uuid"
)

// Session records one guided run through a sequence of stretches.
type Session struct {
	ID                     uuid.UUID
	Stretches              []Stretch
	StretchDurationSeconds int
	RestIntervalSeconds    int
	StartedAt              time.Time
}

// NewSession creates a session record with a fresh id.
func NewSession(stretches []Stretch, stretchDurationSeconds, restIntervalSeconds int, startedAt time.Time) Session {
	return Session{
		ID:                     uuid.New(),
		Stretches:              append([]Stretch(nil), stretches...),
		StretchDurationSeconds: stretchDurationSeconds,
		RestIntervalSeconds:    restIntervalSeconds,
		StartedAt:              startedAt,
	}
}

// TotalDurationSeconds is the stretch time plus the rests between stretches.
func (session Session) TotalDurationSeconds() int {
	count := len(session.Stretches)
	rests := count - 1
	if rests < 0 {
		rests = 0
	}
	return count*session.StretchDurationSeconds + rests*session.RestIntervalSeconds
}
