package session

import (
	"time"

	"letsstretch/internal/core/clock"
	"letsstretch/internal/core/model"
	"letsstretch/internal/events"
)

const (
	DefaultStretchDurationSeconds = 20
	DefaultRestIntervalSeconds    = 5

	tickInterval = time.Second
)

// Player drives an ordered playlist through alternating stretch and rest
// countdowns.
//
// It is not safe for concurrent use: every method and every timer callback
// must run on the same control thread.
type Player struct {
	stretches        []model.Stretch
	stretchDuration  int
	restInterval     int
	phase            Phase
	playState        PlayState
	secondsRemaining int
	provider         clock.Provider
	timer            clock.Handle
	changes          *events.CallbackEvent[Event]
}

// NewPlayer creates a prepared, paused player. Negative durations are treated
// as zero. An empty playlist yields a player that is already completed.
func NewPlayer(stretches []model.Stretch, stretchDurationSeconds, restIntervalSeconds int, provider clock.Provider) *Player {
	player := &Player{
		stretches:       append([]model.Stretch(nil), stretches...),
		stretchDuration: atLeastZero(stretchDurationSeconds),
		restInterval:    atLeastZero(restIntervalSeconds),
		playState:       Paused,
		provider:        provider,
		changes:         events.NewCallbackEvent[Event](false),
	}
	player.phase = Stretching(0)
	player.secondsRemaining = player.stretchDuration
	if len(player.stretches) == 0 {
		player.phase = Completed()
	}
	return player
}

// Subscribe registers an observer called after every mutation.
func (player *Player) Subscribe(observer func(Event)) func() {
	return player.changes.Listen(observer)
}

// Prepare resets to the first stretch without starting the countdown.
func (player *Player) Prepare() {
	player.cancelTimer()
	if len(player.stretches) == 0 {
		player.phase = Completed()
		player.playState = Paused
		player.emit(EventCompleted)
		return
	}
	player.phase = Stretching(0)
	player.playState = Paused
	player.secondsRemaining = player.stretchDuration
	player.emit(EventPhaseChange)
}

// Start resets to the first stretch and starts the countdown.
func (player *Player) Start() {
	player.cancelTimer()
	if len(player.stretches) == 0 {
		player.phase = Completed()
		player.playState = Paused
		player.emit(EventCompleted)
		return
	}
	player.phase = Stretching(0)
	player.playState = Playing
	player.secondsRemaining = player.stretchDuration
	player.armTimer()
	player.emit(EventPhaseChange)
}

// Pause stops the countdown. Phase and remaining seconds are kept.
func (player *Player) Pause() {
	if player.playState != Playing {
		return
	}
	player.playState = Paused
	player.cancelTimer()
	player.emit(EventPlayState)
}

// Resume restarts the countdown. A completed session stays completed.
func (player *Player) Resume() {
	if player.playState != Paused || player.phase.Kind == PhaseCompleted {
		return
	}
	player.playState = Playing
	player.armTimer()
	player.emit(EventPlayState)
}

// TogglePauseResume pauses a playing session and resumes a paused one.
func (player *Player) TogglePauseResume() {
	if player.playState == Playing {
		player.Pause()
		return
	}
	player.Resume()
}

// SkipStretch leaves the current phase immediately. Skipping a stretch enters
// the following rest; skipping a rest enters the next stretch.
func (player *Player) SkipStretch() {
	player.cancelTimer()
	player.advance()
}

// EndSession completes the session from any phase.
func (player *Player) EndSession() {
	player.cancelTimer()
	player.phase = Completed()
	player.playState = Paused
	player.emit(EventCompleted)
}

// Tick runs one second of countdown. It is what the armed timer calls and is
// exported so callers can drive the player without a clock.
func (player *Player) Tick() {
	if player.playState != Playing {
		return
	}
	if player.phase.Kind == PhaseCompleted {
		return
	}

	if player.secondsRemaining > 0 {
		player.secondsRemaining--
	}
	if player.secondsRemaining > 0 {
		player.emit(EventTick)
		return
	}
	player.advance()
}

func (player *Player) advance() {
	switch player.phase.Kind {
	case PhaseStretching:
		next := player.phase.Index + 1
		if next < len(player.stretches) {
			player.phase = Resting(next)
			player.secondsRemaining = player.restInterval
			player.rearmIfPlaying()
			player.emit(EventPhaseChange)
			return
		}
		player.phase = Completed()
		player.playState = Paused
		player.cancelTimer()
		player.emit(EventCompleted)

	case PhaseResting:
		player.phase = Stretching(player.phase.Index)
		player.secondsRemaining = player.stretchDuration
		player.rearmIfPlaying()
		player.emit(EventPhaseChange)

	case PhaseCompleted:
	}
}

func (player *Player) rearmIfPlaying() {
	if player.playState == Playing {
		player.armTimer()
	}
}

func (player *Player) armTimer() {
	player.cancelTimer()
	var handle clock.Handle
	handle = player.provider.Schedule(tickInterval, true, func() {
		if handle != player.timer {
			return
		}
		player.Tick()
	})
	player.timer = handle
}

func (player *Player) cancelTimer() {
	if player.timer != nil {
		player.timer.Cancel()
		player.timer = nil
	}
}

func (player *Player) emit(eventType EventType) {
	player.changes.Notify(Event{
		Type:             eventType,
		Phase:            player.phase,
		PlayState:        player.playState,
		SecondsRemaining: player.secondsRemaining,
		Progress:         player.Progress(),
	})
}

// Phase returns the current phase.
func (player *Player) Phase() Phase {
	return player.phase
}

// PlayState returns whether the countdown is running.
func (player *Player) PlayState() PlayState {
	return player.playState
}

// SecondsRemaining returns the countdown of the current phase.
func (player *Player) SecondsRemaining() int {
	return player.secondsRemaining
}

// StretchDurationSeconds returns the configured stretch length.
func (player *Player) StretchDurationSeconds() int {
	return player.stretchDuration
}

// RestIntervalSeconds returns the configured rest length.
func (player *Player) RestIntervalSeconds() int {
	return player.restInterval
}

// Armed reports whether the tick timer is pending.
func (player *Player) Armed() bool {
	return player.timer != nil
}

// Stretches returns a copy of the playlist.
func (player *Player) Stretches() []model.Stretch {
	return append([]model.Stretch(nil), player.stretches...)
}

// CurrentStretch returns the stretch being performed, or the upcoming one while
// resting. It reports false once completed.
func (player *Player) CurrentStretch() (model.Stretch, bool) {
	switch player.phase.Kind {
	case PhaseStretching, PhaseResting:
		index := player.phase.Index
		if index >= 0 && index < len(player.stretches) {
			return player.stretches[index], true
		}
	}
	return model.Stretch{}, false
}

// CurrentStretchIndex returns the position of the last stretch started.
func (player *Player) CurrentStretchIndex() int {
	switch player.phase.Kind {
	case PhaseStretching:
		return player.phase.Index
	case PhaseResting:
		return player.phase.Index - 1
	default:
		return len(player.stretches) - 1
	}
}

// TotalStretches returns the playlist length.
func (player *Player) TotalStretches() int {
	return len(player.stretches)
}

// IsResting reports whether a rest phase is active.
func (player *Player) IsResting() bool {
	return player.phase.Kind == PhaseResting
}

// IsCompleted reports whether the session has finished.
func (player *Player) IsCompleted() bool {
	return player.phase.Kind == PhaseCompleted
}

// Progress returns the fraction of the session done, in [0, 1].
func (player *Player) Progress() float64 {
	count := len(player.stretches)
	if count == 0 {
		return 0
	}
	switch player.phase.Kind {
	case PhaseStretching:
		elapsed := float64(player.stretchDuration - player.secondsRemaining)
		fraction := elapsed / float64(maxInt(player.stretchDuration, 1))
		return clamp01((float64(player.phase.Index) + fraction) / float64(count))
	case PhaseResting:
		return clamp01(float64(player.phase.Index) / float64(count))
	default:
		return 1
	}
}

// Record builds the session record for the playlist started at startedAt.
func (player *Player) Record(startedAt time.Time) model.Session {
	return model.NewSession(player.stretches, player.stretchDuration, player.restInterval, startedAt)
}

func atLeastZero(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clamp01(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
