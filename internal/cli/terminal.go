package cli

import (
	"fmt"
	"io"
	"strings"

	"letsstretch/internal/core/model"
	"letsstretch/internal/core/session"
	"letsstretch/internal/ui/format"
)

// countdownEvery controls how often tick lines are printed.
const countdownEvery = 5

// printSession writes a line per phase change, a countdown line every few
// seconds and a summary on completion. onCompleted may be nil.
func printSession(out io.Writer, player *session.Player, onCompleted func()) func() {
	return player.Subscribe(func(event session.Event) {
		switch event.Type {
		case session.EventPhaseChange:
			printPhase(out, player)
		case session.EventTick:
			if event.SecondsRemaining <= 3 || event.SecondsRemaining%countdownEvery == 0 {
				fmt.Fprintf(out, "  %s\n", format.Countdown(event.SecondsRemaining))
			}
		case session.EventPlayState:
			fmt.Fprintf(out, "  [%s]\n", event.PlayState)
		case session.EventCompleted:
			fmt.Fprintf(out, "Session complete: %d stretches.\n", player.TotalStretches())
			if onCompleted != nil {
				onCompleted()
			}
		}
	})
}

func printPhase(out io.Writer, player *session.Player) {
	stretch, ok := player.CurrentStretch()
	if !ok {
		return
	}
	header := format.ProgressHeader(player.Phase(), player.TotalStretches())
	if player.IsResting() {
		fmt.Fprintf(out, "%s: rest %ds before %s\n", header, player.SecondsRemaining(), stretch.Name)
		return
	}
	fmt.Fprintf(out, "%s: %s (%ds)\n", header, stretch.Name, player.SecondsRemaining())
	printInstructions(out, stretch)
}

func printStretch(out io.Writer, stretch model.Stretch) {
	fmt.Fprintf(out, "%s [%s, %s] %ds\n", stretch.Name, stretch.Category.DisplayName(), stretch.TargetArea, stretch.DurationSeconds)
	printStretchBody(out, stretch)
}

func printStretchBody(out io.Writer, stretch model.Stretch) {
	if stretch.Description != "" {
		fmt.Fprintf(out, "  %s\n", stretch.Description)
	}
	printInstructions(out, stretch)
}

func printInstructions(out io.Writer, stretch model.Stretch) {
	if len(stretch.Instructions) == 0 {
		return
	}
	for _, line := range strings.Split(format.Instructions(stretch.Instructions), "\n") {
		fmt.Fprintf(out, "    %s\n", line)
	}
}

// terminalView prints what the tray would show. Reminders are answered
// through onReminder so the caller decides how to react.
type terminalView struct {
	out        io.Writer
	onReminder func()
	onSession  func(*session.Player)
}

func (view *terminalView) SetStatus(status string) {
	fmt.Fprintf(view.out, "-- %s\n", status)
}

func (view *terminalView) ShowReminder() {
	if view.onReminder != nil {
		view.onReminder()
	}
}

func (view *terminalView) ClearReminder() {}

func (view *terminalView) ShowStretch(stretch model.Stretch) {
	printStretch(view.out, stretch)
}

func (view *terminalView) HideStretch() {}

func (view *terminalView) ShowSession(player *session.Player) {
	if view.onSession != nil {
		view.onSession(player)
	}
}
