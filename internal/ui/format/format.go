// Package format renders player and stretch state as text for the tray
// windows and the terminal.
package format

import (
	"fmt"

	"letsstretch/internal/core/session"
)

// Countdown renders seconds as m:ss.
func Countdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ProgressHeader describes where the session is.
func ProgressHeader(phase session.Phase, total int) string {
	switch phase.Kind {
	case session.PhaseStretching:
		return fmt.Sprintf("Stretch %d of %d", phase.Index+1, total)
	case session.PhaseResting:
		return fmt.Sprintf("Rest, up next %d of %d", phase.Index+1, total)
	default:
		return "Session complete"
	}
}

// PauseLabel is the caption of the pause/resume button.
func PauseLabel(state session.PlayState) string {
	if state == session.Playing {
		return "Pause"
	}
	return "Resume"
}

// Instructions numbers the instruction steps.
func Instructions(steps []string) string {
	text := ""
	for index, step := range steps {
		if index > 0 {
			text += "\n"
		}
		text += fmt.Sprintf("%d. %s", index+1, step)
	}
	return text
}
