package popover

import (
	"image/color"

	"letsstretch/internal/core/session"
	"letsstretch/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var (
	stretchColor = color.NRGBA{R: 46, G: 160, B: 120, A: 255}
	restColor    = color.NRGBA{R: 120, G: 130, B: 150, A: 255}
)

// SessionWindow plays a guided session, bound to a session.Player.
type SessionWindow struct {
	window       fyne.Window
	header       *widget.Label
	nameLabel    *widget.Label
	instructions *widget.Label
	countdown    *canvas.Text
	progress     *widget.ProgressBar
	pauseButton  *widget.Button
	playing      *fyne.Container
	completed    *fyne.Container
	player       *session.Player
	unsubscribe  func()
	onEnd        func()
}

// NewSessionWindow creates the hidden session window. onEnd runs when the user
// ends the session or closes the window.
func NewSessionWindow(app fyne.App, title string, onEnd func()) *SessionWindow {
	window := app.NewWindow(title + " Session")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &SessionWindow{
		window:       window,
		header:       widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		nameLabel:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		instructions: widget.NewLabel(""),
		countdown:    canvas.NewText("0:00", stretchColor),
		progress:     widget.NewProgressBar(),
		onEnd:        onEnd,
	}
	view.instructions.Wrapping = fyne.TextWrapWord
	view.countdown.Alignment = fyne.TextAlignCenter
	view.countdown.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.countdown.TextSize = 42

	view.pauseButton = widget.NewButton("Pause", func() {
		if view.player != nil {
			view.player.TogglePauseResume()
		}
	})
	skipButton := widget.NewButton("Skip", func() {
		if view.player != nil {
			view.player.SkipStretch()
		}
	})
	endButton := widget.NewButton("End", view.end)

	view.playing = container.NewBorder(
		container.NewVBox(view.header, view.progress, view.nameLabel),
		container.NewHBox(view.pauseButton, skipButton, layout.NewSpacer(), endButton),
		nil, nil,
		container.NewVBox(view.countdown, view.instructions),
	)

	closeButton := widget.NewButton("Close", func() { window.Hide() })
	closeButton.Importance = widget.HighImportance
	view.completed = container.NewVBox(
		layout.NewSpacer(),
		widget.NewLabelWithStyle("Nice work!", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Session complete.", fyne.TextAlignCenter, fyne.TextStyle{}),
		container.NewCenter(closeButton),
		layout.NewSpacer(),
	)
	view.completed.Hide()

	window.SetContent(container.NewStack(view.playing, view.completed))
	window.SetCloseIntercept(view.end)
	window.Resize(fyne.NewSize(380, 420))
	return view
}

// Show binds player and brings the window forward.
func (view *SessionWindow) Show(player *session.Player) {
	view.unbind()
	view.player = player
	view.unsubscribe = player.Subscribe(func(session.Event) {
		view.render()
	})
	view.render()
	view.window.CenterOnScreen()
	view.window.Show()
	view.window.RequestFocus()
}

func (view *SessionWindow) render() {
	player := view.player
	if player == nil {
		return
	}
	if player.IsCompleted() {
		view.playing.Hide()
		view.completed.Show()
		view.unbind()
		return
	}
	view.completed.Hide()
	view.playing.Show()

	view.header.SetText(format.ProgressHeader(player.Phase(), player.TotalStretches()))
	view.progress.SetValue(player.Progress())
	view.pauseButton.SetText(format.PauseLabel(player.PlayState()))

	if stretch, ok := player.CurrentStretch(); ok {
		if player.IsResting() {
			view.nameLabel.SetText("Next: " + stretch.Name)
		} else {
			view.nameLabel.SetText(stretch.Name)
		}
		view.instructions.SetText(format.Instructions(stretch.Instructions))
	}

	view.countdown.Text = format.Countdown(player.SecondsRemaining())
	view.countdown.Color = stretchColor
	if player.IsResting() {
		view.countdown.Color = restColor
	}
	view.countdown.Refresh()
}

func (view *SessionWindow) end() {
	view.unbind()
	view.player = nil
	view.window.Hide()
	if view.onEnd != nil {
		view.onEnd()
	}
}

func (view *SessionWindow) unbind() {
	if view.unsubscribe != nil {
		view.unsubscribe()
		view.unsubscribe = nil
	}
}
