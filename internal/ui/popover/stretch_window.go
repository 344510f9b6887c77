package popover

import (
	"fmt"

	"letsstretch/internal/core/model"
	"letsstretch/internal/ui/format"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// StretchCallbacks are the actions offered by the stretch detail view.
type StretchCallbacks struct {
	OnDone         func()
	OnSkip         func()
	OnStartSession func()
}

// StretchWindow shows a single suggested stretch.
type StretchWindow struct {
	window       fyne.Window
	nameLabel    *widget.Label
	metaLabel    *widget.Label
	description  *widget.Label
	instructions *widget.Label
	callbacks    StretchCallbacks
}

// NewStretchWindow creates the hidden detail window.
func NewStretchWindow(app fyne.App, title string, callbacks StretchCallbacks) *StretchWindow {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	detail := &StretchWindow{
		window:       window,
		nameLabel:    widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		metaLabel:    widget.NewLabel(""),
		description:  widget.NewLabel(""),
		instructions: widget.NewLabel(""),
		callbacks:    callbacks,
	}
	detail.description.Wrapping = fyne.TextWrapWord
	detail.instructions.Wrapping = fyne.TextWrapWord

	doneButton := widget.NewButton("Done", func() { call(detail.callbacks.OnDone) })
	doneButton.Importance = widget.HighImportance
	skipButton := widget.NewButton("Skip", func() { call(detail.callbacks.OnSkip) })
	sessionButton := widget.NewButton("Start Session", func() { call(detail.callbacks.OnStartSession) })

	body := container.NewVBox(
		detail.nameLabel,
		detail.metaLabel,
		widget.NewSeparator(),
		detail.description,
		detail.instructions,
	)
	buttons := container.NewHBox(skipButton, layout.NewSpacer(), sessionButton, doneButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(body)))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Resize(fyne.NewSize(360, 340))
	return detail
}

// Show fills the window with stretch and brings it forward.
func (detail *StretchWindow) Show(stretch model.Stretch) {
	detail.nameLabel.SetText(stretch.Name)
	detail.metaLabel.SetText(fmt.Sprintf("%s · %s · %ds", stretch.Category.DisplayName(), stretch.TargetArea, stretch.DurationSeconds))
	detail.description.SetText(stretch.Description)
	detail.instructions.SetText(format.Instructions(stretch.Instructions))
	detail.window.CenterOnScreen()
	detail.window.Show()
	detail.window.RequestFocus()
}

// Hide closes the window.
func (detail *StretchWindow) Hide() {
	detail.window.Hide()
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
