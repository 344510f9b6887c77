package preferences

import (
	"letsstretch/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

type picker struct {
	choices []int
	unit    string
	options []Option
	selects *widget.Select
}

func newPicker(choices []int, unit string) *picker {
	return &picker{choices: choices, unit: unit, selects: widget.NewSelect(nil, nil)}
}

func (picker *picker) set(value int) {
	picker.options = Options(picker.choices, value, picker.unit)
	picker.selects.SetOptions(Labels(picker.options))
	picker.selects.SetSelected(LabelFor(picker.options, value))
}

func (picker *picker) value(fallback int) int {
	if value, ok := ValueFor(picker.options, picker.selects.Selected); ok {
		return value
	}
	return fallback
}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings)
	interval      *picker
	snooze        *picker
	duration      *picker
	rest          *picker
	perSession    *picker
	categories    map[model.Category]*widget.Check
	launchAtLogin *widget.Check
	updating      bool
}

// New creates a preferences window.
func New(app fyne.App, title string, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow(title + " Settings")

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		interval:      newPicker(IntervalChoices, "min"),
		snooze:        newPicker(SnoozeChoices, "min"),
		duration:      newPicker(StretchDurationChoices, "sec"),
		rest:          newPicker(RestIntervalChoices, "sec"),
		perSession:    newPicker(PerSessionChoices, ""),
		categories:    make(map[model.Category]*widget.Check),
		launchAtLogin: widget.NewCheck("Launch at login", nil),
	}

	categoryBox := container.NewVBox()
	for _, category := range model.Categories() {
		category := category
		check := widget.NewCheck(category.DisplayName(), nil)
		check.OnChanged = func(checked bool) {
			prefs.toggleCategory(category, checked)
		}
		prefs.categories[category] = check
		categoryBox.Add(check)
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Reminders", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Remind every", prefs.interval.selects),
			widget.NewFormItem("Snooze for", prefs.snooze.selects),
		),
		widget.NewLabelWithStyle("Sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Hold each stretch", prefs.duration.selects),
			widget.NewFormItem("Rest between", prefs.rest.selects),
			widget.NewFormItem("Stretches per session", prefs.perSession.selects),
		),
		widget.NewLabelWithStyle("Categories", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		categoryBox,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.launchAtLogin,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(layout.NewSpacer(), cancelButton, saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(func() {
		window.Hide()
	})
	window.Resize(fyne.NewSize(380, 460))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.updating = true
	defer func() { prefs.updating = false }()

	prefs.settings = settings
	prefs.interval.set(settings.ReminderIntervalMinutes)
	prefs.snooze.set(settings.SnoozeIntervalMinutes)
	prefs.duration.set(settings.StretchDurationSeconds)
	prefs.rest.set(settings.RestIntervalSeconds)
	prefs.perSession.set(settings.StretchesPerSession)
	for category, check := range prefs.categories {
		check.SetChecked(settings.CategoryEnabled(category))
	}
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
}

func (prefs *Window) toggleCategory(category model.Category, checked bool) {
	if prefs.updating {
		return
	}
	updated, ok := prefs.selectedSettings().WithCategory(category, checked)
	if !ok {
		prefs.categories[category].SetChecked(true)
		return
	}
	prefs.settings.EnabledCategories = updated.EnabledCategories
}

func (prefs *Window) selectedSettings() model.Settings {
	settings := prefs.settings
	settings.EnabledCategories = nil
	for _, category := range model.Categories() {
		if prefs.categories[category].Checked {
			settings.EnabledCategories = append(settings.EnabledCategories, category)
		}
	}
	return settings
}

func (prefs *Window) handleSave() {
	settings := prefs.selectedSettings()
	if len(settings.EnabledCategories) == 0 {
		settings.EnabledCategories = prefs.settings.EnabledCategories
	}
	settings.ReminderIntervalMinutes = prefs.interval.value(settings.ReminderIntervalMinutes)
	settings.SnoozeIntervalMinutes = prefs.snooze.value(settings.SnoozeIntervalMinutes)
	settings.StretchDurationSeconds = prefs.duration.value(settings.StretchDurationSeconds)
	settings.RestIntervalSeconds = prefs.rest.value(settings.RestIntervalSeconds)
	settings.StretchesPerSession = prefs.perSession.value(settings.StretchesPerSession)
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
