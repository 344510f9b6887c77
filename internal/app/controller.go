package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"letsstretch/internal/catalog"
	"letsstretch/internal/core/clock"
	"letsstretch/internal/core/model"
	"letsstretch/internal/core/reminder"
	"letsstretch/internal/core/session"
)

// View is the surface the controller drives. Every method is called on the
// control thread.
type View interface {
	SetStatus(status string)
	ShowReminder()
	ClearReminder()
	ShowStretch(stretch model.Stretch)
	HideStretch()
	ShowSession(player *session.Player)
}

// SettingsStore persists user preferences.
type SettingsStore interface {
	Save(settings model.Settings) error
}

// LoginItems toggles launch at login.
type LoginItems interface {
	SetLaunchAtLogin(enabled bool) error
}

// Options holds the controller dependencies. Store, Login, Logger and OnQuit
// are optional.
type Options struct {
	Clock    clock.Clock
	Catalog  *catalog.Repository
	View     View
	Store    SettingsStore
	Login    LoginItems
	Logger   *log.Logger
	Settings model.Settings
	OnQuit   func()
}

// Controller owns the process-lifetime scheduler and the active session.
type Controller struct {
	clock     clock.Clock
	catalog   *catalog.Repository
	view      View
	store     SettingsStore
	login     LoginItems
	logger    *log.Logger
	onQuit    func()
	settings  model.Settings
	scheduler *reminder.Scheduler
	player    *session.Player
	launched  bool
	lastState reminder.State
}

// New wires a controller. Nothing runs until Launch.
func New(options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	controller := &Controller{
		clock:     options.Clock,
		catalog:   options.Catalog,
		view:      options.View,
		store:     options.Store,
		login:     options.Login,
		logger:    logger,
		onQuit:    options.OnQuit,
		settings:  options.Settings,
		lastState: reminder.StateIdle,
	}
	if controller.catalog == nil {
		controller.catalog = catalog.New(nil)
	}

	controller.scheduler = reminder.New(options.Settings.ReminderConfig(), options.Clock)
	controller.scheduler.SetOnReminded(controller.handleReminded)
	controller.scheduler.Subscribe(controller.handleSchedulerEvent)
	return controller
}

// Launch starts the reminder cycle. Calling it again is a no-op.
func (controller *Controller) Launch() {
	if controller.launched {
		return
	}
	controller.launched = true
	controller.logger.Printf("launch: %d stretches available, reminding every %d min",
		controller.catalog.Len(), controller.scheduler.IntervalMinutes())
	controller.scheduler.Start()
}

// StatusClicked shows a stretch suggestion while a reminder is pending.
func (controller *Controller) StatusClicked() {
	if controller.scheduler.State() != reminder.StateReminded {
		return
	}
	controller.logger.Printf("status clicked")
	controller.ShowStretch()
}

// ShowStretch suggests a random stretch from the enabled categories in any
// reminder state.
func (controller *Controller) ShowStretch() {
	stretch, ok := controller.catalog.Random(controller.settings.EnabledCategories...)
	if !ok {
		controller.logger.Printf("show stretch: no stretches for %v", controller.settings.EnabledCategories)
		return
	}
	controller.logger.Printf("show stretch: suggesting %s", stretch.ID)
	controller.view.ShowStretch(stretch)
}

// StretchDone acknowledges the reminder.
func (controller *Controller) StretchDone() {
	controller.logger.Printf("stretch done")
	controller.view.HideStretch()
	controller.scheduler.Dismiss()
}

// StretchSkipped drops the current reminder from the detail view.
func (controller *Controller) StretchSkipped() {
	controller.logger.Printf("stretch skipped")
	controller.view.HideStretch()
	controller.scheduler.Skip()
}

// Snooze delays the current reminder.
func (controller *Controller) Snooze() {
	controller.logger.Printf("snooze for %d min", controller.scheduler.SnoozeMinutes())
	controller.scheduler.Snooze()
}

// Skip drops the current reminder from the menu.
func (controller *Controller) Skip() {
	controller.logger.Printf("skip reminder")
	controller.scheduler.Skip()
}

// StartSession acknowledges the reminder and plays a guided session. Without
// matching stretches nothing is started.
func (controller *Controller) StartSession() {
	config := controller.settings.SessionConfig()
	stretches := controller.catalog.RandomN(config.StretchesPerSession, config.Categories...)
	if len(stretches) == 0 {
		controller.logger.Printf("start session: no stretches for %v", config.Categories)
		return
	}

	controller.view.HideStretch()
	controller.scheduler.Dismiss()
	controller.EndSession()

	player := session.NewPlayer(stretches, config.StretchDurationSeconds, config.RestIntervalSeconds, controller.clock)
	startedAt := controller.clock.Now()
	player.Subscribe(func(event session.Event) {
		if event.Type != session.EventCompleted || controller.player != player {
			return
		}
		record := player.Record(startedAt)
		controller.logger.Printf("session %s completed: %d stretches, %ds planned, ran %s",
			record.ID, len(record.Stretches), record.TotalDurationSeconds(),
			controller.clock.Now().Sub(startedAt).Round(time.Second))
	})

	controller.player = player
	controller.logger.Printf("start session: %d stretches, %ds each, %ds rest",
		len(stretches), player.StretchDurationSeconds(), player.RestIntervalSeconds())
	controller.view.ShowSession(player)
	player.Start()
}

// EndSession stops the active session, if any.
func (controller *Controller) EndSession() {
	if controller.player == nil {
		return
	}
	player := controller.player
	if !player.IsCompleted() {
		player.EndSession()
	}
	controller.player = nil
}

// ApplySettings persists settings and applies them. Interval changes take
// effect the next time the scheduler arms.
func (controller *Controller) ApplySettings(settings model.Settings) error {
	settings.EnabledCategories = model.NormalizeCategories(settings.EnabledCategories)
	if len(settings.EnabledCategories) == 0 {
		settings.EnabledCategories = controller.settings.EnabledCategories
	}

	previous := controller.settings
	controller.settings = settings
	controller.scheduler.UpdateConfig(settings.ReminderConfig())
	controller.logger.Printf("apply settings: interval %d min, snooze %d min, categories %v",
		settings.ReminderIntervalMinutes, settings.SnoozeIntervalMinutes, settings.EnabledCategories)

	var errs []error
	if controller.store != nil {
		if err := controller.store.Save(settings); err != nil {
			errs = append(errs, fmt.Errorf("save settings: %w", err))
		}
	}
	if controller.login != nil && previous.LaunchAtLogin != settings.LaunchAtLogin {
		if err := controller.login.SetLaunchAtLogin(settings.LaunchAtLogin); err != nil {
			errs = append(errs, fmt.Errorf("set launch at login: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		controller.logger.Printf("apply settings: %v", err)
	}
	return err
}

// Quit stops every timer and hands control back to the host.
func (controller *Controller) Quit() {
	controller.logger.Printf("quit")
	controller.EndSession()
	controller.scheduler.Stop()
	if controller.onQuit != nil {
		controller.onQuit()
	}
}

// Settings returns the settings in effect.
func (controller *Controller) Settings() model.Settings {
	return controller.settings
}

// Scheduler exposes the reminder scheduler for observers.
func (controller *Controller) Scheduler() *reminder.Scheduler {
	return controller.scheduler
}

// Player returns the active session player, or nil.
func (controller *Controller) Player() *session.Player {
	return controller.player
}

func (controller *Controller) handleReminded(reminder.Event) {
	controller.logger.Printf("reminder fired")
	controller.view.ShowReminder()
}

func (controller *Controller) handleSchedulerEvent(event reminder.Event) {
	if controller.lastState == reminder.StateReminded && event.State != reminder.StateReminded {
		controller.view.ClearReminder()
	}
	controller.lastState = event.State
	controller.view.SetStatus(StatusLine(event))
}

// StatusLine renders a scheduler event for the tray and terminal.
func StatusLine(event reminder.Event) string {
	switch event.State {
	case reminder.StateScheduled:
		return fmt.Sprintf("Next stretch in %s", formatDelay(event.Delay))
	case reminder.StateSnoozed:
		return fmt.Sprintf("Snoozed for %s", formatDelay(event.Delay))
	case reminder.StateReminded:
		return "Time to stretch!"
	default:
		return "Reminders off"
	}
}

func formatDelay(delay time.Duration) string {
	minutes := int(delay.Round(time.Minute) / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
