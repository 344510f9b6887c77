package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/systray"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowStretch  func()
	OnStartSession func()
	OnSnooze       func()
	OnSkip         func()
	OnSettings     func()
	OnQuit         func()
}

// Manager handles system tray state.
type Manager struct {
	app          desktop.App
	title        string
	callbacks    Callbacks
	statusItem   *fyne.MenuItem
	stretchItem  *fyne.MenuItem
	sessionItem  *fyne.MenuItem
	snoozeItem   *fyne.MenuItem
	skipItem     *fyne.MenuItem
	settingsItem *fyne.MenuItem
	quitItem     *fyne.MenuItem
	reminded     bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Starting...", nil)
	manager.statusItem.Disabled = true

	manager.stretchItem = fyne.NewMenuItem("Show Stretch", invoke(&manager.callbacks.OnShowStretch))
	manager.sessionItem = fyne.NewMenuItem("Start Session", invoke(&manager.callbacks.OnStartSession))
	manager.snoozeItem = fyne.NewMenuItem(snoozeLabel(0), invoke(&manager.callbacks.OnSnooze))
	manager.skipItem = fyne.NewMenuItem("Skip", invoke(&manager.callbacks.OnSkip))
	manager.settingsItem = fyne.NewMenuItem("Settings...", invoke(&manager.callbacks.OnSettings))
	manager.quitItem = fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	manager.quitItem.IsQuit = true

	manager.applyReminded()
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line and the tray tooltip.
func (manager *Manager) SetStatus(status string) {
	manager.statusItem.Label = status
	systray.SetTooltip(manager.title + ": " + status)
	manager.refreshMenu()
}

// SetReminded toggles the reminder actions.
func (manager *Manager) SetReminded(reminded bool) {
	manager.reminded = reminded
	manager.applyReminded()
	manager.refreshMenu()
}

// SetSnoozeMinutes shows the snooze length on the snooze item.
func (manager *Manager) SetSnoozeMinutes(minutes int) {
	manager.snoozeItem.Label = snoozeLabel(minutes)
	manager.refreshMenu()
}

// SetIcon replaces the tray icon.
func (manager *Manager) SetIcon(icon fyne.Resource) {
	if manager.app != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) applyReminded() {
	manager.snoozeItem.Disabled = !manager.reminded
	manager.skipItem.Disabled = !manager.reminded
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.stretchItem,
		manager.sessionItem,
		manager.snoozeItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		manager.settingsItem,
		manager.quitItem,
	))
}

func snoozeLabel(minutes int) string {
	if minutes <= 0 {
		return "Snooze"
	}
	return fmt.Sprintf("Snooze (%d min)", minutes)
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
