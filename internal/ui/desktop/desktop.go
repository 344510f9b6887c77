package desktop

import (
	"context"
	"errors"
	"fmt"

	"letsstretch/internal/app"
	"letsstretch/internal/core/clock"
	"letsstretch/internal/core/model"
	"letsstretch/internal/core/session"
	"letsstretch/internal/platform"
	"letsstretch/internal/ui/animation"
	"letsstretch/internal/ui/popover"
	"letsstretch/internal/ui/preferences"
	"letsstretch/internal/ui/tray"
	"letsstretch/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// ErrTrayUnsupported is returned when the driver has no system tray.
var ErrTrayUnsupported = errors.New("system tray unsupported on this platform")

// view adapts the tray, icon pulser and popovers to app.View.
type view struct {
	ctx     context.Context
	tray    *tray.Manager
	pulser  *animation.Pulser
	stretch *popover.StretchWindow
	session *popover.SessionWindow
}

func (view *view) SetStatus(status string) { view.tray.SetStatus(status) }

func (view *view) ShowReminder() {
	view.tray.SetReminded(true)
	view.pulser.Start(view.ctx)
}

func (view *view) ClearReminder() {
	view.tray.SetReminded(false)
	view.pulser.Stop()
}

func (view *view) ShowStretch(stretch model.Stretch) { view.stretch.Show(stretch) }

func (view *view) HideStretch() { view.stretch.Hide() }

func (view *view) ShowSession(player *session.Player) { view.session.Show(player) }

// Run hosts the controller in a fyne tray application until Quit.
func Run(runtime app.Runtime) error {
	guard, err := platform.AcquireSingleInstance(runtime.AppName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if activateErr := platform.ActivateRunning(runtime.AppName); activateErr != nil {
				runtime.Logger.Printf("single instance: %v", activateErr)
			}
		}
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID("app.letsstretch")
	activeIcon := resources.MustLogo(resources.IconActive)
	dimIcon := resources.MustLogo(resources.IconDim)
	fyneApp.SetIcon(activeIcon)

	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return ErrTrayUnsupported
	}

	trayWindow := fyneApp.NewWindow(runtime.AppName)
	trayWindow.SetContent(widget.NewLabel(runtime.AppName + " is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var controller *app.Controller
	var prefsWindow *preferences.Window
	trayManager := tray.New(desktopApp, runtime.AppName, tray.Callbacks{
		OnShowStretch:  func() { controller.ShowStretch() },
		OnStartSession: func() { controller.StartSession() },
		OnSnooze:       func() { controller.Snooze() },
		OnSkip:         func() { controller.Skip() },
		OnSettings:     func() { prefsWindow.Show() },
		OnQuit:         func() { controller.Quit() },
	})
	trayManager.SetIcon(activeIcon)
	trayManager.SetSnoozeMinutes(runtime.Settings.SnoozeIntervalMinutes)

	pulser := animation.NewPulser(animation.PulseSpec{Active: activeIcon, Dim: dimIcon}, func(icon fyne.Resource) {
		fyne.Do(func() {
			trayManager.SetIcon(icon)
		})
	})

	stretchWindow := popover.NewStretchWindow(fyneApp, runtime.AppName, popover.StretchCallbacks{
		OnDone:         func() { controller.StretchDone() },
		OnSkip:         func() { controller.StretchSkipped() },
		OnStartSession: func() { controller.StartSession() },
	})
	sessionWindow := popover.NewSessionWindow(fyneApp, runtime.AppName, func() { controller.EndSession() })

	controller = app.New(app.Options{
		Clock:    clock.NewSystem(fyne.Do),
		Catalog:  runtime.Catalog,
		View:     &view{ctx: ctx, tray: trayManager, pulser: pulser, stretch: stretchWindow, session: sessionWindow},
		Store:    runtime.Store,
		Login:    runtime.Login,
		Logger:   runtime.Logger,
		Settings: runtime.Settings,
		OnQuit: func() {
			pulser.Stop()
			fyneApp.Quit()
		},
	})

	prefsWindow = preferences.New(fyneApp, runtime.AppName, runtime.Settings, func(updated model.Settings) {
		_ = controller.ApplySettings(updated)
		trayManager.SetSnoozeMinutes(controller.Scheduler().SnoozeMinutes())
	})

	go guard.Serve(func() {
		fyne.Do(func() { prefsWindow.Show() })
	})

	fyneApp.Lifecycle().SetOnStarted(controller.Launch)
	fyneApp.Run()
	return nil
}
