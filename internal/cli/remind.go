package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"letsstretch/internal/app"
	"letsstretch/internal/catalog"
	"letsstretch/internal/core/clock"
	"letsstretch/internal/core/model"
	"letsstretch/internal/core/session"

	"github.com/spf13/cobra"
)

var remindFlags struct {
	interval   int
	snooze     int
	times      int
	session    bool
	categories []string
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the reminder cycle in the terminal",
	Long: `Runs the reminder scheduler without a tray. Each reminder prints a
suggested stretch and counts as done, or plays a guided session with --session.`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	flags := remindCmd.Flags()
	flags.IntVarP(&remindFlags.interval, "interval", "i", 0, "minutes between reminders")
	flags.IntVar(&remindFlags.snooze, "snooze", 0, "snooze minutes")
	flags.IntVarP(&remindFlags.times, "times", "t", 0, "stop after this many reminders (0 runs until interrupted)")
	flags.BoolVarP(&remindFlags.session, "session", "s", false, "play a guided session on each reminder")
	flags.StringSliceVarP(&remindFlags.categories, "category", "c", nil, "categories to draw from")
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment(false, true)
	if err != nil {
		return err
	}
	defer env.close()

	settings, err := remindSettings(env.settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := clock.NewLoop(0)
	controller := newTerminalController(terminalOptions{
		out:      cmd.OutOrStdout(),
		clock:    clock.NewSystem(loop.Dispatch),
		dispatch: loop.Dispatch,
		catalog:  env.catalog,
		settings: settings,
		logger:   env.logger.Logger,
		times:    remindFlags.times,
		session:  remindFlags.session,
		done:     cancel,
	})

	loop.Dispatch(controller.Launch)
	err = loop.Run(runCtx)
	controller.Quit()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func remindSettings(settings model.Settings) (model.Settings, error) {
	if remindFlags.interval > 0 {
		settings.ReminderIntervalMinutes = remindFlags.interval
	}
	if remindFlags.snooze > 0 {
		settings.SnoozeIntervalMinutes = remindFlags.snooze
	}
	if len(remindFlags.categories) > 0 {
		categories, err := parseCategories(remindFlags.categories)
		if err != nil {
			return settings, fmt.Errorf("parse categories: %w", err)
		}
		settings.EnabledCategories = categories
	}
	return settings, nil
}

type terminalOptions struct {
	out      io.Writer
	clock    clock.Clock
	dispatch clock.Dispatcher
	catalog  *catalog.Repository
	settings model.Settings
	logger   *log.Logger
	times    int
	session  bool
	done     func()
}

// newTerminalController answers every reminder on its own: it shows a
// stretch and marks it done, or plays a session. done runs once the
// requested number of reminders has been handled.
func newTerminalController(options terminalOptions) *app.Controller {
	var controller *app.Controller
	handled := 0

	finishOne := func() {
		handled++
		if options.times > 0 && handled >= options.times && options.done != nil {
			options.done()
		}
	}

	view := &terminalView{out: options.out}
	view.onReminder = func() {
		options.dispatch(func() {
			if options.session {
				controller.StartSession()
				if controller.Player() == nil {
					controller.StretchSkipped()
					finishOne()
				}
				return
			}
			controller.StatusClicked()
			controller.StretchDone()
			finishOne()
		})
	}
	view.onSession = func(player *session.Player) {
		printSession(options.out, player, finishOne)
	}

	controller = app.New(app.Options{
		Clock:    options.clock,
		Catalog:  options.catalog,
		View:     view,
		Logger:   options.logger,
		Settings: options.settings,
	})
	return controller
}
