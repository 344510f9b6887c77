package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"letsstretch/internal/app"
	"letsstretch/internal/catalog"
	"letsstretch/internal/core/model"
	"letsstretch/internal/logging"
	"letsstretch/internal/platform"
	"letsstretch/internal/storage"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// TrayRunner hosts the desktop front end until the user quits.
type TrayRunner func(runtime app.Runtime) error

var trayRunner TrayRunner

var rootFlags struct {
	catalogPath  string
	settingsPath string
	logFile      bool
	verbose      bool
}

var rootCmd = &cobra.Command{
	Use:   "letsstretch",
	Short: "Stretch reminders from the system tray",
	Long: `LetsStretch reminds you to stretch at a fixed interval and walks you
through short guided sessions. Without a subcommand it runs in the system tray.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTray,
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("letsstretch version {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootFlags.catalogPath, "catalog", "", "load stretches from this YAML or JSON file instead of the built-in catalog")
	flags.StringVar(&rootFlags.settingsPath, "settings", "", "settings file (default: user config dir)")
	flags.BoolVar(&rootFlags.logFile, "log-file", true, "write a rotating log file next to the settings")
	flags.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "log to stderr")
}

// Execute runs the root command. runner hosts the tray front end.
func Execute(runner TrayRunner) error {
	trayRunner = runner
	return rootCmd.Execute()
}

func runTray(cmd *cobra.Command, args []string) error {
	if trayRunner == nil {
		return errors.New("tray front end not available in this build")
	}
	env, err := loadEnvironment(true, false)
	if err != nil {
		return err
	}
	defer env.close()

	return trayRunner(app.Runtime{
		AppName:  app.AppName,
		Settings: env.settings,
		Catalog:  env.catalog,
		Store:    env.store,
		Login:    platform.LoginItems{Service: platform.NewService(), AppName: app.AppName},
		Logger:   env.logger.Logger,
	})
}

type environment struct {
	settings model.Settings
	catalog  *catalog.Repository
	store    *storage.FileStore
	logger   *logging.Logger
}

func (env *environment) close() {
	if env.logger != nil {
		_ = env.logger.Close()
	}
}

// loadEnvironment opens the log, then reads settings and the catalog. Unless
// requireCatalog is set, a catalog failure is logged and an empty catalog is
// used so reminders still run.
func loadEnvironment(stderr, requireCatalog bool) (*environment, error) {
	store, err := settingsStore()
	if err != nil {
		return nil, err
	}

	logConfig := logging.DefaultConfig("")
	if rootFlags.logFile {
		logConfig.Dir = filepath.Join(filepath.Dir(store.Path), "logs")
	}
	logConfig.Stderr = stderr || rootFlags.verbose
	logger, err := logging.New(logConfig)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	settings, err := store.Load()
	if err != nil {
		logger.Printf("settings: %v, using defaults", err)
	}

	repository, err := loadCatalog()
	if err != nil {
		if requireCatalog {
			_ = logger.Close()
			return nil, err
		}
		logger.Printf("%v, continuing without stretches", err)
		repository = catalog.New(nil)
	}

	return &environment{settings: settings, catalog: repository, store: store, logger: logger}, nil
}

func settingsStore() (*storage.FileStore, error) {
	if rootFlags.settingsPath != "" {
		return &storage.FileStore{Path: rootFlags.settingsPath}, nil
	}
	store, err := storage.NewFileStore(app.AppName)
	if err != nil {
		return nil, fmt.Errorf("locate settings: %w", err)
	}
	return store, nil
}

func loadCatalog() (*catalog.Repository, error) {
	if rootFlags.catalogPath != "" {
		repository, err := catalog.LoadFile(rootFlags.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		return repository, nil
	}
	repository, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load built-in catalog: %w", err)
	}
	return repository, nil
}

func parseCategories(values []string) ([]model.Category, error) {
	categories := make([]model.Category, 0, len(values))
	for _, value := range values {
		category, err := model.ParseCategory(value)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return model.NormalizeCategories(categories), nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, platform.ErrAlreadyRunning) {
		return 0
	}
	return 1
}

// Main runs the CLI and exits the process.
func Main(runner TrayRunner) {
	err := Execute(runner)
	if err != nil && !errors.Is(err, platform.ErrAlreadyRunning) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}
