package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"letsstretch/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

const (
	maxIntervalMinutes     = 480
	maxSnoozeMinutes       = 120
	maxStretchSeconds      = 600
	maxRestSeconds         = 120
	maxStretchesPerSession = 50
)

type yamlSettings struct {
	ReminderIntervalMinutes int      `yaml:"reminder_interval_minutes"`
	SnoozeIntervalMinutes   int      `yaml:"snooze_interval_minutes"`
	EnabledCategories       []string `yaml:"enabled_categories"`
	StretchDurationSeconds  int      `yaml:"stretch_duration_seconds"`
	RestIntervalSeconds     *int     `yaml:"rest_interval_seconds"`
	StretchesPerSession     int      `yaml:"stretches_per_session"`
	LaunchAtLogin           bool     `yaml:"launch_at_login"`
}

// LoadSettingsFile reads user preferences from configPath.
func LoadSettingsFile(configPath string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes user preferences to configPath.
func SaveSettingsFile(configPath string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	categories := make([]string, 0, len(settings.EnabledCategories))
	for _, category := range model.NormalizeCategories(settings.EnabledCategories) {
		categories = append(categories, string(category))
	}
	rest := settings.RestIntervalSeconds

	fileData := yamlSettings{
		ReminderIntervalMinutes: settings.ReminderIntervalMinutes,
		SnoozeIntervalMinutes:   settings.SnoozeIntervalMinutes,
		EnabledCategories:       categories,
		StretchDurationSeconds:  settings.StretchDurationSeconds,
		RestIntervalSeconds:     &rest,
		StretchesPerSession:     settings.StretchesPerSession,
		LaunchAtLogin:           settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if inRange(fileData.ReminderIntervalMinutes, 1, maxIntervalMinutes) {
		settings.ReminderIntervalMinutes = fileData.ReminderIntervalMinutes
	}
	if inRange(fileData.SnoozeIntervalMinutes, 1, maxSnoozeMinutes) {
		settings.SnoozeIntervalMinutes = fileData.SnoozeIntervalMinutes
	}
	if inRange(fileData.StretchDurationSeconds, 1, maxStretchSeconds) {
		settings.StretchDurationSeconds = fileData.StretchDurationSeconds
	}
	if fileData.RestIntervalSeconds != nil && inRange(*fileData.RestIntervalSeconds, 0, maxRestSeconds) {
		settings.RestIntervalSeconds = *fileData.RestIntervalSeconds
	}
	if inRange(fileData.StretchesPerSession, 1, maxStretchesPerSession) {
		settings.StretchesPerSession = fileData.StretchesPerSession
	}

	var categories []model.Category
	for _, raw := range fileData.EnabledCategories {
		if category, err := model.ParseCategory(raw); err == nil {
			categories = append(categories, category)
		}
	}
	if normalized := model.NormalizeCategories(categories); len(normalized) > 0 {
		settings.EnabledCategories = normalized
	}

	settings.LaunchAtLogin = fileData.LaunchAtLogin
}

func inRange(value, low, high int) bool {
	return value >= low && value <= high
}

// FileStore persists settings to a fixed file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store for appName's settings file.
func NewFileStore(appName string) (*FileStore, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return nil, err
	}
	return &FileStore{Path: configPath}, nil
}

// Load reads the settings file.
func (store *FileStore) Load() (model.Settings, error) {
	return LoadSettingsFile(store.Path)
}

// Save writes the settings file.
func (store *FileStore) Save(settings model.Settings) error {
	return SaveSettingsFile(store.Path, settings)
}
