package storage

import (
	"os"
	"path/filepath"
	"testing"

	"letsstretch/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFile_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "nope", settingsFileName))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
}

func TestSaveAndLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LetsStretch", settingsFileName)
	want := model.Settings{
		ReminderIntervalMinutes: 90,
		SnoozeIntervalMinutes:   15,
		EnabledCategories:       []model.Category{model.CategoryDeskFriendly, model.CategoryMatRequired},
		StretchDurationSeconds:  45,
		RestIntervalSeconds:     0,
		StretchesPerSession:     7,
		LaunchAtLogin:           true,
	}

	require.NoError(t, SaveSettingsFile(path, want))

	got, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsFile_OutOfRangeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := `reminder_interval_minutes: 0
snooze_interval_minutes: 9000
enabled_categories: [outdoor]
stretch_duration_seconds: -5
rest_interval_seconds: 500
stretches_per_session: 0
launch_at_login: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadSettingsFile(path)
	require.NoError(t, err)

	want := model.DefaultSettings()
	want.LaunchAtLogin = true
	assert.Equal(t, want, got)
}

func TestLoadSettingsFile_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("enabled_categories: [mat_required, mat_required]\n"), 0o644))

	got, err := LoadSettingsFile(path)
	require.NoError(t, err)

	want := model.DefaultSettings()
	want.EnabledCategories = []model.Category{model.CategoryMatRequired}
	assert.Equal(t, want, got)
}

func TestLoadSettingsFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("reminder_interval_minutes: [unclosed\n"), 0o644))

	got, err := LoadSettingsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestSettingsPath(t *testing.T) {
	path, err := SettingsPath("LetsStretch")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, settingsFileName, filepath.Base(path))
	assert.Equal(t, "LetsStretch", filepath.Base(filepath.Dir(path)))
}

func TestFileStore(t *testing.T) {
	store := &FileStore{Path: filepath.Join(t.TempDir(), settingsFileName)}

	settings, err := store.Load()
	require.NoError(t, err)
	settings.SnoozeIntervalMinutes = 5
	require.NoError(t, store.Save(settings))

	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.SnoozeIntervalMinutes)
}
