//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutostart_LinuxDesktopEntry(t *testing.T) {
	home := t.TempDir()
	service := NewServiceAt(home)

	enabled, err := service.AutostartEnabled("LetsStretch")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.EnableAutostart("LetsStretch", "/opt/lets stretch/letsstretch"))

	entryPath := filepath.Join(home, ".config", "autostart", "letsstretch.desktop")
	content, err := os.ReadFile(entryPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name=LetsStretch")
	assert.Contains(t, string(content), `Exec="/opt/lets stretch/letsstretch"`)

	enabled, err = service.AutostartEnabled("LetsStretch")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, service.DisableAutostart("LetsStretch"))
	require.NoError(t, service.DisableAutostart("LetsStretch"), "disabling twice is fine")

	enabled, err = service.AutostartEnabled("LetsStretch")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestAutostart_RejectsEmptyArguments(t *testing.T) {
	service := NewServiceAt(t.TempDir())
	assert.Error(t, service.EnableAutostart("", "/bin/true"))
	assert.Error(t, service.EnableAutostart("LetsStretch", ""))
	assert.Error(t, service.DisableAutostart(""))
}

func TestDesktopFileName(t *testing.T) {
	assert.Equal(t, "lets-stretch.desktop", desktopFileName(" Lets Stretch "))
	assert.Equal(t, "letsstretch.desktop", desktopFileName(""))
}
