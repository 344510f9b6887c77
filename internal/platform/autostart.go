package platform

import (
	"fmt"
	"os"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct {
	homeDir   string
	configDir string
}

// NewService returns a platform-specific implementation rooted at the
// current user's directories.
func NewService() Service {
	return &platformService{}
}

// NewServiceAt returns an implementation that treats homeDir as the user's
// home and derives the config directory from it.
func NewServiceAt(homeDir string) Service {
	return &platformService{homeDir: homeDir, configDir: fallbackConfigDir(homeDir)}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	if service.configDir != "" {
		return service.configDir, nil
	}

	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := service.home()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

func (service *platformService) home() (string, error) {
	if service.homeDir != "" {
		return service.homeDir, nil
	}
	return os.UserHomeDir()
}

// SetLaunchAtLogin registers or removes the running executable as a login item.
func SetLaunchAtLogin(service Service, appName string, enabled bool) error {
	if !enabled {
		return service.DisableAutostart(appName)
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return service.EnableAutostart(appName, execPath)
}

func slugName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "letsstretch"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// LoginItems binds a Service to one application name.
type LoginItems struct {
	Service Service
	AppName string
}

// SetLaunchAtLogin registers or removes the application as a login item.
func (items LoginItems) SetLaunchAtLogin(enabled bool) error {
	return SetLaunchAtLogin(items.Service, items.AppName, enabled)
}
