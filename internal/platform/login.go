package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrLoginUnsupported is returned where judging at login is not implemented.
var ErrLoginUnsupported = errors.New("launch at login unsupported on this platform")

// LoginItem starts a program when the user logs in.
type LoginItem struct {
	Name string
	Exec string
}

// NewLoginItem describes the running executable under name.
func NewLoginItem(name string) (LoginItem, error) {
	execPath, err := os.Executable()
	if err != nil {
		return LoginItem{}, fmt.Errorf("login item: %w", err)
	}
	return LoginItem{Name: name, Exec: execPath}, nil
}

// Set enables or disables the item.
func (item LoginItem) Set(enabled bool) error {
	if enabled {
		return item.Enable()
	}
	return item.Disable()
}

func (item LoginItem) validate(needExec bool) error {
	if strings.TrimSpace(item.Name) == "" {
		return errors.New("name is empty")
	}
	if needExec && item.Exec == "" {
		return errors.New("exec path is empty")
	}
	return nil
}

// slug turns the item name into a file-system friendly identifier.
func (item LoginItem) slug() string {
	name := strings.ToLower(strings.TrimSpace(item.Name))
	return strings.ReplaceAll(name, " ", "-")
}

// ConfigDir returns the OS configuration directory, falling back to a
// home-relative default when the environment does not name one.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("config dir: %w", err)
		}
		return "", fmt.Errorf("config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}
