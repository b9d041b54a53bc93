//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Enable writes an XDG autostart entry.
func (item LoginItem) Enable() error {
	if err := item.validate(true); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	path, err := item.entryPath()
	if err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	if err := os.WriteFile(path, []byte(item.desktopEntry()), 0o644); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	return nil
}

// Disable removes the autostart entry. A missing entry is not an error.
func (item LoginItem) Disable() error {
	if err := item.validate(false); err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	path, err := item.entryPath()
	if err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable login item: %w", err)
	}
	return nil
}

// Enabled reports whether the autostart entry exists.
func (item LoginItem) Enabled() bool {
	path, err := item.entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (item LoginItem) entryPath() (string, error) {
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", item.slug()+".desktop"), nil
}

func (item LoginItem) desktopEntry() string {
	execLine := item.Exec
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Comment=Judges how you read
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`, item.Name, execLine)
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
