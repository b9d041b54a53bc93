//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const runKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

// Enable adds a value under the user's Run key.
func (item LoginItem) Enable() error {
	if err := item.validate(true); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	quoted := `"` + strings.Trim(item.Exec, `"`) + `"`
	if err := reg("add", runKey, "/v", item.Name, "/t", "REG_SZ", "/d", quoted, "/f"); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	return nil
}

// Disable deletes the Run value.
func (item LoginItem) Disable() error {
	if err := item.validate(false); err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	if !item.Enabled() {
		return nil
	}
	if err := reg("delete", runKey, "/v", item.Name, "/f"); err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	return nil
}

// Enabled reports whether the Run value exists.
func (item LoginItem) Enabled() bool {
	return reg("query", runKey, "/v", item.Name) == nil
}

func reg(args ...string) error {
	output, err := exec.Command("reg", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("reg %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}
