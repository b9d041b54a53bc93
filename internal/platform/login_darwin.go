//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Enable writes a LaunchAgent that runs at load.
func (item LoginItem) Enable() error {
	if err := item.validate(true); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	path, err := item.plistPath()
	if err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	if err := os.WriteFile(path, []byte(item.plist()), 0o644); err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	return nil
}

// Disable removes the LaunchAgent. A missing agent is not an error.
func (item LoginItem) Disable() error {
	if err := item.validate(false); err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	path, err := item.plistPath()
	if err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable login item: %w", err)
	}
	return nil
}

// Enabled reports whether the LaunchAgent exists.
func (item LoginItem) Enabled() bool {
	path, err := item.plistPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (item LoginItem) label() string {
	return "io.judgy." + item.slug()
}

func (item LoginItem) plistPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", item.label()+".plist"), nil
}

func (item LoginItem) plist() string {
	escape := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, escape.Replace(item.label()), escape.Replace(item.Exec))
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}
