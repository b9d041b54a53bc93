//go:build !linux && !darwin && !windows

package platform

import "path/filepath"

// Enable is unsupported here.
func (item LoginItem) Enable() error { return ErrLoginUnsupported }

// Disable is unsupported here.
func (item LoginItem) Disable() error { return ErrLoginUnsupported }

// Enabled always reports false.
func (item LoginItem) Enabled() bool { return false }

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
