//go:build !windows

package overlay

// applyNativeOpacity is a no-op where the background alpha is all fyne offers.
func (overlay *Window) applyNativeOpacity(alpha uint8) {}
