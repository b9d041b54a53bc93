package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"judgy/internal/core/attitude"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences func()
	OnTogglePause func()
	OnResetScore  func()
	OnResetEggs   func()
	OnToggleLogin func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	loginItem  *fyne.MenuItem
	callbacks  Callbacks
	paused     bool
	snapshot   attitude.Snapshot
}

// New creates a tray manager with the provided callbacks. A nil app keeps
// the menu in memory only.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		snapshot:  attitude.Snapshot{Level: attitude.LevelForScore(0)},
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem(pauseLabel(false), func() {
		call(manager.callbacks.OnTogglePause)
	})

	manager.loginItem = fyne.NewMenuItem("Judge at login", func() {
		call(manager.callbacks.OnToggleLogin)
	})

	manager.refreshStatus()
	return manager
}

// SetStatus shows the current score and level.
func (manager *Manager) SetStatus(snapshot attitude.Snapshot) {
	manager.snapshot = snapshot
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	manager.pauseItem.Label = pauseLabel(paused)
	manager.refreshStatus()
}

// SetLaunchAtLogin ticks the login item.
func (manager *Manager) SetLaunchAtLogin(enabled bool) {
	manager.loginItem.Checked = enabled
	manager.refreshMenu()
}

// Status returns the status line as shown in the menu.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// Menu builds the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("judgy",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			call(manager.callbacks.OnPreferences)
		}),
		manager.pauseItem,
		fyne.NewMenuItem("Reset score", func() {
			call(manager.callbacks.OnResetScore)
		}),
		fyne.NewMenuItem("Reset easter eggs", func() {
			call(manager.callbacks.OnResetEggs)
		}),
		manager.loginItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	)
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = statusLabel(manager.snapshot, manager.paused)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func statusLabel(snapshot attitude.Snapshot, paused bool) string {
	status := fmt.Sprintf("%s (%d)", snapshot.Level, snapshot.Score)
	if paused {
		status += ", not judging"
	}
	return "Mood: " + status
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume judging"
	}
	return "Pause judging"
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
