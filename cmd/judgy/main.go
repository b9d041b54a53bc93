package main

import (
	"errors"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"judgy/internal/content"
	"judgy/internal/core/attitude"
	"judgy/internal/core/clock"
	"judgy/internal/core/eggs"
	"judgy/internal/core/env"
	"judgy/internal/core/session"
	"judgy/internal/platform"
	"judgy/internal/storage"
	"judgy/internal/ui/judgment"
	"judgy/internal/ui/overlay"
	"judgy/internal/ui/preferences"
	"judgy/internal/ui/presenter"
	"judgy/internal/ui/stage"
	"judgy/internal/ui/tray"
	"judgy/resources"
)

const appName = "judgy"

// judge owns the running session and everything that follows it. Saving
// new tuning replaces the session and carries the score over.
type judge struct {
	bus     *env.Bus
	stage   *stage.Stage
	overlay *overlay.Window
	tray    *tray.Manager
	picker  *judgment.Picker
	login   platform.LoginItem
	path    string

	mu        sync.Mutex
	settings  preferences.Settings
	session   *session.Session
	presenter *presenter.Presenter
	paused    bool
}

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: woke the running judge")
			return
		}
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	launch, err := platform.ParseLaunchOptions()
	if err != nil {
		log.Printf("launch options: %v", err)
	}
	configPath := launch.ConfigPath
	if configPath == "" {
		if configPath, err = storage.ResolveConfigPath(appName); err != nil {
			log.Printf("settings: %v", err)
		}
	}
	settings, err := storage.LoadSettingsFile(configPath)
	if err != nil {
		log.Printf("settings: %v", err)
	}
	if err := platform.ApplyEnv(&settings.Tuning); err != nil {
		log.Printf("settings: %v", err)
	}
	settings.ReduceMotion = settings.ReduceMotion || launch.ReduceMotion
	settings.StartPaused = settings.StartPaused || launch.StartPaused
	log.Printf("settings: %s", settings.Summary())

	fyneApp := app.NewWithID("io.judgy.app")
	activeIcon := resources.MustLogo(resources.LogoActive)
	pausedIcon := resources.MustLogo(resources.LogoPaused)
	fyneApp.SetIcon(activeIcon)

	bus := env.NewBus(nil)
	mainStage := stage.New(bus, content.Sample())
	mainWindow := fyneApp.NewWindow("judgy")
	mainWindow.SetContent(mainStage.Content())
	mainWindow.Resize(fyne.NewSize(720, 640))
	mainStage.Bind(fyneApp, mainWindow)

	judged := &judge{
		bus:   bus,
		stage: mainStage,
		overlay: overlay.New(fyneApp, overlay.Config{
			Opacity:   settings.OverlayOpacity,
			Animation: settings.AnimationConfig(),
		}),
		picker:   judgment.NewPicker(0),
		path:     configPath,
		settings: settings,
		paused:   settings.StartPaused,
	}

	if judged.login, err = platform.NewLoginItem(appName); err != nil {
		log.Printf("login item: %v", err)
	}
	judged.settings.LaunchAtLogin = settings.LaunchAtLogin && judged.login.Enabled()

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		judged.apply(updated)
		judged.save()
	})

	guard.OnWake(func() {
		fyne.Do(func() {
			mainWindow.Show()
			mainWindow.RequestFocus()
		})
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		judged.tray = tray.New(desktopApp, tray.Callbacks{
			OnPreferences: prefsWindow.Show,
			OnTogglePause: func() {
				paused := judged.togglePause()
				if paused {
					desktopApp.SetSystemTrayIcon(pausedIcon)
				} else {
					desktopApp.SetSystemTrayIcon(activeIcon)
				}
			},
			OnResetScore:  judged.resetScore,
			OnResetEggs:   judged.rearm,
			OnToggleLogin: judged.toggleLogin,
			OnQuit:        fyneApp.Quit,
		})
		if settings.StartPaused {
			desktopApp.SetSystemTrayIcon(pausedIcon)
		} else {
			desktopApp.SetSystemTrayIcon(activeIcon)
		}
		judged.tray.SetPaused(settings.StartPaused)
		judged.tray.SetLaunchAtLogin(judged.settings.LaunchAtLogin)
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		log.Printf("tray: system tray unsupported on this platform")
	}

	judged.startSession(0)
	mainWindow.ShowAndRun()
	judged.stopSession()
}

func (judged *judge) startSession(score int) {
	judged.mu.Lock()
	defer judged.mu.Unlock()

	current := session.New(clock.NewReal(), judged.bus, judged.settings.SessionConfig())
	if score != 0 {
		current.Engine.ResetScore(score, "Settings changed")
	}
	judged.session = current
	judged.presenter = presenter.New(judged.stage, current.Engine, judged.settings.AnimationConfig(), judged.picker)
	go judged.presenter.Follow(current.Eggs.Subscribe(8))
	go judged.followEggs(current.Eggs.Subscribe(8))

	if judged.tray != nil {
		manager := judged.tray
		manager.SetStatus(current.Snapshot())
		current.Engine.OnScoreChange(func(event attitude.ScoreChangeEvent) {
			snapshot := attitude.Snapshot{Score: event.Score, Level: event.Level}
			fyne.Do(func() {
				manager.SetStatus(snapshot)
			})
		})
	}
	if !judged.paused {
		current.Start()
	}
}

func (judged *judge) stopSession() int {
	judged.mu.Lock()
	defer judged.mu.Unlock()
	if judged.session == nil {
		return 0
	}
	score := judged.session.Engine.Score()
	judged.presenter.Close()
	judged.session.Close()
	judged.session = nil
	judged.presenter = nil
	return score
}

// followEggs drives the overlay until the session's channel closes.
func (judged *judge) followEggs(events <-chan eggs.Event) {
	for event := range events {
		fyne.Do(func() {
			switch event.Kind {
			case eggs.EventTriggered:
				judged.overlay.Show(event)
			case eggs.EventCleared:
				judged.overlay.Hide()
			}
		})
	}
	fyne.Do(judged.overlay.Hide)
}

func (judged *judge) apply(updated preferences.Settings) {
	judged.mu.Lock()
	updated.LaunchAtLogin = judged.settings.LaunchAtLogin
	tuningChanged := !sameTuning(judged.settings, updated)
	judged.settings = updated
	current := judged.presenter
	judged.mu.Unlock()

	judged.overlay.UpdateConfig(overlay.Config{
		Opacity:   updated.OverlayOpacity,
		Animation: updated.AnimationConfig(),
	})
	if !tuningChanged {
		if current != nil {
			current.UpdateConfig(updated.AnimationConfig())
		}
		return
	}
	log.Printf("settings: %s", updated.Summary())
	judged.startSession(judged.stopSession())
}

func (judged *judge) save() {
	judged.mu.Lock()
	settings := judged.settings
	judged.mu.Unlock()
	if err := storage.SaveSettingsFile(judged.path, settings); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (judged *judge) toggleLogin() {
	judged.mu.Lock()
	enabled := !judged.settings.LaunchAtLogin
	if err := judged.login.Set(enabled); err != nil {
		judged.mu.Unlock()
		log.Printf("login item: %v", err)
		return
	}
	judged.settings.LaunchAtLogin = enabled
	judged.mu.Unlock()

	if judged.tray != nil {
		judged.tray.SetLaunchAtLogin(enabled)
	}
	judged.save()
}

func (judged *judge) togglePause() bool {
	judged.mu.Lock()
	defer judged.mu.Unlock()
	judged.paused = !judged.paused
	if judged.session != nil {
		if judged.paused {
			judged.session.Pause()
		} else {
			judged.session.Resume()
		}
	}
	if judged.tray != nil {
		judged.tray.SetPaused(judged.paused)
	}
	return judged.paused
}

func (judged *judge) resetScore() {
	judged.mu.Lock()
	current := judged.session
	judged.mu.Unlock()
	if current != nil {
		current.Engine.ResetScore(0, "Fresh start")
	}
}

func (judged *judge) rearm() {
	judged.mu.Lock()
	current := judged.session
	judged.mu.Unlock()
	if current != nil {
		current.Eggs.Rearm()
	}
}

func sameTuning(left, right preferences.Settings) bool {
	return left.Tuning.Scroll == right.Tuning.Scroll &&
		left.Tuning.Idle == right.Tuning.Idle &&
		left.Tuning.Eggs == right.Tuning.Eggs &&
		sameClick(left, right)
}

func sameClick(left, right preferences.Settings) bool {
	a, b := left.Tuning.Click, right.Tuning.Click
	if len(a.NonInteractiveTags) != len(b.NonInteractiveTags) {
		return false
	}
	for i := range a.NonInteractiveTags {
		if a.NonInteractiveTags[i] != b.NonInteractiveTags[i] {
			return false
		}
	}
	a.NonInteractiveTags, b.NonInteractiveTags = nil, nil
	return a == b
}
