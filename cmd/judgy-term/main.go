package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"judgy/internal/content"
	"judgy/internal/core/clock"
	"judgy/internal/core/env"
	"judgy/internal/core/session"
	"judgy/internal/platform"
	"judgy/internal/storage"
	"judgy/internal/terminal"
	"judgy/internal/ui/presenter"
)

const appName = "judgy-term"

func main() {
	if err := run(); err != nil {
		log.Printf("judgy-term: %v", err)
		os.Exit(1)
	}
}

func run() error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: already judging in another terminal")
			return nil
		}
		return err
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
		// Both front ends read the same settings file.
		if configPath, err = storage.ResolveConfigPath("judgy"); err != nil {
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

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()

	bus := env.NewBus(nil)
	judged := session.New(clock.NewReal(), bus, settings.SessionConfig())
	defer judged.Close()

	chime := terminal.NewChime()
	if !launch.Mute {
		if err := chime.Init(); err != nil {
			log.Printf("chime: %v", err)
		}
	}
	defer chime.Close()

	app := terminal.New(screen, bus, judged, content.Sample(), chime)
	shown := presenter.New(app, judged.Engine, settings.AnimationConfig(), nil)
	defer shown.Close()
	go shown.Follow(judged.Eggs.Subscribe(8))

	if !settings.StartPaused {
		judged.Start()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
