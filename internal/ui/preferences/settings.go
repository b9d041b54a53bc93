package preferences

import (
	"fmt"

	"judgy/internal/core/model"
	"judgy/internal/ui/animation"
)

// Settings defines editable user preferences.
type Settings struct {
	Tuning model.Config

	ReduceMotion   bool
	OverlayOpacity float64
	StartPaused    bool
	LaunchAtLogin  bool
}

// DefaultSettings returns default settings for judgy.
func DefaultSettings() Settings {
	return Settings{
		Tuning:         model.Default(),
		ReduceMotion:   false,
		OverlayOpacity: 0.85,
		StartPaused:    false,
	}
}

// SessionConfig returns the tuning handed to a new session.
func (settings Settings) SessionConfig() model.Config {
	return settings.Tuning
}

// AnimationConfig returns mascot timings with the motion preference applied.
func (settings Settings) AnimationConfig() animation.Config {
	config := animation.DefaultConfig()
	config.ReduceMotion = settings.ReduceMotion
	return config
}

// Summary describes the main tuning in one line for logs.
func (settings Settings) Summary() string {
	tuning := settings.Tuning
	return fmt.Sprintf("idle %s/%s, spam %d in %s, combo %s",
		tuning.Idle.Warn, tuning.Idle.Penalty,
		tuning.Click.SpamCount, tuning.Click.Window,
		tuning.Eggs.SecretCombo)
}
