package platform

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"judgy/internal/core/model"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "JUDGY_"

// LaunchOptions are process-level switches that never reach the settings file.
type LaunchOptions struct {
	ConfigPath   string `env:"CONFIG"`
	Mute         bool   `env:"MUTE"`
	ReduceMotion bool   `env:"REDUCE_MOTION"`
	StartPaused  bool   `env:"START_PAUSED"`
}

// ApplyEnv overlays JUDGY_* variables onto config, for example
// JUDGY_IDLE_WARN=3s or JUDGY_EGGS_SECRET_COMBO=TASTY. Unset variables keep
// the current values.
func ApplyEnv(config *model.Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseLaunchOptions reads the JUDGY_* process switches.
func ParseLaunchOptions() (LaunchOptions, error) {
	var options LaunchOptions
	if err := env.ParseWithOptions(&options, env.Options{Prefix: EnvPrefix}); err != nil {
		return options, fmt.Errorf("parse env: %w", err)
	}
	return options, nil
}
