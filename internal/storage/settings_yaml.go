package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"judgy/internal/platform"
	"judgy/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

// Durations are stored as whole milliseconds.
type yamlSettings struct {
	FastSpeed         float64 `yaml:"fast_speed"`
	CalmSpeed         float64 `yaml:"calm_speed"`
	MinDistance       float64 `yaml:"min_distance"`
	FastCooldownMs    int     `yaml:"fast_cooldown_ms"`
	CalmCooldownMs    int     `yaml:"calm_cooldown_ms"`
	UltraFastBottomMs int     `yaml:"ultra_fast_bottom_ms"`

	ClickWindowMs             int       `yaml:"click_window_ms"`
	ClickSpamCount            int       `yaml:"click_spam_count"`
	ClickSpamCooldownMs       int       `yaml:"click_spam_cooldown_ms"`
	InteractiveRewardDelta    *int      `yaml:"interactive_reward_delta,omitempty"`
	InteractiveRewardCooldown int       `yaml:"interactive_reward_cooldown_ms"`
	NonInteractiveTags        *[]string `yaml:"non_interactive_tags,omitempty"`

	IdleWarnMs       int `yaml:"idle_warn_ms"`
	IdleWarnMaxMs    int `yaml:"idle_warn_max_ms"`
	IdlePenaltyMs    int `yaml:"idle_penalty_ms"`
	IdleCheckEveryMs int `yaml:"idle_check_every_ms"`

	PerfectScrollDepth       float64 `yaml:"perfect_scroll_depth"`
	PerfectScrollDurationMs  int     `yaml:"perfect_scroll_duration_ms"`
	SlowScrollSpeedThreshold float64 `yaml:"slow_scroll_speed_threshold"`
	ClickStreakTarget        int     `yaml:"click_streak_target"`
	HighScoreWindowMs        int     `yaml:"high_score_window_ms"`
	HighScoreCooldownMs      int     `yaml:"high_score_cooldown_ms"`
	ComboCooldownMs          int     `yaml:"combo_cooldown_ms"`
	EggDurationMs            int     `yaml:"egg_duration_ms"`
	EggCheckEveryMs          int     `yaml:"egg_check_every_ms"`
	SecretCombo              string  `yaml:"secret_combo"`

	ReduceMotion   bool    `yaml:"reduce_motion"`
	OverlayOpacity float64 `yaml:"overlay_opacity"`
	StartPaused    bool    `yaml:"start_paused"`
	LaunchAtLogin  bool    `yaml:"launch_at_login"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from the YAML file at configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to the YAML file at configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(toYamlSettings(settings))
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns the settings file location for appName.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func toYamlSettings(settings preferences.Settings) yamlSettings {
	tuning := settings.Tuning
	reward := tuning.Click.InteractiveRewardDelta
	var tags *[]string
	if tuning.Click.NonInteractiveTags != nil {
		listed := append([]string{}, tuning.Click.NonInteractiveTags...)
		tags = &listed
	}
	return yamlSettings{
		FastSpeed:         tuning.Scroll.FastSpeed,
		CalmSpeed:         tuning.Scroll.CalmSpeed,
		MinDistance:       tuning.Scroll.MinDistance,
		FastCooldownMs:    millis(tuning.Scroll.FastCooldown),
		CalmCooldownMs:    millis(tuning.Scroll.CalmCooldown),
		UltraFastBottomMs: millis(tuning.Scroll.UltraFastBottom),

		ClickWindowMs:             millis(tuning.Click.Window),
		ClickSpamCount:            tuning.Click.SpamCount,
		ClickSpamCooldownMs:       millis(tuning.Click.SpamCooldown),
		InteractiveRewardDelta:    &reward,
		InteractiveRewardCooldown: millis(tuning.Click.InteractiveRewardCooldown),
		NonInteractiveTags:        tags,

		IdleWarnMs:       millis(tuning.Idle.Warn),
		IdleWarnMaxMs:    millis(tuning.Idle.WarnMax),
		IdlePenaltyMs:    millis(tuning.Idle.Penalty),
		IdleCheckEveryMs: millis(tuning.Idle.CheckEvery),

		PerfectScrollDepth:       tuning.Eggs.PerfectScrollDepth,
		PerfectScrollDurationMs:  millis(tuning.Eggs.PerfectScrollDuration),
		SlowScrollSpeedThreshold: tuning.Eggs.SlowScrollSpeedThreshold,
		ClickStreakTarget:        tuning.Eggs.ClickStreakTarget,
		HighScoreWindowMs:        millis(tuning.Eggs.HighScoreWindow),
		HighScoreCooldownMs:      millis(tuning.Eggs.HighScoreCooldown),
		ComboCooldownMs:          millis(tuning.Eggs.ComboCooldown),
		EggDurationMs:            millis(tuning.Eggs.EggDuration),
		EggCheckEveryMs:          millis(tuning.Eggs.CheckEvery),
		SecretCombo:              tuning.Eggs.SecretCombo,

		ReduceMotion:   settings.ReduceMotion,
		OverlayOpacity: settings.OverlayOpacity,
		StartPaused:    settings.StartPaused,
		LaunchAtLogin:  settings.LaunchAtLogin,
	}
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	scroll := &settings.Tuning.Scroll
	setFloat(&scroll.FastSpeed, fileData.FastSpeed)
	setFloat(&scroll.CalmSpeed, fileData.CalmSpeed)
	setFloat(&scroll.MinDistance, fileData.MinDistance)
	setMillis(&scroll.FastCooldown, fileData.FastCooldownMs)
	setMillis(&scroll.CalmCooldown, fileData.CalmCooldownMs)
	setMillis(&scroll.UltraFastBottom, fileData.UltraFastBottomMs)

	click := &settings.Tuning.Click
	setMillis(&click.Window, fileData.ClickWindowMs)
	setInt(&click.SpamCount, fileData.ClickSpamCount)
	setMillis(&click.SpamCooldown, fileData.ClickSpamCooldownMs)
	if fileData.InteractiveRewardDelta != nil {
		click.InteractiveRewardDelta = *fileData.InteractiveRewardDelta
	}
	setMillis(&click.InteractiveRewardCooldown, fileData.InteractiveRewardCooldown)
	// An explicit empty list means no tag is penalised.
	if fileData.NonInteractiveTags != nil {
		tags := make([]string, 0, len(*fileData.NonInteractiveTags))
		for _, tag := range *fileData.NonInteractiveTags {
			if tag = strings.ToUpper(strings.TrimSpace(tag)); tag != "" {
				tags = append(tags, tag)
			}
		}
		click.NonInteractiveTags = tags
	}

	idle := &settings.Tuning.Idle
	setMillis(&idle.Warn, fileData.IdleWarnMs)
	setMillis(&idle.WarnMax, fileData.IdleWarnMaxMs)
	setMillis(&idle.Penalty, fileData.IdlePenaltyMs)
	setMillis(&idle.CheckEvery, fileData.IdleCheckEveryMs)

	eggs := &settings.Tuning.Eggs
	if fileData.PerfectScrollDepth > 0 && fileData.PerfectScrollDepth <= 1 {
		eggs.PerfectScrollDepth = fileData.PerfectScrollDepth
	}
	setMillis(&eggs.PerfectScrollDuration, fileData.PerfectScrollDurationMs)
	setFloat(&eggs.SlowScrollSpeedThreshold, fileData.SlowScrollSpeedThreshold)
	setInt(&eggs.ClickStreakTarget, fileData.ClickStreakTarget)
	setMillis(&eggs.HighScoreWindow, fileData.HighScoreWindowMs)
	setMillis(&eggs.HighScoreCooldown, fileData.HighScoreCooldownMs)
	setMillis(&eggs.ComboCooldown, fileData.ComboCooldownMs)
	setMillis(&eggs.EggDuration, fileData.EggDurationMs)
	setMillis(&eggs.CheckEvery, fileData.EggCheckEveryMs)
	if combo := strings.TrimSpace(fileData.SecretCombo); combo != "" {
		eggs.SecretCombo = strings.ToUpper(combo)
	}

	if fileData.OverlayOpacity >= 0.7 && fileData.OverlayOpacity <= 0.95 {
		settings.OverlayOpacity = fileData.OverlayOpacity
	}

	settings.ReduceMotion = fileData.ReduceMotion
	settings.StartPaused = fileData.StartPaused
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}

func millis(value time.Duration) int {
	return int(value / time.Millisecond)
}

func setMillis(target *time.Duration, ms int) {
	if ms > 0 {
		*target = time.Duration(ms) * time.Millisecond
	}
}

func setInt(target *int, value int) {
	if value > 0 {
		*target = value
	}
}

func setFloat(target *float64, value float64) {
	if value > 0 {
		*target = value
	}
}
