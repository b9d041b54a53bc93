package model

import "time"

// ScrollConfig tunes the scroll detector. Speeds are in pixels per millisecond.
type ScrollConfig struct {
	FastSpeed       float64       `env:"FAST_SPEED"`
	CalmSpeed       float64       `env:"CALM_SPEED"`
	MinDistance     float64       `env:"MIN_DISTANCE"`
	FastCooldown    time.Duration `env:"FAST_COOLDOWN"`
	CalmCooldown    time.Duration `env:"CALM_COOLDOWN"`
	UltraFastBottom time.Duration `env:"ULTRA_FAST_BOTTOM"`
}

// ClickConfig tunes the click detector.
type ClickConfig struct {
	Window       time.Duration `env:"WINDOW"`
	SpamCount    int           `env:"SPAM_COUNT"`
	SpamCooldown time.Duration `env:"SPAM_COOLDOWN"`

	// InteractiveRewardDelta of 0 disables the polite-click reward.
	InteractiveRewardDelta    int           `env:"REWARD_DELTA"`
	InteractiveRewardReason   string        `env:"REWARD_REASON"`
	InteractiveRewardCooldown time.Duration `env:"REWARD_COOLDOWN"`

	NonInteractiveTags []string `env:"NON_INTERACTIVE_TAGS" envSeparator:","`
}

// IdleConfig tunes the idle detector.
type IdleConfig struct {
	Warn       time.Duration `env:"WARN"`
	WarnMax    time.Duration `env:"WARN_MAX"`
	Penalty    time.Duration `env:"PENALTY"`
	CheckEvery time.Duration `env:"CHECK_EVERY"`
}

// EasterEggConfig tunes the compound-condition detector.
type EasterEggConfig struct {
	PerfectScrollDepth       float64       `env:"PERFECT_SCROLL_DEPTH"`
	PerfectScrollDuration    time.Duration `env:"PERFECT_SCROLL_DURATION"`
	SlowScrollSpeedThreshold float64       `env:"SLOW_SCROLL_SPEED"`
	ClickStreakTarget        int           `env:"CLICK_STREAK_TARGET"`
	HighScoreWindow          time.Duration `env:"HIGH_SCORE_WINDOW"`
	HighScoreCooldown        time.Duration `env:"HIGH_SCORE_COOLDOWN"`
	ComboCooldown            time.Duration `env:"COMBO_COOLDOWN"`
	EggDuration              time.Duration `env:"EGG_DURATION"`
	CheckEvery               time.Duration `env:"CHECK_EVERY"`
	SecretCombo              string        `env:"SECRET_COMBO"`
}

// Config gathers every tuning section for one session.
type Config struct {
	Scroll ScrollConfig    `envPrefix:"SCROLL_"`
	Click  ClickConfig     `envPrefix:"CLICK_"`
	Idle   IdleConfig      `envPrefix:"IDLE_"`
	Eggs   EasterEggConfig `envPrefix:"EGGS_"`
}

// DefaultScrollConfig returns the stock scroll tuning.
func DefaultScrollConfig() ScrollConfig {
	return ScrollConfig{
		FastSpeed:       1.2,
		CalmSpeed:       0.2,
		MinDistance:     120,
		FastCooldown:    2 * time.Second,
		CalmCooldown:    3 * time.Second,
		UltraFastBottom: 2 * time.Second,
	}
}

// DefaultClickConfig returns the stock click tuning.
func DefaultClickConfig() ClickConfig {
	return ClickConfig{
		Window:                    2 * time.Second,
		SpamCount:                 8,
		SpamCooldown:              3 * time.Second,
		InteractiveRewardDelta:    1,
		InteractiveRewardReason:   "Polite click",
		InteractiveRewardCooldown: 1200 * time.Millisecond,
		NonInteractiveTags:        []string{"DIV", "SPAN", "P", "H1", "H2", "H3", "H4", "H5", "H6"},
	}
}

// DefaultIdleConfig returns the stock idle tuning.
func DefaultIdleConfig() IdleConfig {
	return IdleConfig{
		Warn:       5 * time.Second,
		WarnMax:    10 * time.Second,
		Penalty:    20 * time.Second,
		CheckEvery: time.Second,
	}
}

// DefaultEasterEggConfig returns the stock easter egg tuning.
func DefaultEasterEggConfig() EasterEggConfig {
	return EasterEggConfig{
		PerfectScrollDepth:       0.93,
		PerfectScrollDuration:    8 * time.Second,
		SlowScrollSpeedThreshold: 0.33,
		ClickStreakTarget:        10,
		HighScoreWindow:          30 * time.Second,
		HighScoreCooldown:        60 * time.Second,
		ComboCooldown:            40 * time.Second,
		EggDuration:              5200 * time.Millisecond,
		CheckEvery:               time.Second,
		SecretCombo:              "FLAVOR",
	}
}

// Default returns the stock configuration for every section.
func Default() Config {
	return Config{
		Scroll: DefaultScrollConfig(),
		Click:  DefaultClickConfig(),
		Idle:   DefaultIdleConfig(),
		Eggs:   DefaultEasterEggConfig(),
	}
}
