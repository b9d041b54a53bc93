package behavior

import (
	"sync"
	"time"

	"judgy/internal/core/clock"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

// IdleDetector penalises inactivity. It checks on a fixed interval; any
// pointer, key or touch activity starts a new idle episode.
type IdleDetector struct {
	mu        sync.Mutex
	config    model.IdleConfig
	scorer    Scorer
	source    env.Source
	clock     clock.Clock
	lifecycle lifecycle
	detach    []func()
	ticker    clock.Timer

	lastActivityAt time.Time
	warned         bool
	penalized      bool
}

// NewIdleDetector creates a stopped idle detector.
func NewIdleDetector(config model.IdleConfig, scorer Scorer, source env.Source, clk clock.Clock) *IdleDetector {
	defaults := model.DefaultIdleConfig()
	if config.Warn <= 0 {
		config.Warn = defaults.Warn
	}
	if config.WarnMax <= 0 {
		config.WarnMax = defaults.WarnMax
	}
	if config.Penalty <= 0 {
		config.Penalty = defaults.Penalty
	}
	if config.CheckEvery <= 0 {
		config.CheckEvery = defaults.CheckEvery
	}
	return &IdleDetector{
		config:    config,
		scorer:    scorer,
		source:    source,
		clock:     clk,
		lifecycle: lifecycle{name: "idle"},
	}
}

// Start attaches the detector and begins periodic checks. The first idle
// episode starts now.
func (detector *IdleDetector) Start() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.begin() {
		return
	}
	detector.lastActivityAt = detector.clock.Now()
	detector.warned = false
	detector.penalized = false
	detector.detach = []func(){detector.source.OnActivity(detector.handleActivity)}
	detector.ticker = detector.clock.Every(detector.config.CheckEvery, detector.Check)
}

// Stop cancels the periodic check and detaches the detector.
func (detector *IdleDetector) Stop() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.end() {
		return
	}
	if detector.ticker != nil {
		detector.ticker.Stop()
		detector.ticker = nil
	}
	unsubscribeAll(detector.detach)
	detector.detach = nil
}

// Running reports whether the detector is attached.
func (detector *IdleDetector) Running() bool {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.lifecycle.running
}

// IdleFor returns the current idle duration, or 0 while stopped.
func (detector *IdleDetector) IdleFor() time.Duration {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.running {
		return 0
	}
	return detector.clock.Now().Sub(detector.lastActivityAt)
}

// Check evaluates the idle thresholds against the current time. The warn
// and penalty deltas each fire at most once per idle episode.
func (detector *IdleDetector) Check() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.running {
		return
	}

	idle := detector.clock.Now().Sub(detector.lastActivityAt)

	if !detector.warned && idle >= detector.config.Warn && idle <= detector.config.WarnMax {
		detector.warned = true
		detector.scorer.ChangeScore(-1, ReasonThinking)
	}

	if !detector.penalized && idle >= detector.config.Penalty {
		detector.penalized = true
		detector.scorer.ChangeScore(-2, ReasonYouLeft)
	}
}

func (detector *IdleDetector) handleActivity(event env.ActivityEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.running {
		return
	}
	detector.lastActivityAt = event.At
	detector.warned = false
	detector.penalized = false
}
