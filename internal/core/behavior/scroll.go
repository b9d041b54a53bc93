package behavior

import (
	"math"
	"sync"
	"time"

	"judgy/internal/core/clock"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

// ScrollMetrics summarises reading progress since Start.
type ScrollMetrics struct {
	MaxDepth float64
	Elapsed  time.Duration
}

// ScrollDetector judges scroll speed and how quickly the reader reaches the
// bottom of the document.
type ScrollDetector struct {
	mu        sync.Mutex
	config    model.ScrollConfig
	scorer    Scorer
	source    env.Source
	clock     clock.Clock
	lifecycle lifecycle
	detach    []func()

	sessionStart       time.Time
	lastY              float64
	lastAt             time.Time
	maxDepth           float64
	lastFastAt         time.Time
	lastCalmAt         time.Time
	ultraFastTriggered bool
}

// NewScrollDetector creates a stopped scroll detector.
func NewScrollDetector(config model.ScrollConfig, scorer Scorer, source env.Source, clk clock.Clock) *ScrollDetector {
	defaults := model.DefaultScrollConfig()
	if config.FastSpeed <= 0 {
		config.FastSpeed = defaults.FastSpeed
	}
	if config.CalmSpeed <= 0 {
		config.CalmSpeed = defaults.CalmSpeed
	}
	if config.MinDistance <= 0 {
		config.MinDistance = defaults.MinDistance
	}
	if config.FastCooldown <= 0 {
		config.FastCooldown = defaults.FastCooldown
	}
	if config.CalmCooldown <= 0 {
		config.CalmCooldown = defaults.CalmCooldown
	}
	if config.UltraFastBottom <= 0 {
		config.UltraFastBottom = defaults.UltraFastBottom
	}
	return &ScrollDetector{
		config:    config,
		scorer:    scorer,
		source:    source,
		clock:     clk,
		lifecycle: lifecycle{name: "scroll"},
	}
}

// Start begins a reading session. Speed and depth are measured from the
// source's current position when it reports one, else from the top.
func (detector *ScrollDetector) Start() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.begin() {
		return
	}
	now := detector.clock.Now()
	detector.sessionStart = now
	detector.lastAt = now
	detector.lastY = 0
	detector.maxDepth = 0
	if positioner, ok := detector.source.(env.ScrollPositioner); ok {
		if position, known := positioner.ScrollPosition(); known {
			detector.lastY = position.Y
			detector.maxDepth = position.Depth()
		}
	}
	detector.lastFastAt = time.Time{}
	detector.lastCalmAt = time.Time{}
	detector.ultraFastTriggered = false
	detector.detach = []func(){detector.source.OnScroll(detector.handleScroll)}
}

// Stop detaches the detector.
func (detector *ScrollDetector) Stop() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.end() {
		return
	}
	unsubscribeAll(detector.detach)
	detector.detach = nil
}

// Running reports whether the detector is attached.
func (detector *ScrollDetector) Running() bool {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.lifecycle.running
}

// Metrics returns the deepest point reached and the time since Start.
func (detector *ScrollDetector) Metrics() ScrollMetrics {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	metrics := ScrollMetrics{MaxDepth: detector.maxDepth}
	if !detector.sessionStart.IsZero() {
		metrics.Elapsed = detector.clock.Now().Sub(detector.sessionStart)
	}
	return metrics
}

func (detector *ScrollDetector) handleScroll(event env.ScrollEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.running {
		return
	}

	now := event.At
	distance := math.Abs(event.Y - detector.lastY)
	elapsedMs := float64(now.Sub(detector.lastAt)) / float64(time.Millisecond)
	if elapsedMs < 1 {
		elapsedMs = 1
	}
	speed := distance / elapsedMs

	if depth := event.Depth(); depth > detector.maxDepth {
		detector.maxDepth = depth
	}

	if distance >= detector.config.MinDistance {
		if speed >= detector.config.FastSpeed && cooledDown(now, detector.lastFastAt, detector.config.FastCooldown) {
			detector.lastFastAt = now
			detector.scorer.ChangeScore(-2, ReasonFastScroll)
		} else if speed <= detector.config.CalmSpeed && cooledDown(now, detector.lastCalmAt, detector.config.CalmCooldown) {
			detector.lastCalmAt = now
			detector.scorer.ChangeScore(1, ReasonCalmScroll)
		}
	}

	if !detector.ultraFastTriggered && event.AtBottom() &&
		now.Sub(detector.sessionStart) <= detector.config.UltraFastBottom {
		detector.ultraFastTriggered = true
		detector.scorer.ChangeScore(-2, ReasonBoldAssumption)
	}

	detector.lastY = event.Y
	detector.lastAt = now
}

// cooledDown reports whether more than cooldown has passed since last.
// A zero last means the event never happened.
func cooledDown(now, last time.Time, cooldown time.Duration) bool {
	return last.IsZero() || now.Sub(last) > cooldown
}
