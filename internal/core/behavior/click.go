package behavior

import (
	"strings"
	"sync"
	"time"

	"judgy/internal/core/clock"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

// ClickDetector judges click rate and where clicks land.
type ClickDetector struct {
	mu                 sync.Mutex
	config             model.ClickConfig
	nonInteractiveTags map[string]bool
	scorer             Scorer
	source             env.Source
	clock              clock.Clock
	lifecycle          lifecycle
	detach             []func()

	clickTimes        []time.Time
	lastSpamAt        time.Time
	lastInteractiveAt time.Time
}

// NewClickDetector creates a stopped click detector.
func NewClickDetector(config model.ClickConfig, scorer Scorer, source env.Source, clk clock.Clock) *ClickDetector {
	defaults := model.DefaultClickConfig()
	if config.Window <= 0 {
		config.Window = defaults.Window
	}
	if config.SpamCount <= 0 {
		config.SpamCount = defaults.SpamCount
	}
	if config.SpamCooldown <= 0 {
		config.SpamCooldown = defaults.SpamCooldown
	}
	if config.InteractiveRewardReason == "" {
		config.InteractiveRewardReason = ReasonPoliteClick
	}
	if config.InteractiveRewardCooldown <= 0 {
		config.InteractiveRewardCooldown = defaults.InteractiveRewardCooldown
	}
	if config.NonInteractiveTags == nil {
		config.NonInteractiveTags = defaults.NonInteractiveTags
	}

	tags := make(map[string]bool, len(config.NonInteractiveTags))
	for _, tag := range config.NonInteractiveTags {
		tags[strings.ToUpper(strings.TrimSpace(tag))] = true
	}

	return &ClickDetector{
		config:             config,
		nonInteractiveTags: tags,
		scorer:             scorer,
		source:             source,
		clock:              clk,
		lifecycle:          lifecycle{name: "click"},
	}
}

// Start attaches the detector with an empty click window.
func (detector *ClickDetector) Start() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.begin() {
		return
	}
	detector.clickTimes = nil
	detector.lastSpamAt = time.Time{}
	detector.lastInteractiveAt = time.Time{}
	detector.detach = []func(){detector.source.OnClick(detector.handleClick)}
}

// Stop detaches the detector.
func (detector *ClickDetector) Stop() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.end() {
		return
	}
	unsubscribeAll(detector.detach)
	detector.detach = nil
	detector.clickTimes = nil
}

// Running reports whether the detector is attached.
func (detector *ClickDetector) Running() bool {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.lifecycle.running
}

func (detector *ClickDetector) handleClick(event env.ClickEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.running {
		return
	}

	now := event.At
	detector.clickTimes = append(detector.clickTimes, now)
	windowStart := now.Add(-detector.config.Window)
	kept := detector.clickTimes[:0]
	for _, at := range detector.clickTimes {
		if !at.Before(windowStart) {
			kept = append(kept, at)
		}
	}
	detector.clickTimes = kept

	if len(detector.clickTimes) >= detector.config.SpamCount &&
		cooledDown(now, detector.lastSpamAt, detector.config.SpamCooldown) {
		detector.lastSpamAt = now
		detector.scorer.ChangeScore(-2, ReasonClickSpam)
	}

	if env.IsInteractive(event.Target) {
		if cooledDown(now, detector.lastInteractiveAt, detector.config.InteractiveRewardCooldown) {
			detector.lastInteractiveAt = now
			if detector.config.InteractiveRewardDelta != 0 {
				detector.scorer.ChangeScore(detector.config.InteractiveRewardDelta, detector.config.InteractiveRewardReason)
			}
		}
		return
	}

	if event.Target == nil || detector.nonInteractiveTags[event.Target.TagName()] {
		detector.scorer.ChangeScore(-1, ReasonNotInteractive)
	}
}
