package behavior

import (
	"judgy/internal/core/clock"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

// Options configures a System.
type Options struct {
	Scroll     model.ScrollConfig
	Click      model.ClickConfig
	Idle       model.IdleConfig
	ResizeRule ResizeRule
}

// DefaultOptions returns stock tuning for every detector.
func DefaultOptions() Options {
	return Options{
		Scroll: model.DefaultScrollConfig(),
		Click:  model.DefaultClickConfig(),
		Idle:   model.DefaultIdleConfig(),
	}
}

// System starts and stops every detector together.
type System struct {
	Scroll *ScrollDetector
	Click  *ClickDetector
	Idle   *IdleDetector
	Tab    *TabDetector
	Resize *ResizeDetector
}

// NewSystem wires all five detectors to one scorer and event source.
func NewSystem(options Options, scorer Scorer, source env.Source, clk clock.Clock) *System {
	return &System{
		Scroll: NewScrollDetector(options.Scroll, scorer, source, clk),
		Click:  NewClickDetector(options.Click, scorer, source, clk),
		Idle:   NewIdleDetector(options.Idle, scorer, source, clk),
		Tab:    NewTabDetector(scorer, source),
		Resize: NewResizeDetector(options.ResizeRule, scorer, source),
	}
}

// Modules returns the detectors in start order.
func (system *System) Modules() []Detector {
	return []Detector{system.Scroll, system.Click, system.Idle, system.Tab, system.Resize}
}

// Start starts every stopped detector.
func (system *System) Start() {
	for _, detector := range system.Modules() {
		if !detector.Running() {
			detector.Start()
		}
	}
}

// Stop stops every running detector.
func (system *System) Stop() {
	for _, detector := range system.Modules() {
		if detector.Running() {
			detector.Stop()
		}
	}
}

// Running reports whether any detector is running.
func (system *System) Running() bool {
	for _, detector := range system.Modules() {
		if detector.Running() {
			return true
		}
	}
	return false
}
