package behavior

import (
	"sync"

	"judgy/internal/core/env"
)

// ResizeRule decides whether a resize deserves a score change. count is the
// number of resizes since Start, including this one.
type ResizeRule func(event env.ResizeEvent, count int) (delta int, reason string, ok bool)

// ResizeDetector tracks viewport resizes. Without a rule it never scores.
type ResizeDetector struct {
	mu        sync.Mutex
	rule      ResizeRule
	scorer    Scorer
	source    env.Source
	lifecycle lifecycle
	detach    []func()

	count int
	last  env.ResizeEvent
}

// NewResizeDetector creates a stopped resize detector. rule may be nil.
func NewResizeDetector(rule ResizeRule, scorer Scorer, source env.Source) *ResizeDetector {
	return &ResizeDetector{
		rule:      rule,
		scorer:    scorer,
		source:    source,
		lifecycle: lifecycle{name: "resize"},
	}
}

// Start attaches the detector.
func (detector *ResizeDetector) Start() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.begin() {
		return
	}
	detector.count = 0
	detector.last = env.ResizeEvent{}
	detector.detach = []func(){detector.source.OnResize(detector.handleResize)}
}

// Stop detaches the detector.
func (detector *ResizeDetector) Stop() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.end() {
		return
	}
	unsubscribeAll(detector.detach)
	detector.detach = nil
}

// Running reports whether the detector is attached.
func (detector *ResizeDetector) Running() bool {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.lifecycle.running
}

// Last returns the most recent resize and the number seen since Start.
func (detector *ResizeDetector) Last() (env.ResizeEvent, int) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.last, detector.count
}

func (detector *ResizeDetector) handleResize(event env.ResizeEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.running {
		return
	}
	detector.count++
	detector.last = event
	if detector.rule == nil {
		return
	}
	if delta, reason, ok := detector.rule(event, detector.count); ok && delta != 0 {
		detector.scorer.ChangeScore(delta, reason)
	}
}
