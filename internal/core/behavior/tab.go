package behavior

import (
	"sync"

	"judgy/internal/core/env"
)

// TabDetector penalises the first two times the document is hidden.
// Later hides are counted but not scored.
type TabDetector struct {
	mu        sync.Mutex
	scorer    Scorer
	source    env.Source
	lifecycle lifecycle
	detach    []func()

	hides int
}

// NewTabDetector creates a stopped tab detector.
func NewTabDetector(scorer Scorer, source env.Source) *TabDetector {
	return &TabDetector{
		scorer:    scorer,
		source:    source,
		lifecycle: lifecycle{name: "tab"},
	}
}

// Start attaches the detector with a fresh hide count.
func (detector *TabDetector) Start() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.begin() {
		return
	}
	detector.hides = 0
	detector.detach = []func(){detector.source.OnVisibility(detector.handleVisibility)}
}

// Stop detaches the detector.
func (detector *TabDetector) Stop() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.end() {
		return
	}
	unsubscribeAll(detector.detach)
	detector.detach = nil
}

// Running reports whether the detector is attached.
func (detector *TabDetector) Running() bool {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.lifecycle.running
}

// Hides returns how many times the document was hidden since Start.
func (detector *TabDetector) Hides() int {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.hides
}

func (detector *TabDetector) handleVisibility(event env.VisibilityEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if !detector.lifecycle.running || !event.Hidden {
		return
	}
	detector.hides++
	switch detector.hides {
	case 1:
		detector.scorer.ChangeScore(-3, ReasonMultitasking)
	case 2:
		detector.scorer.ChangeScore(-3, ReasonIllWait)
	}
}
