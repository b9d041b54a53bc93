// Package behavior turns raw interaction streams into score deltas. Each
// detector watches one category of events, is either stopped or running, and
// only touches its state while running.
package behavior

import (
	"log"

	"judgy/internal/core/attitude"
)

// Reasons attached to score changes.
const (
	ReasonFastScroll     = "Scrolls too fast"
	ReasonCalmScroll     = "Reads calmly"
	ReasonBoldAssumption = "Bold assumption"
	ReasonClickSpam      = "Click spam"
	ReasonNotInteractive = "That wasn't interactive"
	ReasonPoliteClick    = "Polite click"
	ReasonThinking       = "Thinking?"
	ReasonYouLeft        = "You left, didn't you"
	ReasonMultitasking   = "Multitasking. Brave."
	ReasonIllWait        = "I'll wait"
)

// Detector is the lifecycle shared by every signal detector. Start on a
// running detector and Stop on a stopped one are logged no-ops.
type Detector interface {
	Start()
	Stop()
	Running() bool
}

// Scorer receives score deltas. *attitude.Engine implements it.
type Scorer interface {
	ChangeScore(delta int, reason string) attitude.Snapshot
}

type lifecycle struct {
	name    string
	running bool
}

// begin marks the detector running. It reports false if it already was.
func (state *lifecycle) begin() bool {
	if state.running {
		log.Printf("behavior: %s detector already running", state.name)
		return false
	}
	state.running = true
	return true
}

// end marks the detector stopped. It reports false if it already was.
func (state *lifecycle) end() bool {
	if !state.running {
		log.Printf("behavior: %s detector not running", state.name)
		return false
	}
	state.running = false
	return true
}

func unsubscribeAll(unsubscribers []func()) {
	for _, unsubscribe := range unsubscribers {
		unsubscribe()
	}
}
