// Package eggs detects rare compound behavior patterns and announces a
// short celebration for each one.
package eggs

import "time"

// Type identifies an easter egg trigger.
type Type string

const (
	TypeHighScore     Type = "highScoreSecret"
	TypePerfectScroll Type = "perfectScroll"
	TypeClickMaster   Type = "clickMaster"
	TypeKeyCombo      Type = "keyCombo"
	TypeSuper         Type = "superEnding"
)

// Types lists every trigger in a stable order.
var Types = []Type{TypeHighScore, TypePerfectScroll, TypeClickMaster, TypeKeyCombo, TypeSuper}

// FallbackMessage is shown when a trigger has no message of its own.
const FallbackMessage = "The judgment is pleasantly surprised."

var defaultMessages = map[Type]string{
	TypeHighScore:     "Secret high-score mode: the judgment is impressed.",
	TypePerfectScroll: "Perfect scroll detected. You read the whole thing!",
	TypeClickMaster:   "Click master unlocked. Smooth moves!",
	TypeKeyCombo:      "Flavor text: you cracked the secret combo.",
	TypeSuper:         "Good ending unlocked. Flavortown applause incoming.",
}

// DefaultMessage returns the celebration text for t.
func DefaultMessage(t Type) string {
	if message, ok := defaultMessages[t]; ok {
		return message
	}
	return FallbackMessage
}

// Phase is the bookkeeping state of one trigger.
type Phase string

const (
	// PhaseArmed means the trigger may fire.
	PhaseArmed Phase = "armed"
	// PhaseCooling means the trigger fired and is blocked until its cooldown ends.
	PhaseCooling Phase = "cooling"
	// PhaseSpent means the trigger fired and stays blocked until an explicit rearm.
	PhaseSpent Phase = "spent"
)

// Record is the per-trigger state.
type Record struct {
	Phase   Phase
	FiredAt time.Time
	// Until is the end of the cooldown while Phase is PhaseCooling.
	Until time.Time
}

// Fired reports whether the trigger currently counts as achieved.
func (record Record) Fired() bool {
	return record.Phase != PhaseArmed
}

// TriggerOptions overrides the presentation of a single trigger.
type TriggerOptions struct {
	Message  string
	Duration time.Duration
}

// EventKind defines the type of presentation event.
type EventKind string

const (
	EventTriggered EventKind = "triggered"
	EventCleared   EventKind = "cleared"
)

// Event notifies presentation layers that a celebration started or ended.
type Event struct {
	Kind     EventKind
	Type     Type
	Message  string
	Duration time.Duration
	At       time.Time
}

// Snapshot describes the detector for tooling and tests.
type Snapshot struct {
	Active      Type
	Triggers    map[Type]Record
	ClickStreak int
	ComboBuffer string
}
