package eggs

import (
	"log"
	"sync"

	"judgy/internal/core/attitude"
	"judgy/internal/core/clock"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

// ScoreSource is the part of the score engine the detector watches.
type ScoreSource interface {
	Score() int
	OnScoreChange(handler func(attitude.ScoreChangeEvent)) func()
	OnLevelChange(handler func(attitude.LevelChangeEvent)) func()
}

// Detector feeds interaction and score events into a State and turns the
// triggers it fires into presentation events. At most one celebration is
// active at a time; each one clears itself after its duration.
type Detector struct {
	mu     sync.Mutex
	scores ScoreSource
	clock  clock.Clock
	state  *State
	detach []func()
	ticker clock.Timer

	active        Type
	activeMessage string
	resetTimer    clock.Timer
	generation    uint64

	events    []chan Event
	destroyed bool
}

// New attaches a detector to scores and source, runs an initial check and
// keeps checking every config.CheckEvery until Destroy.
func New(scores ScoreSource, source env.Source, clk clock.Clock, config model.EasterEggConfig) *Detector {
	detector := &Detector{
		scores: scores,
		clock:  clk,
		state:  NewState(config, clk.Now()),
	}

	detector.mu.Lock()
	detector.detach = []func(){
		source.OnScroll(detector.handleScroll),
		source.OnClick(detector.handleClick),
		source.OnKey(detector.handleKey),
		scores.OnScoreChange(detector.handleScore),
		scores.OnLevelChange(detector.handleLevel),
	}
	detector.ticker = clk.Every(detector.state.Config().CheckEvery, detector.CheckEasterEggs)
	detector.mu.Unlock()

	detector.CheckEasterEggs()
	return detector
}

// Subscribe registers a new observer channel. Sends never block; a full
// channel misses the event. Channels are closed by Destroy.
func (detector *Detector) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		close(ch)
		return ch
	}
	detector.events = append(detector.events, ch)
	return ch
}

// CheckEasterEggs re-evaluates the HighScore and Super conditions against
// the current time and score.
func (detector *Detector) CheckEasterEggs() {
	score := detector.scores.Score()
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.fireLocked(detector.state.Check(detector.clock.Now(), score))
}

// TriggerEasterEgg starts a celebration of type t, replacing any active one.
// Bookkeeping is not touched, so tooling can force any presentation.
func (detector *Detector) TriggerEasterEgg(t Type, options TriggerOptions) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		log.Printf("eggs: trigger %s after destroy", t)
		return
	}
	detector.triggerLocked(t, options)
}

// ResetEasterEggs ends the active celebration. Fired and cooldown
// bookkeeping is kept.
func (detector *Detector) ResetEasterEggs() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.clearLocked()
}

// Rearm ends the active celebration and clears every trigger's bookkeeping,
// including lifetime one-shots, cooldowns, the click streak and the combo
// buffer.
func (detector *Detector) Rearm() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.clearLocked()
	detector.state.Rearm(detector.clock.Now())
}

// Active returns the celebration currently shown, if any.
func (detector *Detector) Active() (Type, bool) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return detector.active, detector.active != ""
}

// Snapshot returns the current bookkeeping.
func (detector *Detector) Snapshot() Snapshot {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	return Snapshot{
		Active:      detector.active,
		Triggers:    detector.state.Triggers(),
		ClickStreak: detector.state.ClickStreak(),
		ComboBuffer: detector.state.ComboBuffer(),
	}
}

// Destroy detaches every listener, cancels every timer, ends the active
// celebration and closes subscriber channels. Later calls do nothing.
func (detector *Detector) Destroy() {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	for _, unsubscribe := range detector.detach {
		unsubscribe()
	}
	detector.detach = nil
	if detector.ticker != nil {
		detector.ticker.Stop()
		detector.ticker = nil
	}
	detector.clearLocked()
	detector.destroyed = true
	for _, ch := range detector.events {
		close(ch)
	}
	detector.events = nil
}

func (detector *Detector) handleScroll(event env.ScrollEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.fireLocked(detector.state.Scroll(event))
}

func (detector *Detector) handleClick(event env.ClickEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.fireLocked(detector.state.Click(event.At, env.IsInteractive(event.Target)))
}

func (detector *Detector) handleKey(event env.KeyEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.fireLocked(detector.state.Key(event.At, event.Key))
}

func (detector *Detector) handleScore(event attitude.ScoreChangeEvent) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.fireLocked(detector.state.Score(detector.clock.Now(), event.Score, event.Delta))
}

func (detector *Detector) handleLevel(event attitude.LevelChangeEvent) {
	if event.Level != attitude.LevelRespectful {
		return
	}
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed {
		return
	}
	detector.fireLocked(detector.state.Check(detector.clock.Now(), event.Score))
}

func (detector *Detector) fireLocked(fired []Type) {
	for _, t := range fired {
		detector.triggerLocked(t, TriggerOptions{})
	}
}

func (detector *Detector) triggerLocked(t Type, options TriggerOptions) {
	detector.clearLocked()

	message := options.Message
	if message == "" {
		message = DefaultMessage(t)
	}
	duration := options.Duration
	if duration <= 0 {
		duration = detector.state.Config().EggDuration
	}

	detector.generation++
	generation := detector.generation
	detector.active = t
	detector.activeMessage = message
	detector.resetTimer = detector.clock.AfterFunc(duration, func() {
		detector.autoReset(generation)
	})

	detector.emitLocked(Event{
		Kind:     EventTriggered,
		Type:     t,
		Message:  message,
		Duration: duration,
		At:       detector.clock.Now(),
	})
}

func (detector *Detector) autoReset(generation uint64) {
	detector.mu.Lock()
	defer detector.mu.Unlock()
	if detector.destroyed || generation != detector.generation {
		return
	}
	detector.resetTimer = nil
	detector.clearLocked()
}

// clearLocked ends the active celebration and cancels its auto-reset.
func (detector *Detector) clearLocked() {
	detector.generation++
	if detector.resetTimer != nil {
		detector.resetTimer.Stop()
		detector.resetTimer = nil
	}
	if detector.active == "" {
		return
	}
	previous := detector.active
	message := detector.activeMessage
	detector.active = ""
	detector.activeMessage = ""
	detector.emitLocked(Event{
		Kind:    EventCleared,
		Type:    previous,
		Message: message,
		At:      detector.clock.Now(),
	})
}

func (detector *Detector) emitLocked(event Event) {
	for _, ch := range detector.events {
		select {
		case ch <- event:
		default:
		}
	}
}

