// Package attitude owns the mood score, derives the mood level from it and
// publishes every change to synchronous subscribers.
package attitude

import (
	"sync"

	"judgy/internal/core/pubsub"
)

// Engine holds one session's score. The zero value is not usable; call New.
//
// Every mutation is applied atomically and queues its events in an outbox.
// Whichever caller finds the outbox idle drains it, so subscribers observe
// events in mutation order. A handler may change the score again: the nested
// change applies at once and its events follow the current ones.
type Engine struct {
	mu    sync.RWMutex
	score int
	level Level

	outboxMu   sync.Mutex
	outbox     []pending
	delivering bool

	scoreHandlers pubsub.Registry[ScoreChangeEvent]
	levelHandlers pubsub.Registry[LevelChangeEvent]
}

// pending holds the events of one mutation awaiting delivery.
type pending struct {
	score        ScoreChangeEvent
	level        LevelChangeEvent
	levelChanged bool
}

// New creates an engine at score 0.
func New() *Engine {
	return NewWithScore(0)
}

// NewWithScore creates an engine at the given score.
func NewWithScore(score int) *Engine {
	return &Engine{
		score: score,
		level: LevelForScore(score),
	}
}

// ChangeScore adds delta to the score and publishes the change.
func (engine *Engine) ChangeScore(delta int, reason string) Snapshot {
	return engine.apply(func(score int) int { return score + delta }, reason)
}

// ResetScore sets the score to an absolute value and publishes the change
// under the same rules as ChangeScore.
func (engine *Engine) ResetScore(score int, reason string) Snapshot {
	return engine.apply(func(int) int { return score }, reason)
}

// Score returns the current score.
func (engine *Engine) Score() int {
	engine.mu.RLock()
	defer engine.mu.RUnlock()
	return engine.score
}

// Level returns the current level.
func (engine *Engine) Level() Level {
	engine.mu.RLock()
	defer engine.mu.RUnlock()
	return engine.level
}

// Snapshot returns score and level read together.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.RLock()
	defer engine.mu.RUnlock()
	return Snapshot{Score: engine.score, Level: engine.level}
}

// OnScoreChange registers a score handler. A nil handler is ignored and the
// returned unsubscribe does nothing.
func (engine *Engine) OnScoreChange(handler func(ScoreChangeEvent)) func() {
	return engine.scoreHandlers.Add(handler)
}

// OnLevelChange registers a level handler. A nil handler is ignored and the
// returned unsubscribe does nothing.
func (engine *Engine) OnLevelChange(handler func(LevelChangeEvent)) func() {
	return engine.levelHandlers.Add(handler)
}

// RegisterHook registers handler for the named kind. Unknown kinds and
// handlers of the wrong type are ignored.
func (engine *Engine) RegisterHook(kind HookKind, handler any) func() {
	switch kind {
	case HookScore:
		if fn, ok := handler.(func(ScoreChangeEvent)); ok {
			return engine.OnScoreChange(fn)
		}
	case HookLevel:
		if fn, ok := handler.(func(LevelChangeEvent)); ok {
			return engine.OnLevelChange(fn)
		}
	}
	return func() {}
}

func (engine *Engine) apply(next func(int) int, reason string) Snapshot {
	engine.outboxMu.Lock()
	engine.mu.Lock()
	previousScore := engine.score
	previousLevel := engine.level
	engine.score = next(previousScore)
	engine.level = LevelForScore(engine.score)
	snapshot := Snapshot{Score: engine.score, Level: engine.level}
	engine.mu.Unlock()

	engine.outbox = append(engine.outbox, pending{
		score: ScoreChangeEvent{
			PreviousScore: previousScore,
			Score:         snapshot.Score,
			Delta:         snapshot.Score - previousScore,
			Reason:        reason,
			Level:         snapshot.Level,
		},
		level: LevelChangeEvent{
			PreviousLevel: previousLevel,
			Level:         snapshot.Level,
			Score:         snapshot.Score,
			Reason:        reason,
		},
		levelChanged: snapshot.Level != previousLevel,
	})
	if engine.delivering {
		engine.outboxMu.Unlock()
		return snapshot
	}
	engine.delivering = true
	engine.outboxMu.Unlock()

	engine.drain()
	return snapshot
}

// drain delivers queued events until the outbox is empty.
func (engine *Engine) drain() {
	defer func() {
		if recovered := recover(); recovered != nil {
			engine.outboxMu.Lock()
			engine.outbox = nil
			engine.delivering = false
			engine.outboxMu.Unlock()
			panic(recovered)
		}
	}()

	for {
		engine.outboxMu.Lock()
		if len(engine.outbox) == 0 {
			engine.outbox = nil
			engine.delivering = false
			engine.outboxMu.Unlock()
			return
		}
		next := engine.outbox[0]
		engine.outbox = engine.outbox[1:]
		engine.outboxMu.Unlock()

		engine.scoreHandlers.Publish(next.score)
		if next.levelChanged {
			engine.levelHandlers.Publish(next.level)
		}
	}
}
