// Package presenter turns score, level and easter egg events into what a
// front end shows: the mascot, the reason for the last judgment, a remark
// about the current mood and the status line.
package presenter

import (
	"context"
	"sync"

	"judgy/internal/core/attitude"
	"judgy/internal/core/eggs"
	"judgy/internal/ui/animation"
	"judgy/internal/ui/judgment"
)

// Surface is where a front end draws. Methods may be called from any
// goroutine.
type Surface interface {
	SetMascot(frame string)
	SetJudgment(text string)
	SetRemark(text string)
	SetStatus(snapshot attitude.Snapshot)
}

// Scores is the part of the score engine the presenter follows.
type Scores interface {
	Snapshot() attitude.Snapshot
	OnScoreChange(handler func(attitude.ScoreChangeEvent)) func()
	OnLevelChange(handler func(attitude.LevelChangeEvent)) func()
}

// Presenter keeps a Surface in step with one session.
type Presenter struct {
	surface Surface
	picker  *judgment.Picker
	mascot  *animation.Engine
	reason  *animation.Engine
	remark  *animation.Engine

	mu          sync.Mutex
	config      animation.Config
	level       attitude.Level
	celebrating bool
	detach      []func()
	ctx         context.Context
	cancel      context.CancelFunc
}

// New attaches a presenter to scores and draws the initial state.
func New(surface Surface, scores Scores, config animation.Config, picker *judgment.Picker) *Presenter {
	if picker == nil {
		picker = judgment.NewPicker(0)
	}
	ctx, cancel := context.WithCancel(context.Background())
	presenter := &Presenter{
		surface: surface,
		picker:  picker,
		mascot:  animation.New(config, surface.SetMascot),
		reason:  animation.New(config, surface.SetJudgment),
		remark:  animation.New(config, surface.SetRemark),
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
	}

	snapshot := scores.Snapshot()
	presenter.level = snapshot.Level
	surface.SetStatus(snapshot)
	surface.SetRemark(picker.ForLevel(snapshot.Level))
	presenter.mascot.StartMood(ctx, animation.Mood(snapshot.Level))

	presenter.mu.Lock()
	presenter.detach = []func(){
		scores.OnScoreChange(presenter.handleScore),
		scores.OnLevelChange(presenter.handleLevel),
	}
	presenter.mu.Unlock()
	return presenter
}

// Follow shows easter egg events until events is closed or Close is called.
// It blocks; run it in its own goroutine.
func (presenter *Presenter) Follow(events <-chan eggs.Event) {
	for {
		select {
		case <-presenter.ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			presenter.HandleEgg(event)
		}
	}
}

// HandleEgg shows one easter egg event.
func (presenter *Presenter) HandleEgg(event eggs.Event) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if presenter.ctx.Err() != nil {
		return
	}
	switch event.Kind {
	case eggs.EventTriggered:
		presenter.celebrating = true
		presenter.mascot.StartCelebration(presenter.ctx, animation.Celebration(event.Type), event.Duration)
		presenter.reason.StartEggTypewriter(presenter.ctx, event.Message)
	case eggs.EventCleared:
		presenter.celebrating = false
		presenter.mascot.StartMood(presenter.ctx, animation.Mood(presenter.level))
	}
}

// UpdateConfig applies new animation settings, such as reduced motion.
func (presenter *Presenter) UpdateConfig(config animation.Config) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.config = config
	presenter.mascot.UpdateConfig(config)
	presenter.reason.UpdateConfig(config)
	presenter.remark.UpdateConfig(config)
	if !presenter.celebrating && presenter.ctx.Err() == nil {
		presenter.mascot.StartMood(presenter.ctx, animation.Mood(presenter.level))
	}
}

// Celebrating reports whether an easter egg is on screen.
func (presenter *Presenter) Celebrating() bool {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	return presenter.celebrating
}

// Close detaches from the score engine and stops every animation.
func (presenter *Presenter) Close() {
	presenter.mu.Lock()
	detach := presenter.detach
	presenter.detach = nil
	presenter.mu.Unlock()

	for _, unsubscribe := range detach {
		unsubscribe()
	}
	presenter.cancel()
	presenter.mascot.Stop()
	presenter.reason.Stop()
	presenter.remark.Stop()
}

func (presenter *Presenter) handleScore(event attitude.ScoreChangeEvent) {
	presenter.surface.SetStatus(attitude.Snapshot{Score: event.Score, Level: event.Level})

	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	if presenter.celebrating || presenter.ctx.Err() != nil || event.Reason == "" {
		return
	}
	presenter.reason.StartTypewriter(presenter.ctx, event.Reason)
}

func (presenter *Presenter) handleLevel(event attitude.LevelChangeEvent) {
	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	presenter.level = event.Level
	if presenter.ctx.Err() != nil {
		return
	}
	presenter.remark.StartTypewriter(presenter.ctx, presenter.picker.ForLevel(event.Level))
	if presenter.celebrating {
		return
	}
	presenter.mascot.StartReaction(presenter.ctx, animation.Reaction(event.Level),
		presenter.config.ReactionDuration, animation.Mood(event.Level))
}
