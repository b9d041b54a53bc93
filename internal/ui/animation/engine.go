package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	BlinkClosedDuration Range
	BlinkOpenDuration   Range
	BlinkInterval       Range
	DoubleBlinkChance   float64
	DoubleBlinkGap      Range

	FrameDuration    Range
	ReactionDuration time.Duration

	TypeDelay    time.Duration
	EggTypeDelay time.Duration

	// ReduceMotion renders every animation as its first still frame.
	ReduceMotion bool
}

// Engine drives one animated text slot, such as the mascot face or the
// judgment line. Starting a new animation cancels the running one.
type Engine struct {
	mu     sync.Mutex
	config Config
	render func(string)
	cancel context.CancelFunc
}

// New creates a new animation engine that draws through render.
func New(config Config, render func(string)) *Engine {
	if render == nil {
		render = func(string) {}
	}
	return &Engine{
		config: config,
		render: render,
	}
}

// UpdateConfig replaces the timing values for animations started later.
func (engine *Engine) UpdateConfig(config Config) {
	engine.mu.Lock()
	engine.config = config
	engine.mu.Unlock()
}

// StartMood shows a face and blinks it at random intervals until ctx ends.
func (engine *Engine) StartMood(ctx context.Context, mood MoodSpec) {
	config := engine.snapshotConfig()
	engine.start(ctx, func(runCtx context.Context, rng *rand.Rand) {
		engine.runMood(runCtx, rng, config, mood)
	})
}

// StartReaction plays a short reaction, then settles into mood.
func (engine *Engine) StartReaction(ctx context.Context, reaction CelebrationSpec, duration time.Duration, mood MoodSpec) {
	config := engine.snapshotConfig()
	engine.start(ctx, func(runCtx context.Context, rng *rand.Rand) {
		if !config.ReduceMotion && !engine.runFrames(runCtx, rng, config, reaction.Frames, duration) {
			return
		}
		engine.runMood(runCtx, rng, config, mood)
	})
}

// StartCelebration loops spec's frames for duration, then settles on its
// final frame.
func (engine *Engine) StartCelebration(ctx context.Context, spec CelebrationSpec, duration time.Duration) {
	config := engine.snapshotConfig()
	engine.start(ctx, func(runCtx context.Context, rng *rand.Rand) {
		if config.ReduceMotion || len(spec.Frames) == 0 {
			engine.render(spec.first())
			return
		}
		if !engine.runFrames(runCtx, rng, config, spec.Frames, duration) {
			return
		}
		if spec.Final != "" {
			engine.render(spec.Final)
		}
	})
}

// StartTypewriter reveals text one rune at a time.
func (engine *Engine) StartTypewriter(ctx context.Context, text string) {
	engine.typewrite(ctx, text, engine.snapshotConfig().TypeDelay)
}

// StartEggTypewriter reveals an easter egg message, slightly faster than
// ordinary judgments.
func (engine *Engine) StartEggTypewriter(ctx context.Context, text string) {
	engine.typewrite(ctx, text, engine.snapshotConfig().EggTypeDelay)
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) typewrite(ctx context.Context, text string, delay time.Duration) {
	reduce := engine.snapshotConfig().ReduceMotion
	engine.start(ctx, func(runCtx context.Context, rng *rand.Rand) {
		runes := []rune(text)
		if reduce || delay <= 0 || len(runes) == 0 {
			engine.render(text)
			return
		}
		for index := 1; index <= len(runes); index++ {
			engine.render(string(runes[:index]))
			if index == len(runes) {
				return
			}
			if !sleepWithContext(runCtx, delay) {
				return
			}
		}
	})
}

func (engine *Engine) runMood(ctx context.Context, rng *rand.Rand, config Config, mood MoodSpec) {
	engine.render(mood.Open)
	if config.ReduceMotion {
		return
	}
	for {
		if !sleepWithContext(ctx, config.BlinkInterval.Random(rng)) {
			return
		}
		if !engine.blink(ctx, rng, config, mood) {
			return
		}
		if rng.Float64() <= config.DoubleBlinkChance {
			if !sleepWithContext(ctx, config.DoubleBlinkGap.Random(rng)) {
				return
			}
			if !engine.blink(ctx, rng, config, mood) {
				return
			}
		}
	}
}

// runFrames cycles frames until duration has passed. It reports false if
// ctx ended first.
func (engine *Engine) runFrames(ctx context.Context, rng *rand.Rand, config Config, frames []string, duration time.Duration) bool {
	if len(frames) == 0 {
		return true
	}
	deadline := time.Now().Add(duration)
	for index := 0; time.Now().Before(deadline); index++ {
		engine.render(frames[index%len(frames)])
		if !sleepWithContext(ctx, config.FrameDuration.Random(rng)) {
			return false
		}
	}
	return true
}

func (engine *Engine) blink(ctx context.Context, rng *rand.Rand, config Config, mood MoodSpec) bool {
	engine.render(mood.Blink)
	if !sleepWithContext(ctx, config.BlinkClosedDuration.Random(rng)) {
		return false
	}
	engine.render(mood.Open)
	return sleepWithContext(ctx, config.BlinkOpenDuration.Random(rng))
}

func (engine *Engine) snapshotConfig() Config {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.config
}

// start runs one animation in its own goroutine with its own random source.
func (engine *Engine) start(parent context.Context, run func(context.Context, *rand.Rand)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
