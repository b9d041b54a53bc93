package eggs

import (
	"math"
	"strings"
	"time"

	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

// highScoreThreshold is the score a reader must hold for the high-score egg.
const highScoreThreshold = 5

// State is the trigger bookkeeping as a pure reducer. It never reads a
// clock or schedules work: every input carries its own timestamp and every
// method returns the triggers that fired, in firing order.
//
// Transitions:
//
//	HighScore      armed -> cooling -> armed (cooldown expiry or negative delta)
//	PerfectScroll  armed -> spent
//	ClickMaster    armed -> spent
//	KeyCombo       armed -> cooling -> armed (cooldown expiry)
//	Super          armed -> spent -> armed (negative delta)
type State struct {
	config   model.EasterEggConfig
	secret   string
	triggers map[Type]Record

	highScoreStartAt time.Time
	lastNegativeAt   time.Time

	slowScrollStartAt time.Time
	lastScrollY       float64
	lastScrollAt      time.Time

	clickStreak int
	comboBuffer string
}

// NewState creates bookkeeping with every trigger armed. now anchors the
// first scroll speed sample.
func NewState(config model.EasterEggConfig, now time.Time) *State {
	config = normalize(config)
	state := &State{
		config: config,
		secret: lettersOnly(config.SecretCombo),
	}
	state.Rearm(now)
	return state
}

func normalize(config model.EasterEggConfig) model.EasterEggConfig {
	defaults := model.DefaultEasterEggConfig()
	if config.PerfectScrollDepth <= 0 {
		config.PerfectScrollDepth = defaults.PerfectScrollDepth
	}
	if config.PerfectScrollDuration <= 0 {
		config.PerfectScrollDuration = defaults.PerfectScrollDuration
	}
	if config.SlowScrollSpeedThreshold <= 0 {
		config.SlowScrollSpeedThreshold = defaults.SlowScrollSpeedThreshold
	}
	if config.ClickStreakTarget <= 0 {
		config.ClickStreakTarget = defaults.ClickStreakTarget
	}
	if config.HighScoreWindow <= 0 {
		config.HighScoreWindow = defaults.HighScoreWindow
	}
	if config.HighScoreCooldown <= 0 {
		config.HighScoreCooldown = defaults.HighScoreCooldown
	}
	if config.ComboCooldown <= 0 {
		config.ComboCooldown = defaults.ComboCooldown
	}
	if config.EggDuration <= 0 {
		config.EggDuration = defaults.EggDuration
	}
	if config.CheckEvery <= 0 {
		config.CheckEvery = defaults.CheckEvery
	}
	if lettersOnly(config.SecretCombo) == "" {
		config.SecretCombo = defaults.SecretCombo
	}
	return config
}

func lettersOnly(value string) string {
	var builder strings.Builder
	for _, r := range strings.ToUpper(value) {
		if r >= 'A' && r <= 'Z' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// Config returns the normalised tuning.
func (state *State) Config() model.EasterEggConfig {
	return state.config
}

// Rearm clears every trigger and all accumulated progress.
func (state *State) Rearm(now time.Time) {
	state.triggers = make(map[Type]Record, len(Types))
	for _, t := range Types {
		state.triggers[t] = Record{Phase: PhaseArmed}
	}
	state.highScoreStartAt = time.Time{}
	state.lastNegativeAt = time.Time{}
	state.slowScrollStartAt = time.Time{}
	state.lastScrollY = 0
	state.lastScrollAt = now
	state.clickStreak = 0
	state.comboBuffer = ""
}

// Record returns the bookkeeping of trigger t.
func (state *State) Record(t Type) Record {
	return state.triggers[t]
}

// ClickStreak returns the current run of interactive clicks.
func (state *State) ClickStreak() int {
	return state.clickStreak
}

// ComboBuffer returns the trailing letters typed so far.
func (state *State) ComboBuffer() string {
	return state.comboBuffer
}

// Triggers returns a copy of every record.
func (state *State) Triggers() map[Type]Record {
	triggers := make(map[Type]Record, len(state.triggers))
	for t, record := range state.triggers {
		triggers[t] = record
	}
	return triggers
}

// Score applies a score change. A negative delta disarms the sustained
// high-score timer and clears HighScore and Super so both must be re-earned.
func (state *State) Score(now time.Time, score, delta int) []Type {
	if delta < 0 {
		state.lastNegativeAt = now
		state.highScoreStartAt = time.Time{}
		state.triggers[TypeHighScore] = Record{Phase: PhaseArmed}
		state.triggers[TypeSuper] = Record{Phase: PhaseArmed}
	}
	if score >= highScoreThreshold {
		if state.highScoreStartAt.IsZero() {
			state.highScoreStartAt = now
		}
	} else {
		state.highScoreStartAt = time.Time{}
	}
	return state.Check(now, score)
}

// Check re-evaluates the time-based HighScore condition and Super.
func (state *State) Check(now time.Time, score int) []Type {
	state.expire(now)

	var fired []Type
	high := state.triggers[TypeHighScore]
	if score >= highScoreThreshold && high.Phase == PhaseArmed {
		if state.highScoreStartAt.IsZero() {
			state.highScoreStartAt = now
		}
		window := state.config.HighScoreWindow
		if now.Sub(state.highScoreStartAt) >= window &&
			(state.lastNegativeAt.IsZero() || now.Sub(state.lastNegativeAt) >= window) {
			state.triggers[TypeHighScore] = Record{
				Phase:   PhaseCooling,
				FiredAt: now,
				Until:   now.Add(state.config.HighScoreCooldown),
			}
			fired = append(fired, TypeHighScore)
		}
	}
	return state.withSuper(now, fired)
}

// Scroll applies a scroll sample. PerfectScroll needs the reader deep in the
// document after scrolling slowly for the configured duration.
func (state *State) Scroll(event env.ScrollEvent) []Type {
	now := event.At
	state.expire(now)

	distance := math.Abs(event.Y - state.lastScrollY)
	elapsedMs := float64(now.Sub(state.lastScrollAt)) / float64(time.Millisecond)
	if elapsedMs < 1 {
		elapsedMs = 1
	}
	speed := distance / elapsedMs
	state.lastScrollY = event.Y
	state.lastScrollAt = now

	if speed <= state.config.SlowScrollSpeedThreshold {
		if state.slowScrollStartAt.IsZero() {
			state.slowScrollStartAt = now
		}
	} else {
		state.slowScrollStartAt = time.Time{}
	}

	var fired []Type
	if state.triggers[TypePerfectScroll].Phase == PhaseArmed &&
		event.Depth() >= state.config.PerfectScrollDepth &&
		!state.slowScrollStartAt.IsZero() &&
		now.Sub(state.slowScrollStartAt) >= state.config.PerfectScrollDuration {
		state.triggers[TypePerfectScroll] = Record{Phase: PhaseSpent, FiredAt: now}
		fired = append(fired, TypePerfectScroll)
	}
	return state.withSuper(now, fired)
}

// Click applies a click. Only interactive clicks extend the streak.
func (state *State) Click(now time.Time, interactive bool) []Type {
	state.expire(now)
	if !interactive {
		state.clickStreak = 0
		return nil
	}

	state.clickStreak++
	var fired []Type
	if state.triggers[TypeClickMaster].Phase == PhaseArmed && state.clickStreak >= state.config.ClickStreakTarget {
		state.triggers[TypeClickMaster] = Record{Phase: PhaseSpent, FiredAt: now}
		fired = append(fired, TypeClickMaster)
	}
	return state.withSuper(now, fired)
}

// Key applies a key press. Keys other than a single letter are ignored.
func (state *State) Key(now time.Time, key string) []Type {
	state.expire(now)
	letter := strings.ToUpper(key)
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		return nil
	}

	state.comboBuffer += letter
	if len(state.comboBuffer) > len(state.secret) {
		state.comboBuffer = state.comboBuffer[len(state.comboBuffer)-len(state.secret):]
	}

	var fired []Type
	if state.comboBuffer == state.secret && state.triggers[TypeKeyCombo].Phase == PhaseArmed {
		state.triggers[TypeKeyCombo] = Record{
			Phase:   PhaseCooling,
			FiredAt: now,
			Until:   now.Add(state.config.ComboCooldown),
		}
		fired = append(fired, TypeKeyCombo)
	}
	return state.withSuper(now, fired)
}

// expire returns cooled-down triggers to armed. HighScore re-arms once its
// cooldown is reached; KeyCombo only strictly after it.
func (state *State) expire(now time.Time) {
	if high := state.triggers[TypeHighScore]; high.Phase == PhaseCooling && !now.Before(high.Until) {
		state.triggers[TypeHighScore] = Record{Phase: PhaseArmed}
	}
	if combo := state.triggers[TypeKeyCombo]; combo.Phase == PhaseCooling && now.After(combo.Until) {
		state.triggers[TypeKeyCombo] = Record{Phase: PhaseArmed}
	}
}

func (state *State) withSuper(now time.Time, fired []Type) []Type {
	if state.triggers[TypeSuper].Phase != PhaseArmed {
		return fired
	}
	if state.triggers[TypeHighScore].Fired() &&
		state.triggers[TypeClickMaster].Fired() &&
		state.triggers[TypePerfectScroll].Fired() {
		state.triggers[TypeSuper] = Record{Phase: PhaseSpent, FiredAt: now}
		fired = append(fired, TypeSuper)
	}
	return fired
}
