package session

import (
	"testing"
	"time"

	"judgy/internal/core/attitude"
	"judgy/internal/core/clock"
	"judgy/internal/core/eggs"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func newSession(t *testing.T, opts ...Option) (*Session, *clock.Manual, *env.Bus) {
	t.Helper()
	clk := clock.NewManual(epoch)
	bus := env.NewBus(clk.Now)
	session := New(clk, bus, model.Default(), opts...)
	t.Cleanup(session.Close)
	return session, clk, bus
}

func politeClick(clk *clock.Manual, bus *env.Bus) {
	clk.Advance(1300 * time.Millisecond)
	bus.PointerDown()
	bus.Click(env.NewTarget("BUTTON"))
}

func TestPoliteReaderEarnsRespectAndClickMaster(t *testing.T) {
	session, clk, bus := newSession(t)
	events := session.Eggs.Subscribe(16)

	var levels []attitude.LevelChangeEvent
	session.Engine.OnLevelChange(func(event attitude.LevelChangeEvent) {
		levels = append(levels, event)
	})

	if level := session.Snapshot().Level; level != attitude.LevelDisappointed {
		t.Fatalf("fresh session level = %s", level)
	}

	session.Start()
	for i := 0; i < 10; i++ {
		politeClick(clk, bus)
	}

	snapshot := session.Snapshot()
	if snapshot.Score != 10 || snapshot.Level != attitude.LevelRespectful {
		t.Errorf("snapshot = %+v, want 10 Respectful", snapshot)
	}
	if len(levels) != 2 || levels[0].Level != attitude.LevelNeutral || levels[1].Level != attitude.LevelRespectful {
		t.Errorf("level changes = %+v", levels)
	}

	select {
	case event := <-events:
		if event.Kind != eggs.EventTriggered || event.Type != eggs.TypeClickMaster {
			t.Errorf("first egg event = %+v", event)
		}
	default:
		t.Error("click master did not trigger")
	}
}

func TestPauseStopsScoringButKeepsScore(t *testing.T) {
	session, clk, bus := newSession(t)
	session.Start()
	bus.SetHidden(true)
	if score := session.Engine.Score(); score != -3 {
		t.Fatalf("score = %d, want -3", score)
	}

	session.Pause()
	if !session.Paused() {
		t.Fatal("session not paused")
	}
	bus.SetHidden(false)
	bus.SetHidden(true)
	clk.Advance(time.Minute)
	if score := session.Engine.Score(); score != -3 {
		t.Errorf("paused session scored: %d", score)
	}

	session.Resume()
	bus.SetHidden(false)
	bus.SetHidden(true)
	if score := session.Engine.Score(); score != -6 {
		t.Errorf("resumed session score = %d, want -6", score)
	}
}

func TestSpamAndIdleTogether(t *testing.T) {
	session, clk, bus := newSession(t)
	session.Start()

	section := env.NewTarget("SECTION")
	for i := 0; i < 9; i++ {
		clk.Advance(100 * time.Millisecond)
		bus.Click(section)
	}
	if score := session.Engine.Score(); score != -2 {
		t.Fatalf("score after spam = %d, want -2", score)
	}

	clk.Advance(21 * time.Second)
	if score := session.Engine.Score(); score != -5 {
		t.Errorf("score after idling = %d, want -5", score)
	}
	if level := session.Engine.Level(); level != attitude.LevelDisappointed {
		t.Errorf("level = %s, want Disappointed", level)
	}
}

func TestResizeRuleOption(t *testing.T) {
	session, _, bus := newSession(t, WithResizeRule(func(event env.ResizeEvent, count int) (int, string, bool) {
		return -1, "Window gymnastics", event.Width < 400
	}))
	session.Start()

	bus.Resize(1200, 800)
	bus.Resize(320, 800)
	if score := session.Engine.Score(); score != -1 {
		t.Errorf("score = %d, want -1", score)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	first, _, firstBus := newSession(t)
	second, _, _ := newSession(t)
	first.Start()
	second.Start()

	firstBus.SetHidden(true)
	if first.Engine.Score() != -3 || second.Engine.Score() != 0 {
		t.Errorf("scores = %d, %d; want -3, 0", first.Engine.Score(), second.Engine.Score())
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	session, clk, bus := newSession(t)
	session.Start()

	session.Close()
	session.Close()
	session.Start()

	if bus.Listeners() != 0 {
		t.Errorf("listeners after close = %d", bus.Listeners())
	}
	if clk.Pending() != 0 {
		t.Errorf("timers after close = %d", clk.Pending())
	}
	for _, detector := range session.Behavior.Modules() {
		if detector.Running() {
			t.Errorf("%T still running", detector)
		}
	}
}
