package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestManualAfterFuncFiresOnceAtDueTime(t *testing.T) {
	clk := NewManual(epoch)
	var firedAt []time.Time
	clk.AfterFunc(500*time.Millisecond, func() {
		firedAt = append(firedAt, clk.Now())
	})

	clk.Advance(499 * time.Millisecond)
	if len(firedAt) != 0 {
		t.Fatalf("fired early: %v", firedAt)
	}

	clk.Advance(2 * time.Second)
	if len(firedAt) != 1 {
		t.Fatalf("expected one fire, got %d", len(firedAt))
	}
	if want := epoch.Add(500 * time.Millisecond); !firedAt[0].Equal(want) {
		t.Errorf("fired at %v, want %v", firedAt[0], want)
	}
	if got, want := clk.Now(), epoch.Add(2499*time.Millisecond); !got.Equal(want) {
		t.Errorf("now = %v, want %v", got, want)
	}
	if clk.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", clk.Pending())
	}
}

func TestManualEveryRepeatsUntilStopped(t *testing.T) {
	clk := NewManual(epoch)
	ticks := 0
	timer := clk.Every(time.Second, func() { ticks++ })

	clk.Advance(3500 * time.Millisecond)
	if ticks != 3 {
		t.Fatalf("ticks = %d, want 3", ticks)
	}

	if !timer.Stop() {
		t.Error("first Stop should report an active timer")
	}
	if timer.Stop() {
		t.Error("second Stop should report an inactive timer")
	}

	clk.Advance(5 * time.Second)
	if ticks != 3 {
		t.Errorf("ticks after stop = %d, want 3", ticks)
	}
}

func TestManualFiresInDueOrder(t *testing.T) {
	clk := NewManual(epoch)
	var order []string
	clk.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	clk.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	clk.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })

	clk.Advance(time.Second)

	if got := len(order); got != 3 {
		t.Fatalf("fired %d timers, want 3", got)
	}
	for i, want := range []string{"a", "b", "c"} {
		if order[i] != want {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want)
		}
	}
}

func TestManualCallbackMayScheduleAndStop(t *testing.T) {
	clk := NewManual(epoch)
	fired := 0
	var second Timer
	clk.AfterFunc(time.Second, func() {
		fired++
		second = clk.AfterFunc(time.Second, func() { fired++ })
	})
	clk.Advance(1500 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	second.Stop()
	clk.Advance(5 * time.Second)
	if fired != 1 {
		t.Errorf("stopped timer fired, count = %d", fired)
	}
}

func TestManualSetBackwardsDoesNotFire(t *testing.T) {
	clk := NewManual(epoch)
	fired := false
	clk.AfterFunc(time.Second, func() { fired = true })
	clk.Set(epoch.Add(-time.Minute))
	if fired {
		t.Error("moving backwards must not fire timers")
	}
	clk.Set(epoch.Add(time.Minute))
	if !fired {
		t.Error("moving forward past due must fire")
	}
}
