package tray

import (
	"testing"

	"judgy/internal/core/attitude"
)

func TestStatusFollowsSnapshotAndPause(t *testing.T) {
	manager := New(nil, Callbacks{})
	if got := manager.Status(); got != "Mood: Disappointed (0)" {
		t.Errorf("initial status = %q", got)
	}

	manager.SetStatus(attitude.Snapshot{Score: 6, Level: attitude.LevelRespectful})
	if got := manager.Status(); got != "Mood: Respectful (6)" {
		t.Errorf("status = %q", got)
	}

	manager.SetPaused(true)
	if got := manager.Status(); got != "Mood: Respectful (6), not judging" {
		t.Errorf("paused status = %q", got)
	}
	if manager.pauseItem.Label != "Resume judging" {
		t.Errorf("pause item = %q", manager.pauseItem.Label)
	}
}

func TestMenuItemsCallBack(t *testing.T) {
	var calls []string
	record := func(name string) func() {
		return func() { calls = append(calls, name) }
	}
	manager := New(nil, Callbacks{
		OnPreferences: record("preferences"),
		OnTogglePause: record("pause"),
		OnResetScore:  record("score"),
		OnResetEggs:   record("eggs"),
		OnToggleLogin: record("login"),
		OnQuit:        record("quit"),
	})

	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}
	want := []string{"preferences", "pause", "score", "eggs", "login", "quit"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestLoginItemIsChecked(t *testing.T) {
	manager := New(nil, Callbacks{})
	if manager.loginItem.Checked {
		t.Fatal("login item checked by default")
	}
	manager.SetLaunchAtLogin(true)
	if !manager.loginItem.Checked {
		t.Error("login item not checked")
	}
}

func TestMissingCallbacksAreIgnored(t *testing.T) {
	manager := New(nil, Callbacks{})
	for _, item := range manager.Menu().Items {
		if item.Action != nil {
			item.Action()
		}
	}
}
