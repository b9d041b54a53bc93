package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"judgy/internal/ui/preferences"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	if !reflect.DeepEqual(settings, preferences.DefaultSettings()) {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "judgy", settingsFileName)

	settings := preferences.DefaultSettings()
	settings.Tuning.Idle.Warn = 3 * time.Second
	settings.Tuning.Click.InteractiveRewardDelta = 0
	settings.Tuning.Click.NonInteractiveTags = []string{"DIV", "IMG"}
	settings.Tuning.Eggs.SecretCombo = "TASTY"
	settings.ReduceMotion = true
	settings.OverlayOpacity = 0.9
	settings.LaunchAtLogin = true

	if err := SaveSettingsFile(path, settings); err != nil {
		t.Fatalf("SaveSettingsFile: %v", err)
	}
	loaded, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	if !reflect.DeepEqual(loaded, settings) {
		t.Errorf("loaded = %+v\nwant     %+v", loaded, settings)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := []byte("idle_warn_ms: 2500\nclick_spam_count: -4\nsecret_combo: \" yum \"\noverlay_opacity: 2\nperfect_scroll_depth: 1.5\nnon_interactive_tags: [\" img \", \"\"]\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	defaults := preferences.DefaultSettings()

	if settings.Tuning.Idle.Warn != 2500*time.Millisecond {
		t.Errorf("idle warn = %v", settings.Tuning.Idle.Warn)
	}
	if settings.Tuning.Click.SpamCount != defaults.Tuning.Click.SpamCount {
		t.Errorf("negative spam count applied: %d", settings.Tuning.Click.SpamCount)
	}
	if settings.Tuning.Click.InteractiveRewardDelta != defaults.Tuning.Click.InteractiveRewardDelta {
		t.Errorf("absent reward delta changed: %d", settings.Tuning.Click.InteractiveRewardDelta)
	}
	if settings.Tuning.Eggs.SecretCombo != "YUM" {
		t.Errorf("combo = %q", settings.Tuning.Eggs.SecretCombo)
	}
	if settings.OverlayOpacity != defaults.OverlayOpacity {
		t.Errorf("out of range opacity applied: %v", settings.OverlayOpacity)
	}
	if settings.Tuning.Eggs.PerfectScrollDepth != defaults.Tuning.Eggs.PerfectScrollDepth {
		t.Errorf("out of range depth applied: %v", settings.Tuning.Eggs.PerfectScrollDepth)
	}
	if !reflect.DeepEqual(settings.Tuning.Click.NonInteractiveTags, []string{"IMG"}) {
		t.Errorf("tags = %v", settings.Tuning.Click.NonInteractiveTags)
	}
}

func TestLoadRejectsBrokenYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	if err := os.WriteFile(path, []byte("idle_warn_ms: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettingsFile(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !reflect.DeepEqual(settings, preferences.DefaultSettings()) {
		t.Errorf("broken file should still yield defaults")
	}
}

func TestEmptyTagListMeansNoPenalisedTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)

	settings := preferences.DefaultSettings()
	settings.Tuning.Click.NonInteractiveTags = []string{}
	if err := SaveSettingsFile(path, settings); err != nil {
		t.Fatalf("SaveSettingsFile: %v", err)
	}
	loaded, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	if tags := loaded.Tuning.Click.NonInteractiveTags; tags == nil || len(tags) != 0 {
		t.Errorf("saved empty list loaded as %#v", tags)
	}

	if err := os.WriteFile(path, []byte("non_interactive_tags: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err = LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	if tags := loaded.Tuning.Click.NonInteractiveTags; tags == nil || len(tags) != 0 {
		t.Errorf("written empty list loaded as %#v", tags)
	}

	if err := os.WriteFile(path, []byte("idle_warn_ms: 2500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err = LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	defaults := preferences.DefaultSettings()
	if !reflect.DeepEqual(loaded.Tuning.Click.NonInteractiveTags, defaults.Tuning.Click.NonInteractiveTags) {
		t.Errorf("absent list = %v, want defaults", loaded.Tuning.Click.NonInteractiveTags)
	}
}
