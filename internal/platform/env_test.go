package platform

import (
	"reflect"
	"testing"
	"time"

	"judgy/internal/core/model"
)

func TestApplyEnvOverridesOnlySetVariables(t *testing.T) {
	t.Setenv("JUDGY_IDLE_WARN", "3s")
	t.Setenv("JUDGY_CLICK_SPAM_COUNT", "5")
	t.Setenv("JUDGY_CLICK_NON_INTERACTIVE_TAGS", "DIV,IMG")
	t.Setenv("JUDGY_SCROLL_FAST_SPEED", "2.5")
	t.Setenv("JUDGY_EGGS_SECRET_COMBO", "TASTY")

	config := model.Default()
	if err := ApplyEnv(&config); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	defaults := model.Default()
	if config.Idle.Warn != 3*time.Second {
		t.Errorf("idle warn = %v", config.Idle.Warn)
	}
	if config.Idle.Penalty != defaults.Idle.Penalty {
		t.Errorf("unset idle penalty changed to %v", config.Idle.Penalty)
	}
	if config.Click.SpamCount != 5 {
		t.Errorf("spam count = %d", config.Click.SpamCount)
	}
	if !reflect.DeepEqual(config.Click.NonInteractiveTags, []string{"DIV", "IMG"}) {
		t.Errorf("tags = %v", config.Click.NonInteractiveTags)
	}
	if config.Scroll.FastSpeed != 2.5 {
		t.Errorf("fast speed = %v", config.Scroll.FastSpeed)
	}
	if config.Eggs.SecretCombo != "TASTY" {
		t.Errorf("combo = %q", config.Eggs.SecretCombo)
	}
}

func TestApplyEnvReportsBadValues(t *testing.T) {
	t.Setenv("JUDGY_IDLE_PENALTY", "forever")

	config := model.Default()
	if err := ApplyEnv(&config); err == nil {
		t.Fatal("expected an error for an unparsable duration")
	}
}

func TestParseLaunchOptions(t *testing.T) {
	t.Setenv("JUDGY_MUTE", "true")
	t.Setenv("JUDGY_CONFIG", "/tmp/judgy.yaml")

	options, err := ParseLaunchOptions()
	if err != nil {
		t.Fatalf("ParseLaunchOptions: %v", err)
	}
	if !options.Mute || options.ConfigPath != "/tmp/judgy.yaml" || options.ReduceMotion {
		t.Errorf("options = %+v", options)
	}
}
