package preferences

import (
	"reflect"
	"testing"
	"time"
)

func TestApplyForm(t *testing.T) {
	tests := []struct {
		name   string
		values formValues
		check  func(t *testing.T, settings Settings)
	}{
		{
			name: "valid values",
			values: formValues{
				idleWarn:    "3",
				idlePenalty: "12.5",
				spamCount:   "5",
				spamWindow:  "1500",
				fastSpeed:   "2",
				eggDuration: "4",
				secretCombo: " tasty ",
			},
			check: func(t *testing.T, settings Settings) {
				tuning := settings.Tuning
				if tuning.Idle.Warn != 3*time.Second || tuning.Idle.Penalty != 12500*time.Millisecond {
					t.Errorf("idle = %+v", tuning.Idle)
				}
				if tuning.Click.SpamCount != 5 || tuning.Click.Window != 1500*time.Millisecond {
					t.Errorf("click = %+v", tuning.Click)
				}
				if tuning.Scroll.FastSpeed != 2 {
					t.Errorf("fast speed = %v", tuning.Scroll.FastSpeed)
				}
				if tuning.Eggs.EggDuration != 4*time.Second || tuning.Eggs.SecretCombo != "TASTY" {
					t.Errorf("eggs = %+v", tuning.Eggs)
				}
			},
		},
		{
			name: "invalid values keep defaults",
			values: formValues{
				idleWarn:    "soon",
				idlePenalty: "-1",
				spamCount:   "0",
				spamWindow:  "",
				fastSpeed:   "fast",
				secretCombo: "   ",
			},
			check: func(t *testing.T, settings Settings) {
				if !reflect.DeepEqual(settings.Tuning, DefaultSettings().Tuning) {
					t.Errorf("tuning changed: %+v", settings.Tuning)
				}
			},
		},
		{
			name:   "long warn stretches warn window",
			values: formValues{idleWarn: "15"},
			check: func(t *testing.T, settings Settings) {
				if settings.Tuning.Idle.WarnMax != 30*time.Second {
					t.Errorf("warn max = %v, want 30s", settings.Tuning.Idle.WarnMax)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.check(t, applyForm(DefaultSettings(), test.values))
		})
	}
}
