package animation

import (
	"time"

	"judgy/internal/core/attitude"
	"judgy/internal/core/eggs"
)

// DefaultConfig returns the mascot timing defaults.
func DefaultConfig() Config {
	return Config{
		BlinkClosedDuration: Range{
			Min: 150 * time.Millisecond,
			Max: 200 * time.Millisecond,
		},
		BlinkOpenDuration: Range{
			Min: 150 * time.Millisecond,
			Max: 200 * time.Millisecond,
		},
		BlinkInterval: Range{
			Min: 3 * time.Second,
			Max: 8 * time.Second,
		},
		DoubleBlinkChance: 0.12,
		DoubleBlinkGap: Range{
			Min: 50 * time.Millisecond,
			Max: 100 * time.Millisecond,
		},
		FrameDuration: Range{
			Min: 180 * time.Millisecond,
			Max: 260 * time.Millisecond,
		},
		ReactionDuration: 600 * time.Millisecond,
		TypeDelay:        24 * time.Millisecond,
		EggTypeDelay:     20 * time.Millisecond,
	}
}

var moods = map[attitude.Level]MoodSpec{
	attitude.LevelRespectful:   {Open: "(^_^)", Blink: "(-_-)"},
	attitude.LevelNeutral:      {Open: "(o_o)", Blink: "(-_-)"},
	attitude.LevelDisappointed: {Open: "(._.)", Blink: "(-.-)"},
	attitude.LevelJudgy:        {Open: "(¬_¬)", Blink: "(-_-)"},
	attitude.LevelDoneWithYou:  {Open: "(u_u)", Blink: "(-_-)"},
}

var (
	dance = CelebrationSpec{
		Name:   "dance",
		Frames: []string{`\(^o^)/`, `(^o^)`, `/(^o^)\`, `(^o^)`},
		Final:  "(^_^)",
	}
	wave = CelebrationSpec{
		Name:   "wave",
		Frames: []string{"(^_^)/", "(^_^)-", "(^_^)/", "(^_^)"},
	}
	wink = CelebrationSpec{
		Name:   "wink",
		Frames: []string{"(^_-)", "(^_^)"},
	}
	spark = CelebrationSpec{
		Name:   "spark",
		Frames: []string{"*(^_^)*", "+(^_^)+", "*(^_^)*", "(^_^)"},
	}
	finale = CelebrationSpec{
		Name:   "finale",
		Frames: append(append([]string(nil), dance.Frames...), spark.Frames...),
		Final:  `\(^o^)/`,
	}
)

var celebrations = map[eggs.Type]CelebrationSpec{
	eggs.TypeHighScore:     dance,
	eggs.TypePerfectScroll: wave,
	eggs.TypeKeyCombo:      wink,
	eggs.TypeClickMaster:   spark,
	eggs.TypeSuper:         finale,
}

// Mood returns the face for level. Unknown levels look Neutral.
func Mood(level attitude.Level) MoodSpec {
	if spec, ok := moods[level]; ok {
		return spec
	}
	return moods[attitude.LevelNeutral]
}

// Celebration returns the sequence for an easter egg type. Unknown types
// wave.
func Celebration(eggType eggs.Type) CelebrationSpec {
	if spec, ok := celebrations[eggType]; ok {
		return spec
	}
	return wave
}

// Reaction returns the short animation played when the judge moves into
// level: a shake when things get worse, a pop when it gives up, a bounce
// otherwise.
func Reaction(level attitude.Level) CelebrationSpec {
	open := Mood(level).Open
	switch level {
	case attitude.LevelDisappointed, attitude.LevelJudgy:
		return CelebrationSpec{Name: "shake", Frames: []string{open + " ", " " + open}}
	case attitude.LevelDoneWithYou:
		return CelebrationSpec{Name: "pop", Frames: []string{"(O_O)", open}}
	default:
		return CelebrationSpec{Name: "bounce", Frames: []string{`\` + open + "/", open}}
	}
}
