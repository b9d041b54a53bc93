package attitude

// Level is the discrete mood derived from the score.
type Level string

const (
	LevelRespectful   Level = "Respectful"
	LevelNeutral      Level = "Neutral"
	LevelDisappointed Level = "Disappointed"
	LevelJudgy        Level = "Judgy"
	LevelDoneWithYou  Level = "Done With You"
)

// Levels lists every level from best to worst.
var Levels = []Level{
	LevelRespectful,
	LevelNeutral,
	LevelDisappointed,
	LevelJudgy,
	LevelDoneWithYou,
}

// LevelForScore maps a score onto its level. Thresholds are inclusive and
// checked top-down, so a score of 0 is Disappointed.
func LevelForScore(score int) Level {
	switch {
	case score >= 5:
		return LevelRespectful
	case score >= 1:
		return LevelNeutral
	case score >= -5:
		return LevelDisappointed
	case score >= -9:
		return LevelJudgy
	default:
		return LevelDoneWithYou
	}
}

// HookKind names an event kind for RegisterHook.
type HookKind string

const (
	HookScore HookKind = "score"
	HookLevel HookKind = "level"
)

// ScoreChangeEvent is published once for every ChangeScore or ResetScore call.
type ScoreChangeEvent struct {
	PreviousScore int
	Score         int
	Delta         int
	Reason        string
	Level         Level
}

// LevelChangeEvent is published only when the level actually changes.
type LevelChangeEvent struct {
	PreviousLevel Level
	Level         Level
	Score         int
	Reason        string
}

// Snapshot is the state returned by a mutation.
type Snapshot struct {
	Score int
	Level Level
}
