package animation

// MoodSpec is the mascot face for one level, eyes open and mid-blink.
type MoodSpec struct {
	Open  string
	Blink string
}

// CelebrationSpec is a looping frame sequence played while an easter egg
// is on screen. Final is shown when the sequence runs out; empty keeps the
// last frame.
type CelebrationSpec struct {
	Name   string
	Frames []string
	Final  string
}

func (spec CelebrationSpec) first() string {
	if len(spec.Frames) == 0 {
		return spec.Final
	}
	return spec.Frames[0]
}
