package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"judgy/internal/core/eggs"
)

const sampleRate = beep.SampleRate(44100)

// Note is one tone of a chime. A zero frequency is a rest.
type Note struct {
	Frequency float64
	Length    time.Duration
}

var melodies = map[eggs.Type][]Note{
	eggs.TypeHighScore:     {{523.25, 90 * time.Millisecond}, {659.25, 90 * time.Millisecond}, {783.99, 160 * time.Millisecond}},
	eggs.TypePerfectScroll: {{659.25, 80 * time.Millisecond}, {0, 40 * time.Millisecond}, {659.25, 140 * time.Millisecond}},
	eggs.TypeClickMaster:   {{880, 60 * time.Millisecond}, {987.77, 60 * time.Millisecond}, {1046.5, 120 * time.Millisecond}},
	eggs.TypeKeyCombo:      {{392, 100 * time.Millisecond}, {523.25, 160 * time.Millisecond}},
	eggs.TypeSuper: {
		{523.25, 90 * time.Millisecond}, {659.25, 90 * time.Millisecond}, {783.99, 90 * time.Millisecond},
		{0, 60 * time.Millisecond}, {1046.5, 260 * time.Millisecond},
	},
}

// Melody returns the notes played for an easter egg type.
func Melody(eggType eggs.Type) []Note {
	notes, ok := melodies[eggType]
	if !ok {
		notes = melodies[eggs.TypePerfectScroll]
	}
	return append([]Note(nil), notes...)
}

// Chime plays a short tune when an easter egg fires. The zero value and a
// Chime whose speaker failed to start stay silent.
type Chime struct {
	mu    sync.Mutex
	ready bool
}

// NewChime returns a silent chime; call Init to open the speaker.
func NewChime() *Chime {
	return &Chime{}
}

// Init opens the speaker.
func (chime *Chime) Init() error {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	if chime.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	chime.ready = true
	return nil
}

// Play starts the tune for eggType without waiting for it to finish.
func (chime *Chime) Play(eggType eggs.Type) {
	if chime == nil {
		return
	}
	chime.mu.Lock()
	ready := chime.ready
	chime.mu.Unlock()
	if !ready {
		return
	}
	tune, err := tuneStreamer(Melody(eggType))
	if err != nil {
		return
	}
	speaker.Play(tune)
}

// Close releases the speaker.
func (chime *Chime) Close() {
	if chime == nil {
		return
	}
	chime.mu.Lock()
	defer chime.mu.Unlock()
	if !chime.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	chime.ready = false
}

func tuneStreamer(notes []Note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, note := range notes {
		samples := sampleRate.N(note.Length)
		if note.Frequency <= 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sampleRate, note.Frequency)
		if err != nil {
			return nil, fmt.Errorf("tone %.0f Hz: %w", note.Frequency, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return beep.Seq(parts...), nil
}
