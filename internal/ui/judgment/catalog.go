// Package judgment holds the lines the mascot says about the reader.
package judgment

import (
	"math/rand"
	"sync"
	"time"

	"judgy/internal/core/attitude"
)

// Category groups judgment lines by what provoked them.
type Category string

const (
	CategoryScroll   Category = "scroll"
	CategoryClick    Category = "click"
	CategoryIdle     Category = "idle"
	CategoryTab      Category = "tab"
	CategoryEndState Category = "endState"
	CategorySecret   Category = "secret"
)

// DefaultCategory is used when a category is unknown or empty.
const DefaultCategory = CategoryScroll

// Silence is shown instead of a line once the judge is done with you.
const Silence = "..."

var lines = map[Category][]string{
	CategoryScroll: {
		"That was fast.",
		"You skimmed.",
		"Impressive confidence.",
		"Handle that scrollbar like a pro.",
	},
	CategoryClick: {
		"That wasn't interactive.",
		"Interesting choice.",
		"You're guessing.",
		"Polite clicks never go unnoticed.",
		"Click with purpose.",
		"Every click counts.",
		"Careful where you click.",
	},
	CategoryIdle: {
		"Still here?",
		"I'll wait.",
		"Any moment now.",
		"Blinking cursor is still watching.",
		"Thinking is good.",
		"Did you step away?",
		"Lost in thought?",
		"I'm patient, but not forever.",
	},
	CategoryTab: {
		"Welcome back.",
		"That didn't take long.",
		"As expected.",
		"Two tabs but only one focus?",
		"Multitasking, are we?",
		"I see you switched tabs.",
		"Don't worry, I'll be here when you return.",
	},
	CategoryEndState: {
		"I've adjusted my expectations.",
		"We're done pretending.",
		"It's fine.",
		"Let's call it a day.",
	},
	CategorySecret: {
		"Wow, look at you behaving!",
		"You're making me proud.",
		"Exceptional patience detected.",
		"Respectful scrolls only.",
	},
}

var levelCategories = map[attitude.Level]Category{
	attitude.LevelRespectful:   CategorySecret,
	attitude.LevelDoneWithYou:  CategoryEndState,
	attitude.LevelJudgy:        CategoryClick,
	attitude.LevelDisappointed: CategoryIdle,
	attitude.LevelNeutral:      CategoryScroll,
}

// Categories lists every category in display order.
var Categories = []Category{
	CategoryScroll,
	CategoryClick,
	CategoryIdle,
	CategoryTab,
	CategoryEndState,
	CategorySecret,
}

// Lines returns a copy of the lines in category, or nil if it is unknown.
func Lines(category Category) []string {
	bucket := lines[category]
	if len(bucket) == 0 {
		return nil
	}
	return append([]string(nil), bucket...)
}

// CategoryForLevel maps a level onto the category its lines come from.
// Unknown levels use the Neutral category.
func CategoryForLevel(level attitude.Level) Category {
	if category, ok := levelCategories[level]; ok {
		return category
	}
	return levelCategories[attitude.LevelNeutral]
}

// Picker draws random lines. It is safe for concurrent use.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker creates a picker seeded with seed. A zero seed uses the clock.
func NewPicker(seed int64) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Picker{rng: rand.New(rand.NewSource(seed))}
}

// Random returns a line from category, falling back to DefaultCategory.
func (picker *Picker) Random(category Category) string {
	bucket := lines[category]
	if len(bucket) == 0 {
		bucket = lines[DefaultCategory]
	}
	picker.mu.Lock()
	index := picker.rng.Intn(len(bucket))
	picker.mu.Unlock()
	return bucket[index]
}

// ForLevel returns the line shown when the judge settles into level.
func (picker *Picker) ForLevel(level attitude.Level) string {
	if level == attitude.LevelDoneWithYou {
		return Silence
	}
	return picker.Random(CategoryForLevel(level))
}
