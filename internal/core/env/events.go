// Package env describes the interaction events the core consumes and
// provides Bus, an in-process event source that front ends feed.
package env

import "time"

// ActivityKind names a user-presence signal.
type ActivityKind string

const (
	ActivityPointerMove ActivityKind = "pointer_move"
	ActivityPointerDown ActivityKind = "pointer_down"
	ActivityKeyDown     ActivityKind = "key_down"
	ActivityTouchStart  ActivityKind = "touch_start"
)

// ActivityEvent is any pointer, key or touch presence signal.
type ActivityEvent struct {
	Kind ActivityKind
	At   time.Time
}

// ScrollEvent reports the scroll position of the observed document.
// All lengths are in pixels.
type ScrollEvent struct {
	Y              float64
	ViewportHeight float64
	ContentHeight  float64
	At             time.Time
}

// Depth returns how far through the scrollable range Y is, clamped to [0, 1].
// A document that cannot scroll has depth 0.
func (event ScrollEvent) Depth() float64 {
	scrollable := event.ContentHeight - event.ViewportHeight
	if scrollable <= 0 {
		return 0
	}
	depth := event.Y / scrollable
	if depth < 0 {
		return 0
	}
	if depth > 1 {
		return 1
	}
	return depth
}

// AtBottom reports whether the viewport touches the end of the content,
// allowing two pixels of rounding slack.
func (event ScrollEvent) AtBottom() bool {
	return event.Y+event.ViewportHeight >= event.ContentHeight-2
}

// ClickEvent is a completed click. Target may be nil.
type ClickEvent struct {
	Target *Target
	At     time.Time
}

// KeyEvent is a key press. Key holds the key's text ("a", "Enter", ...).
type KeyEvent struct {
	Key string
	At  time.Time
}

// VisibilityEvent reports the document becoming hidden or visible.
type VisibilityEvent struct {
	Hidden bool
	At     time.Time
}

// ResizeEvent reports a new viewport size.
type ResizeEvent struct {
	Width  float64
	Height float64
	At     time.Time
}
