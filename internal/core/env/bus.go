package env

import (
	"sync"
	"time"

	"judgy/internal/core/pubsub"
)

// Source delivers interaction events to subscribers. Every On* method
// returns an unsubscribe function.
type Source interface {
	OnActivity(handler func(ActivityEvent)) func()
	OnScroll(handler func(ScrollEvent)) func()
	OnClick(handler func(ClickEvent)) func()
	OnKey(handler func(KeyEvent)) func()
	OnVisibility(handler func(VisibilityEvent)) func()
	OnResize(handler func(ResizeEvent)) func()
}

// ScrollPositioner is implemented by sources that remember where the reader
// is, so a detector starting mid-document can measure from there.
type ScrollPositioner interface {
	ScrollPosition() (ScrollEvent, bool)
}

// Bus is the in-process Source. Front ends translate their native input into
// Bus calls; events without a timestamp are stamped with the bus clock.
type Bus struct {
	now func() time.Time

	activity   pubsub.Registry[ActivityEvent]
	scroll     pubsub.Registry[ScrollEvent]
	click      pubsub.Registry[ClickEvent]
	key        pubsub.Registry[KeyEvent]
	visibility pubsub.Registry[VisibilityEvent]
	resize     pubsub.Registry[ResizeEvent]

	positionMu  sync.Mutex
	position    ScrollEvent
	hasPosition bool
}

// NewBus creates a bus that stamps events using now. A nil now uses time.Now.
func NewBus(now func() time.Time) *Bus {
	if now == nil {
		now = time.Now
	}
	return &Bus{now: now}
}

func (bus *Bus) OnActivity(handler func(ActivityEvent)) func() { return bus.activity.Add(handler) }

func (bus *Bus) OnScroll(handler func(ScrollEvent)) func() { return bus.scroll.Add(handler) }

func (bus *Bus) OnClick(handler func(ClickEvent)) func() { return bus.click.Add(handler) }

func (bus *Bus) OnKey(handler func(KeyEvent)) func() { return bus.key.Add(handler) }

func (bus *Bus) OnVisibility(handler func(VisibilityEvent)) func() {
	return bus.visibility.Add(handler)
}

func (bus *Bus) OnResize(handler func(ResizeEvent)) func() { return bus.resize.Add(handler) }

// PointerMove publishes a pointer-move activity.
func (bus *Bus) PointerMove() {
	bus.Activity(ActivityEvent{Kind: ActivityPointerMove})
}

// PointerDown publishes a pointer-down activity.
func (bus *Bus) PointerDown() {
	bus.Activity(ActivityEvent{Kind: ActivityPointerDown})
}

// TouchStart publishes a touch-start activity.
func (bus *Bus) TouchStart() {
	bus.Activity(ActivityEvent{Kind: ActivityTouchStart})
}

// Activity publishes an activity event.
func (bus *Bus) Activity(event ActivityEvent) {
	if event.At.IsZero() {
		event.At = bus.now()
	}
	bus.activity.Publish(event)
}

// KeyDown publishes a key press. Key presses also count as activity.
func (bus *Bus) KeyDown(key string) {
	at := bus.now()
	bus.activity.Publish(ActivityEvent{Kind: ActivityKeyDown, At: at})
	bus.key.Publish(KeyEvent{Key: key, At: at})
}

// Scroll publishes a scroll position.
func (bus *Bus) Scroll(event ScrollEvent) {
	if event.At.IsZero() {
		event.At = bus.now()
	}
	bus.positionMu.Lock()
	bus.position, bus.hasPosition = event, true
	bus.positionMu.Unlock()
	bus.scroll.Publish(event)
}

// ScrollPosition returns the last published scroll position, whether or not
// anyone was listening.
func (bus *Bus) ScrollPosition() (ScrollEvent, bool) {
	bus.positionMu.Lock()
	defer bus.positionMu.Unlock()
	return bus.position, bus.hasPosition
}

// Click publishes a click on target, which may be nil.
func (bus *Bus) Click(target *Target) {
	bus.click.Publish(ClickEvent{Target: target, At: bus.now()})
}

// SetHidden publishes a visibility transition.
func (bus *Bus) SetHidden(hidden bool) {
	bus.visibility.Publish(VisibilityEvent{Hidden: hidden, At: bus.now()})
}

// Resize publishes a new viewport size.
func (bus *Bus) Resize(width, height float64) {
	bus.resize.Publish(ResizeEvent{Width: width, Height: height, At: bus.now()})
}

// Listeners returns the total number of subscribed handlers.
func (bus *Bus) Listeners() int {
	return bus.activity.Len() + bus.scroll.Len() + bus.click.Len() +
		bus.key.Len() + bus.visibility.Len() + bus.resize.Len()
}
