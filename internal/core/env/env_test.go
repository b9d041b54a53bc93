package env

import (
	"testing"
	"time"
)

func TestIsInteractive(t *testing.T) {
	form := NewTarget("form")
	button := NewTarget("button")
	tests := []struct {
		name   string
		target *Target
		want   bool
	}{
		{"nil", nil, false},
		{"button", button, true},
		{"lowercase link", NewTarget("a"), true},
		{"input", NewTarget("INPUT"), true},
		{"select", NewTarget("Select"), true},
		{"textarea", NewTarget("TEXTAREA"), true},
		{"div", NewTarget("DIV"), false},
		{"role button", &Target{Tag: "DIV", Role: "button"}, true},
		{"span inside button", NewTarget("SPAN").Within(button), true},
		{"span inside form", NewTarget("SPAN").Within(form), false},
		{"empty tag", &Target{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInteractive(tt.target); got != tt.want {
				t.Errorf("IsInteractive = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScrollDepthAndBottom(t *testing.T) {
	tests := []struct {
		name       string
		event      ScrollEvent
		wantDepth  float64
		wantBottom bool
	}{
		{"top", ScrollEvent{Y: 0, ViewportHeight: 500, ContentHeight: 1500}, 0, false},
		{"middle", ScrollEvent{Y: 500, ViewportHeight: 500, ContentHeight: 1500}, 0.5, false},
		{"bottom", ScrollEvent{Y: 1000, ViewportHeight: 500, ContentHeight: 1500}, 1, true},
		{"slack", ScrollEvent{Y: 999, ViewportHeight: 500, ContentHeight: 1500}, 0.999, true},
		{"overscroll", ScrollEvent{Y: 1200, ViewportHeight: 500, ContentHeight: 1500}, 1, true},
		{"not scrollable", ScrollEvent{Y: 0, ViewportHeight: 800, ContentHeight: 600}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.Depth(); got != tt.wantDepth {
				t.Errorf("Depth = %v, want %v", got, tt.wantDepth)
			}
			if got := tt.event.AtBottom(); got != tt.wantBottom {
				t.Errorf("AtBottom = %v, want %v", got, tt.wantBottom)
			}
		})
	}
}

func TestBusStampsAndRoutesEvents(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	bus := NewBus(func() time.Time { return at })

	var activities []ActivityEvent
	var keys []KeyEvent
	var clicks []ClickEvent
	var scrolls []ScrollEvent
	var hidden []bool
	var sizes []ResizeEvent

	unsubscribe := bus.OnActivity(func(event ActivityEvent) { activities = append(activities, event) })
	bus.OnKey(func(event KeyEvent) { keys = append(keys, event) })
	bus.OnClick(func(event ClickEvent) { clicks = append(clicks, event) })
	bus.OnScroll(func(event ScrollEvent) { scrolls = append(scrolls, event) })
	bus.OnVisibility(func(event VisibilityEvent) { hidden = append(hidden, event.Hidden) })
	bus.OnResize(func(event ResizeEvent) { sizes = append(sizes, event) })

	if bus.Listeners() != 6 {
		t.Fatalf("Listeners = %d, want 6", bus.Listeners())
	}

	bus.PointerMove()
	bus.KeyDown("f")
	bus.Click(nil)
	bus.Scroll(ScrollEvent{Y: 10})
	bus.SetHidden(true)
	bus.Resize(800, 600)

	if len(activities) != 2 || activities[1].Kind != ActivityKeyDown {
		t.Errorf("activities = %+v", activities)
	}
	if len(keys) != 1 || keys[0].Key != "f" || !keys[0].At.Equal(at) {
		t.Errorf("keys = %+v", keys)
	}
	if len(clicks) != 1 || clicks[0].Target != nil {
		t.Errorf("clicks = %+v", clicks)
	}
	if len(scrolls) != 1 || !scrolls[0].At.Equal(at) {
		t.Errorf("scrolls = %+v", scrolls)
	}
	if len(hidden) != 1 || !hidden[0] {
		t.Errorf("hidden = %v", hidden)
	}
	if len(sizes) != 1 || sizes[0].Width != 800 {
		t.Errorf("sizes = %+v", sizes)
	}

	unsubscribe()
	bus.TouchStart()
	if len(activities) != 2 {
		t.Errorf("unsubscribed handler still called: %+v", activities)
	}
}

func TestBusRemembersScrollPositionWithoutListeners(t *testing.T) {
	bus := NewBus(nil)
	if _, known := bus.ScrollPosition(); known {
		t.Fatal("fresh bus should not know a position")
	}

	bus.Scroll(ScrollEvent{Y: 300, ViewportHeight: 200, ContentHeight: 800})
	bus.Scroll(ScrollEvent{Y: 450, ViewportHeight: 200, ContentHeight: 800})

	position, known := bus.ScrollPosition()
	if !known || position.Y != 450 || position.At.IsZero() {
		t.Errorf("position = %+v, %v", position, known)
	}

	var source Source = bus
	if _, ok := source.(ScrollPositioner); !ok {
		t.Error("Bus should report its scroll position")
	}
}
