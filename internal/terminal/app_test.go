package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"judgy/internal/content"
	"judgy/internal/core/attitude"
	"judgy/internal/core/behavior"
	"judgy/internal/core/clock"
	"judgy/internal/core/eggs"
	"judgy/internal/core/env"
	"judgy/internal/core/model"
	"judgy/internal/core/session"
)

var epoch = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type harness struct {
	app    *App
	screen tcell.SimulationScreen
	bus    *env.Bus
	judged *session.Session
	clk    *clock.Manual
	player *recordingPlayer
}

type recordingPlayer struct {
	played []eggs.Type
}

func (player *recordingPlayer) Play(eggType eggs.Type) {
	player.played = append(player.played, eggType)
}

func newHarness(t *testing.T, width, height int) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)

	clk := clock.NewManual(epoch)
	bus := env.NewBus(clk.Now)
	judged := session.New(clk, bus, model.Default())
	t.Cleanup(judged.Close)

	player := &recordingPlayer{}
	app := New(screen, bus, judged, content.Sample(), player)
	app.HandleEvent(tcell.NewEventResize(width, height))
	return &harness{app: app, screen: screen, bus: bus, judged: judged, clk: clk, player: player}
}

func (h *harness) row(y int) string {
	width, _ := h.screen.Size()
	var builder strings.Builder
	for x := 0; x < width; x++ {
		mainc, _, _, _ := h.screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		builder.WriteRune(mainc)
	}
	return builder.String()
}

func (h *harness) rowOf(t *testing.T, kind content.BlockKind) int {
	t.Helper()
	for index, current := range h.app.lines {
		if current.kind == kind && !current.blank {
			y := headerRows + index - h.app.offset
			if y >= h.app.height-1 {
				t.Fatalf("first %s line is below the fold", kind)
			}
			return y
		}
	}
	t.Fatalf("no %s line", kind)
	return 0
}

func (h *harness) typeKeys(text string) {
	for _, r := range text {
		h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) press(key tcell.Key) bool {
	return h.app.HandleEvent(tcell.NewEventKey(key, 0, tcell.ModNone))
}

func (h *harness) click(x, y int) {
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func TestClicksReportTheElementUnderThePointer(t *testing.T) {
	h := newHarness(t, 60, 40)
	var clicks []string
	var activity []env.ActivityKind
	h.bus.OnClick(func(event env.ClickEvent) { clicks = append(clicks, event.Target.TagName()) })
	h.bus.OnActivity(func(event env.ActivityEvent) { activity = append(activity, event.Kind) })

	buttonRow := h.rowOf(t, content.KindButton)
	h.click(2, buttonRow)
	h.click(59, buttonRow)
	h.click(2, h.rowOf(t, content.KindParagraph))
	h.click(2, 0)

	want := []string{"BUTTON", "BODY", "P", "HEADER"}
	if strings.Join(clicks, ",") != strings.Join(want, ",") {
		t.Errorf("clicks = %v, want %v", clicks, want)
	}
	downs := 0
	for _, kind := range activity {
		if kind == env.ActivityPointerDown {
			downs++
		}
	}
	if downs != 4 {
		t.Errorf("pointer downs = %d, want 4 (activity %v)", downs, activity)
	}
}

func TestHeldButtonClicksOnce(t *testing.T) {
	h := newHarness(t, 60, 40)
	clicks := 0
	h.bus.OnClick(func(env.ClickEvent) { clicks++ })

	y := h.rowOf(t, content.KindButton)
	h.app.HandleEvent(tcell.NewEventMouse(2, y, tcell.Button1, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(3, y, tcell.Button1, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(3, y, tcell.ButtonNone, tcell.ModNone))
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestWheelScrollsInCellPixels(t *testing.T) {
	h := newHarness(t, 60, 20)
	var scrolls []env.ScrollEvent
	h.bus.OnScroll(func(event env.ScrollEvent) { scrolls = append(scrolls, event) })

	h.app.HandleEvent(tcell.NewEventMouse(5, 10, tcell.WheelUp, tcell.ModNone))
	h.app.HandleEvent(tcell.NewEventMouse(5, 10, tcell.WheelDown, tcell.ModNone))

	if len(scrolls) != 1 {
		t.Fatalf("scrolls = %+v, want one (wheel up at the top does nothing)", scrolls)
	}
	event := scrolls[0]
	if event.Y != wheelRows*cellHeight {
		t.Errorf("Y = %v", event.Y)
	}
	if event.ViewportHeight != float64((20-headerRows-1)*cellHeight) {
		t.Errorf("viewport = %v", event.ViewportHeight)
	}
	if event.ContentHeight != float64(len(h.app.lines)*cellHeight) {
		t.Errorf("content = %v", event.ContentHeight)
	}

	h.press(tcell.KeyEnd)
	last := scrolls[len(scrolls)-1]
	if !last.AtBottom() {
		t.Errorf("End should reach the bottom: %+v", last)
	}
}

func TestWheelBurstIsOneScroll(t *testing.T) {
	h := newHarness(t, 60, 20)
	var scrolls []env.ScrollEvent
	var reasons []string
	h.bus.OnScroll(func(event env.ScrollEvent) { scrolls = append(scrolls, event) })
	h.judged.Engine.OnScoreChange(func(event attitude.ScoreChangeEvent) { reasons = append(reasons, event.Reason) })
	h.judged.Start()

	notch := func() tcell.Event { return tcell.NewEventMouse(5, 10, tcell.WheelDown, tcell.ModNone) }

	h.app.HandleEvent(notch())
	if len(reasons) != 0 {
		t.Fatalf("a single notch was judged: %v", reasons)
	}

	h.clk.Advance(100 * time.Millisecond)
	h.app.HandleEvents(notch(), tcell.NewEventInterrupt(nil), notch(), notch())

	if len(scrolls) != 2 {
		t.Fatalf("scrolls = %+v, want the notch and one burst", scrolls)
	}
	if got, want := scrolls[1].Y, float64(4*wheelRows*cellHeight); got != want {
		t.Errorf("burst Y = %v, want %v", got, want)
	}
	if len(reasons) != 1 || reasons[0] != behavior.ReasonFastScroll {
		t.Errorf("reasons = %v, want one fast scroll", reasons)
	}
}

func TestFocusAndResize(t *testing.T) {
	h := newHarness(t, 60, 20)
	var hidden []bool
	var resizes []env.ResizeEvent
	h.bus.OnVisibility(func(event env.VisibilityEvent) { hidden = append(hidden, event.Hidden) })
	h.bus.OnResize(func(event env.ResizeEvent) { resizes = append(resizes, event) })

	h.app.HandleEvent(tcell.NewEventFocus(false))
	h.app.HandleEvent(tcell.NewEventFocus(true))
	h.app.HandleEvent(tcell.NewEventResize(80, 24))

	if len(hidden) != 2 || !hidden[0] || hidden[1] {
		t.Errorf("hidden = %v", hidden)
	}
	if len(resizes) != 1 || resizes[0].Width != 80*cellWidth || resizes[0].Height != 24*cellHeight {
		t.Errorf("resizes = %+v", resizes)
	}
}

func TestSecretComboRingsAndShowsBanner(t *testing.T) {
	h := newHarness(t, 60, 20)
	events := h.judged.Eggs.Subscribe(8)

	h.typeKeys("flavor")

	var triggered eggs.Event
	select {
	case triggered = <-events:
	default:
		t.Fatal("typing the combo fired nothing")
	}
	if triggered.Kind != eggs.EventTriggered || triggered.Type != eggs.TypeKeyCombo {
		t.Fatalf("event = %+v", triggered)
	}

	h.app.HandleEgg(triggered)
	h.app.Draw()
	if got := h.row(3); !strings.Contains(got, "Secret combo") {
		t.Errorf("banner row = %q", got)
	}
	if len(h.player.played) != 1 || h.player.played[0] != eggs.TypeKeyCombo {
		t.Errorf("played = %v", h.player.played)
	}

	h.app.HandleEgg(eggs.Event{Kind: eggs.EventCleared, Type: eggs.TypeKeyCombo})
	h.app.Draw()
	if got := h.row(3); strings.Contains(got, "Secret combo") {
		t.Errorf("banner still shown: %q", got)
	}
}

func TestCommands(t *testing.T) {
	h := newHarness(t, 60, 20)
	var keys []string
	h.bus.OnKey(func(event env.KeyEvent) { keys = append(keys, event.Key) })

	h.typeKeys(":score 7")
	h.press(tcell.KeyEnter)
	if got := h.judged.Engine.Score(); got != 7 {
		t.Fatalf("score = %d, want 7", got)
	}

	h.typeKeys(":nudge -2")
	h.press(tcell.KeyEnter)
	if got := h.judged.Engine.Score(); got != 5 {
		t.Errorf("score = %d, want 5", got)
	}

	h.typeKeys(":score lots")
	h.press(tcell.KeyEnter)
	if got := h.judged.Engine.Score(); got != 0 {
		t.Errorf("unparsable score = %d, want 0", got)
	}

	if strings.Join(keys, "") != ":::" {
		t.Errorf("keys = %v, command text should not reach key listeners", keys)
	}

	h.typeKeys(":dance")
	h.press(tcell.KeyEnter)
	if got := h.row(19); !strings.Contains(got, "unknown command") {
		t.Errorf("footer = %q", got)
	}
}

func TestPauseAndResumeCommands(t *testing.T) {
	h := newHarness(t, 60, 20)
	h.judged.Start()

	h.typeKeys(":pause")
	h.press(tcell.KeyEnter)
	if !h.judged.Paused() {
		t.Fatal("session should be paused")
	}
	h.typeKeys(":resume")
	h.press(tcell.KeyEnter)
	if h.judged.Paused() {
		t.Fatal("session should be running")
	}
}

func TestEscapeCancelsCommandThenQuits(t *testing.T) {
	h := newHarness(t, 60, 20)
	h.typeKeys(":sco")
	if !h.press(tcell.KeyEscape) {
		t.Fatal("escape in command mode should only cancel")
	}
	if h.press(tcell.KeyEscape) {
		t.Fatal("escape should quit")
	}
}

func TestHeaderShowsMoodAndStatus(t *testing.T) {
	h := newHarness(t, 60, 20)
	h.app.SetMascot("(^_^)")
	h.app.SetStatus(attitude.Snapshot{Score: 7, Level: attitude.LevelRespectful})
	h.app.SetJudgment("Reads calmly")
	h.app.Draw()

	header := h.row(0)
	if !strings.Contains(header, "(^_^)") || !strings.Contains(header, "Respectful · 7") {
		t.Errorf("header = %q", header)
	}
	if got := h.row(1); !strings.Contains(got, "Reads calmly") {
		t.Errorf("judgment row = %q", got)
	}
}
