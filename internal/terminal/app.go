// Package terminal runs a judgy session in a terminal: it draws a document
// with tcell, reports mouse, keyboard, focus and resize events to an env.Bus
// and rings a chime when an easter egg fires.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"judgy/internal/content"
	"judgy/internal/core/attitude"
	"judgy/internal/core/eggs"
	"judgy/internal/core/env"
	"judgy/internal/core/session"
	"judgy/internal/ui/presenter"
)

// Cells are reported to the bus as fixed pixel boxes so scroll speeds and
// sizes keep their browser meaning.
const (
	cellWidth  = 8
	cellHeight = 16

	headerRows = 4
	wheelRows  = 3
)

const wheelButtons = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

const helpLine = "wheel/arrows scroll · click [buttons] · : command · Esc quit"

// Player rings for a fired easter egg. *Chime implements it.
type Player interface {
	Play(eggType eggs.Type)
}

type view struct {
	mascot   string
	judgment string
	remark   string
	banner   string
	status   attitude.Snapshot
}

// App is the terminal front end. It implements presenter.Surface.
type App struct {
	screen   tcell.Screen
	bus      *env.Bus
	session  *session.Session
	document content.Document
	player   Player

	mu          sync.Mutex
	view        view
	lines       []line
	offset      int
	width       int
	height      int
	sized       bool
	buttons     tcell.ButtonMask
	commandMode bool
	command     []rune
	notice      string
	quit        bool
}

var _ presenter.Surface = (*App)(nil)

// New creates the front end. screen must already be initialised. player
// may be nil.
func New(screen tcell.Screen, bus *env.Bus, judged *session.Session, document content.Document, player Player) *App {
	app := &App{
		screen:   screen,
		bus:      bus,
		session:  judged,
		document: document,
		player:   player,
		view:     view{status: judged.Snapshot()},
	}
	app.width, app.height = screen.Size()
	app.lines = layoutDocument(document, app.textWidth())
	return app
}

// Run processes terminal and easter egg events until the user quits or ctx
// ends.
func (app *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			event := app.screen.PollEvent()
			if event == nil {
				return
			}
			select {
			case events <- event:
			case <-done:
				return
			}
		}
	}()

	eggEvents := app.session.Eggs.Subscribe(16)
	app.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-events:
			if !app.HandleEvents(append([]tcell.Event{event}, queued(events)...)...) {
				return nil
			}
		case event, ok := <-eggEvents:
			if !ok {
				eggEvents = nil
				continue
			}
			app.HandleEgg(event)
		}
	}
}

// HandleEvent applies one terminal event and redraws. It returns false
// once the user has asked to quit.
func (app *App) HandleEvent(event tcell.Event) bool {
	return app.HandleEvents(event)
}

// HandleEvents applies a batch of terminal events and redraws once.
// Consecutive wheel notches are reported to the bus as a single scroll, so a
// flick of the wheel covers the distance a browser would report.
func (app *App) HandleEvents(batch ...tcell.Event) bool {
	app.mu.Lock()
	var actions []func()
	steps := 0
	for _, event := range batch {
		if app.quit {
			break
		}
		if step, ok := app.wheelStepLocked(event); ok {
			steps += step
			continue
		}
		if _, redraw := event.(*tcell.EventInterrupt); redraw {
			continue
		}
		actions = append(actions, app.flushWheelLocked(&steps)...)
		actions = append(actions, app.translateLocked(event)...)
	}
	actions = append(actions, app.flushWheelLocked(&steps)...)
	app.mu.Unlock()

	for _, action := range actions {
		action()
	}

	app.Draw()
	app.mu.Lock()
	defer app.mu.Unlock()
	return !app.quit
}

// HandleEgg shows or clears the easter egg banner.
func (app *App) HandleEgg(event eggs.Event) {
	app.mu.Lock()
	switch event.Kind {
	case eggs.EventTriggered:
		app.view.banner = fmt.Sprintf("* %s * %s", presenter.Title(event.Type), event.Message)
	case eggs.EventCleared:
		app.view.banner = ""
	}
	app.mu.Unlock()

	if event.Kind == eggs.EventTriggered && app.player != nil {
		app.player.Play(event.Type)
	}
	app.wake()
}

func (app *App) SetMascot(frame string) {
	app.update(func(current *view) { current.mascot = frame })
}

func (app *App) SetJudgment(text string) {
	app.update(func(current *view) { current.judgment = text })
}

func (app *App) SetRemark(text string) {
	app.update(func(current *view) { current.remark = text })
}

func (app *App) SetStatus(snapshot attitude.Snapshot) {
	app.update(func(current *view) { current.status = snapshot })
}

func (app *App) update(change func(*view)) {
	app.mu.Lock()
	change(&app.view)
	app.mu.Unlock()
	app.wake()
}

// wake asks the event loop to redraw.
func (app *App) wake() {
	_ = app.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// translateLocked updates local state for event and returns the bus and
// session calls to make once the lock is released.
func (app *App) translateLocked(event tcell.Event) []func() {
	switch event := event.(type) {
	case *tcell.EventResize:
		return app.resizeLocked(event)
	case *tcell.EventFocus:
		hidden := !event.Focused
		return []func(){func() { app.bus.SetHidden(hidden) }}
	case *tcell.EventMouse:
		return app.mouseLocked(event)
	case *tcell.EventKey:
		if app.commandMode {
			return app.commandKeyLocked(event)
		}
		return app.keyLocked(event)
	}
	return nil
}

func (app *App) resizeLocked(event *tcell.EventResize) []func() {
	width, height := event.Size()
	app.width, app.height = width, height
	app.lines = layoutDocument(app.document, app.textWidth())
	app.offset = clamp(app.offset, 0, app.maxOffsetLocked())

	actions := []func(){app.screen.Sync}
	if app.sized {
		actions = append(actions, func() {
			app.bus.Resize(float64(width*cellWidth), float64(height*cellHeight))
		})
	}
	app.sized = true
	return actions
}

func (app *App) mouseLocked(event *tcell.EventMouse) []func() {
	x, y := event.Position()
	buttons := event.Buttons()
	held := buttons &^ wheelButtons
	pressed := held&tcell.Button1 != 0 && app.buttons&tcell.Button1 == 0
	app.buttons = held

	switch {
	case pressed:
		target := app.targetAtLocked(x, y)
		return []func(){app.bus.PointerDown, func() { app.bus.Click(target) }}
	default:
		return []func(){app.bus.PointerMove}
	}
}

func (app *App) keyLocked(event *tcell.EventKey) []func() {
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.quit = true
		return nil
	case tcell.KeyRune:
		key := string(event.Rune())
		if key == ":" {
			app.commandMode = true
			app.command = app.command[:0]
			app.notice = ""
		}
		return []func(){func() { app.bus.KeyDown(key) }}
	}

	name := keyName(event.Key())
	actions := []func(){func() { app.bus.KeyDown(name) }}
	switch event.Key() {
	case tcell.KeyDown:
		actions = append(actions, app.scrollLocked(app.offset+1)...)
	case tcell.KeyUp:
		actions = append(actions, app.scrollLocked(app.offset-1)...)
	case tcell.KeyPgDn:
		actions = append(actions, app.scrollLocked(app.offset+app.bodyRows())...)
	case tcell.KeyPgUp:
		actions = append(actions, app.scrollLocked(app.offset-app.bodyRows())...)
	case tcell.KeyHome:
		actions = append(actions, app.scrollLocked(0)...)
	case tcell.KeyEnd:
		actions = append(actions, app.scrollLocked(app.maxOffsetLocked())...)
	}
	return actions
}

// commandKeyLocked edits the command line. Command typing counts as
// activity but never reaches the key listeners.
func (app *App) commandKeyLocked(event *tcell.EventKey) []func() {
	activity := func() { app.bus.Activity(env.ActivityEvent{Kind: env.ActivityKeyDown}) }
	switch event.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		app.commandMode = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(app.command) > 0 {
			app.command = app.command[:len(app.command)-1]
		}
	case tcell.KeyEnter:
		app.commandMode = false
		parsed, err := parseCommand(string(app.command))
		if err != nil {
			app.notice = err.Error()
			return []func(){activity}
		}
		return []func(){activity, app.runCommandLocked(parsed)}
	case tcell.KeyRune:
		app.command = append(app.command, event.Rune())
	}
	return []func(){activity}
}

func (app *App) runCommandLocked(parsed command) func() {
	judged := app.session
	switch parsed.kind {
	case commandScore:
		value := parsed.value
		return func() { judged.Engine.ResetScore(value, "Score set by hand") }
	case commandNudge:
		value := parsed.value
		return func() { judged.Engine.ChangeScore(value, "Nudged by hand") }
	case commandReset:
		return func() { judged.Engine.ResetScore(0, "Fresh start") }
	case commandRearm:
		return judged.Eggs.Rearm
	case commandPause:
		app.notice = "judging paused"
		return judged.Pause
	case commandResume:
		app.notice = ""
		return judged.Resume
	case commandQuit:
		app.quit = true
	}
	return func() {}
}

// wheelStepLocked reports +1 for a notch down and -1 for a notch up.
func (app *App) wheelStepLocked(event tcell.Event) (int, bool) {
	mouse, ok := event.(*tcell.EventMouse)
	if !ok {
		return 0, false
	}
	buttons := mouse.Buttons()
	step := 0
	switch {
	case buttons&tcell.WheelDown != 0:
		step = 1
	case buttons&tcell.WheelUp != 0:
		step = -1
	default:
		return 0, false
	}
	app.buttons = buttons &^ wheelButtons
	return step, true
}

func (app *App) flushWheelLocked(steps *int) []func() {
	if *steps == 0 {
		return nil
	}
	actions := app.scrollLocked(app.offset + *steps*wheelRows)
	*steps = 0
	return actions
}

func (app *App) scrollLocked(offset int) []func() {
	offset = clamp(offset, 0, app.maxOffsetLocked())
	if offset == app.offset {
		return nil
	}
	app.offset = offset
	event := env.ScrollEvent{
		Y:              float64(offset * cellHeight),
		ViewportHeight: float64(app.bodyRows() * cellHeight),
		ContentHeight:  float64(len(app.lines) * cellHeight),
	}
	return []func(){func() { app.bus.Scroll(event) }}
}

func (app *App) targetAtLocked(x, y int) *env.Target {
	if y < headerRows {
		return env.NewTarget("HEADER")
	}
	if y >= app.height-1 {
		return env.NewTarget("FOOTER")
	}
	index := app.offset + y - headerRows
	if index >= len(app.lines) {
		return env.NewTarget("BODY")
	}
	return app.lines[index].target(x - 1)
}

func (app *App) bodyRows() int {
	rows := app.height - headerRows - 1
	if rows < 1 {
		return 1
	}
	return rows
}

func (app *App) maxOffsetLocked() int {
	if extra := len(app.lines) - app.bodyRows(); extra > 0 {
		return extra
	}
	return 0
}

func (app *App) textWidth() int {
	return app.width - 2
}

// Draw renders the current state.
func (app *App) Draw() {
	app.mu.Lock()
	current := app.view
	lines := app.lines
	offset := app.offset
	width, height := app.width, app.height
	footer := helpLine
	switch {
	case app.commandMode:
		footer = ":" + string(app.command)
	case app.notice != "":
		footer = app.notice
	}
	app.mu.Unlock()

	screen := app.screen
	screen.Clear()

	levelStyle := tcell.StyleDefault.Foreground(levelColor(current.status.Level)).Bold(true)
	drawText(screen, 1, 0, width, "judgy "+current.mascot, levelStyle)
	status := fmt.Sprintf("%s · %d", current.status.Level, current.status.Score)
	drawText(screen, width-runewidth.StringWidth(status)-1, 0, width, status, levelStyle)
	drawText(screen, 1, 1, width, current.judgment, tcell.StyleDefault.Italic(true))
	drawText(screen, 1, 2, width, current.remark, tcell.StyleDefault.Dim(true))
	if current.banner != "" {
		drawText(screen, 1, 3, width, current.banner, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
	} else {
		drawText(screen, 0, 3, width, strings.Repeat("─", width), tcell.StyleDefault.Dim(true))
	}

	for row := headerRows; row < height-1; row++ {
		index := offset + row - headerRows
		if index >= len(lines) {
			break
		}
		drawText(screen, 1, row, width, lines[index].text, blockStyle(lines[index].kind))
	}

	drawText(screen, 1, height-1, width, footer, tcell.StyleDefault.Reverse(true))
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= width {
			return
		}
		if x >= 0 {
			screen.SetContent(x, y, r, nil, style)
		}
		x += runewidth.RuneWidth(r)
	}
}

func blockStyle(kind content.BlockKind) tcell.Style {
	switch kind {
	case content.KindHeading:
		return tcell.StyleDefault.Bold(true)
	case content.KindButton:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	case content.KindLink:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue).Underline(true)
	default:
		return tcell.StyleDefault
	}
}

func levelColor(level attitude.Level) tcell.Color {
	switch level {
	case attitude.LevelRespectful:
		return tcell.ColorGreen
	case attitude.LevelNeutral:
		return tcell.ColorWhite
	case attitude.LevelDisappointed:
		return tcell.ColorSilver
	case attitude.LevelJudgy:
		return tcell.ColorOrange
	default:
		return tcell.ColorGray
	}
}

func keyName(key tcell.Key) string {
	if name, ok := tcell.KeyNames[key]; ok {
		return name
	}
	return fmt.Sprintf("Key[%d]", key)
}

// queued returns the events already waiting, without blocking.
func queued(events <-chan tcell.Event) []tcell.Event {
	var waiting []tcell.Event
	for {
		select {
		case event := <-events:
			waiting = append(waiting, event)
		default:
			return waiting
		}
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
