// Package stage renders a document in fyne and reports what the reader does
// with it to an env.Bus.
package stage

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"judgy/internal/content"
	"judgy/internal/core/attitude"
	"judgy/internal/core/env"
	"judgy/internal/ui/presenter"
)

// Stage is the reading surface plus the judge's header.
type Stage struct {
	bus *env.Bus

	root     fyne.CanvasObject
	scroll   *container.Scroll
	body     *fyne.Container
	mascot   *widget.Label
	judgment *widget.Label
	remark   *widget.Label
	status   *widget.Label
}

var _ presenter.Surface = (*Stage)(nil)

// New builds the stage for document.
func New(bus *env.Bus, document content.Document) *Stage {
	stage := &Stage{
		bus:      bus,
		mascot:   widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Monospace: true, Bold: true}),
		judgment: widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		remark:   widget.NewLabel(""),
		status:   widget.NewLabel(""),
	}

	stage.body = container.NewVBox(widget.NewLabelWithStyle(document.Title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for _, block := range document.Blocks {
		stage.body.Add(stage.blockObject(block))
	}
	stage.scroll = container.NewVScroll(stage.body)
	stage.scroll.OnScrolled = stage.handleScrolled

	stage.remark.Wrapping = fyne.TextWrapWord
	header := container.NewBorder(nil, stage.remark, stage.mascot, stage.status, stage.judgment)
	page := newTapArea(env.NewTarget("BODY"), bus, container.NewBorder(header, nil, nil, nil, stage.scroll))
	stage.root = container.New(&reportingLayout{onResize: stage.handleResize}, page)
	return stage
}

// Content returns the object to put in a window.
func (stage *Stage) Content() fyne.CanvasObject {
	return stage.root
}

// Bind attaches keyboard and focus reporting to window.
func (stage *Stage) Bind(app fyne.App, window fyne.Window) {
	window.Canvas().SetOnTypedRune(func(r rune) {
		stage.bus.KeyDown(string(r))
	})
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if name, ok := keyName(event); ok {
			stage.bus.KeyDown(name)
		}
	})
	lifecycle := app.Lifecycle()
	lifecycle.SetOnExitedForeground(func() {
		stage.bus.SetHidden(true)
	})
	lifecycle.SetOnEnteredForeground(func() {
		stage.bus.SetHidden(false)
	})
}

// SetMascot shows a mascot frame. Safe from any goroutine.
func (stage *Stage) SetMascot(frame string) {
	fyne.Do(func() {
		stage.mascot.SetText(frame)
	})
}

// SetJudgment shows a judgment line. Safe from any goroutine.
func (stage *Stage) SetJudgment(text string) {
	fyne.Do(func() {
		stage.judgment.SetText(text)
	})
}

// SetRemark shows the remark for the current level. Safe from any goroutine.
func (stage *Stage) SetRemark(text string) {
	fyne.Do(func() {
		stage.remark.SetText(text)
	})
}

// SetStatus shows the score and level. Safe from any goroutine.
func (stage *Stage) SetStatus(snapshot attitude.Snapshot) {
	fyne.Do(func() {
		stage.status.SetText(fmt.Sprintf("%s · %d", snapshot.Level, snapshot.Score))
	})
}

func (stage *Stage) blockObject(block content.Block) fyne.CanvasObject {
	switch block.Kind {
	case content.KindButton:
		target := env.NewTarget(string(block.Kind))
		return widget.NewButton(block.Text, func() {
			stage.bus.PointerDown()
			stage.bus.Click(target)
		})
	case content.KindLink:
		target := env.NewTarget(string(block.Kind))
		link := widget.NewButton(block.Text, func() {
			stage.bus.PointerDown()
			stage.bus.Click(target)
		})
		link.Importance = widget.LowImportance
		return link
	case content.KindHeading:
		label := widget.NewLabelWithStyle(block.Text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
		return newTapArea(env.NewTarget(string(block.Kind)), stage.bus, label)
	default:
		label := widget.NewLabel(block.Text)
		label.Wrapping = fyne.TextWrapWord
		return newTapArea(env.NewTarget(string(block.Kind)), stage.bus, label)
	}
}

func (stage *Stage) handleScrolled(offset fyne.Position) {
	stage.bus.Scroll(scrollEvent(offset, stage.scroll.Size(), stage.body.MinSize()))
}

func (stage *Stage) handleResize(size fyne.Size) {
	stage.bus.Resize(float64(size.Width), float64(size.Height))
}

func scrollEvent(offset fyne.Position, viewport, content fyne.Size) env.ScrollEvent {
	return env.ScrollEvent{
		Y:              float64(offset.Y),
		ViewportHeight: float64(viewport.Height),
		ContentHeight:  float64(content.Height),
	}
}

// keyName maps a typed key onto the name reported to the bus. Printable
// keys arrive through the rune callback and are skipped here.
func keyName(event *fyne.KeyEvent) (string, bool) {
	if event == nil {
		return "", false
	}
	name := string(event.Name)
	if name == "" || len([]rune(name)) == 1 || event.Name == fyne.KeySpace {
		return "", false
	}
	return name, true
}
