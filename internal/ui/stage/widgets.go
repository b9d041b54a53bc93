package stage

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"judgy/internal/core/env"
)

// tapArea reports taps and pointer movement over a non-interactive child.
type tapArea struct {
	widget.BaseWidget
	target *env.Target
	bus    *env.Bus
	child  fyne.CanvasObject
}

var (
	_ fyne.Tappable     = (*tapArea)(nil)
	_ desktop.Hoverable = (*tapArea)(nil)
)

func newTapArea(target *env.Target, bus *env.Bus, child fyne.CanvasObject) *tapArea {
	area := &tapArea{target: target, bus: bus, child: child}
	area.ExtendBaseWidget(area)
	return area
}

func (area *tapArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(area.child)
}

func (area *tapArea) Tapped(*fyne.PointEvent) {
	area.bus.PointerDown()
	area.bus.Click(area.target)
}

func (area *tapArea) MouseIn(*desktop.MouseEvent) {
	area.bus.PointerMove()
}

func (area *tapArea) MouseMoved(*desktop.MouseEvent) {
	area.bus.PointerMove()
}

func (area *tapArea) MouseOut() {}

// reportingLayout stacks its objects and reports every size change.
type reportingLayout struct {
	onResize func(fyne.Size)
	last     fyne.Size
}

func (layout *reportingLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, object := range objects {
		object.Move(fyne.NewPos(0, 0))
		object.Resize(size)
	}
	if size == layout.last {
		return
	}
	first := layout.last == (fyne.Size{})
	layout.last = size
	if !first && layout.onResize != nil {
		layout.onResize(size)
	}
}

func (layout *reportingLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	min := fyne.NewSize(0, 0)
	for _, object := range objects {
		min = min.Max(object.MinSize())
	}
	return min
}
