package overlay

import (
	"testing"

	"fyne.io/fyne/v2"
)

func TestOpacityToAlpha(t *testing.T) {
	tests := []struct {
		opacity float64
		want    uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 127},
		{1, 255},
		{3, 255},
	}
	for _, test := range tests {
		if got := opacityToAlpha(test.opacity); got != test.want {
			t.Errorf("opacityToAlpha(%v) = %d, want %d", test.opacity, got, test.want)
		}
	}
}

type fixedObject struct {
	min      fyne.Size
	size     fyne.Size
	position fyne.Position
	hidden   bool
}

func newFixed(width, height float32) *fixedObject {
	return &fixedObject{min: fyne.NewSize(width, height)}
}

func (object *fixedObject) MinSize() fyne.Size { return object.min }
func (object *fixedObject) Move(position fyne.Position) { object.position = position }
func (object *fixedObject) Position() fyne.Position { return object.position }
func (object *fixedObject) Resize(size fyne.Size) { object.size = size }
func (object *fixedObject) Size() fyne.Size { return object.size }
func (object *fixedObject) Hide() { object.hidden = true }
func (object *fixedObject) Show() { object.hidden = false }
func (object *fixedObject) Visible() bool { return !object.hidden }
func (object *fixedObject) Refresh() {}

func TestBannerLayout(t *testing.T) {
	mascot := newFixed(80, 40)
	title := newFixed(120, 20)
	message := newFixed(200, 16)
	objects := []fyne.CanvasObject{mascot, title, message}

	layout := &bannerLayout{}
	min := layout.MinSize(objects)
	if want := fyne.NewSize(bannerPadding*3+80+200, 20+6+16+bannerPadding*2); min != want {
		t.Fatalf("MinSize = %v, want %v", min, want)
	}

	layout.Layout(objects, fyne.NewSize(400, 80))
	if got := mascot.Position(); got != fyne.NewPos(bannerPadding, 20) {
		t.Errorf("mascot at %v", got)
	}
	textX := bannerPadding*2 + 80
	if got := title.Position(); got != fyne.NewPos(textX, bannerPadding) {
		t.Errorf("title at %v", got)
	}
	if got := message.Position(); got != fyne.NewPos(textX, bannerPadding+26) {
		t.Errorf("message at %v", got)
	}
	if got := message.Size().Width; got != 400-textX-bannerPadding {
		t.Errorf("message width = %v", got)
	}
}
