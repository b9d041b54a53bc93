// Package overlay shows the easter egg celebration banner.
package overlay

import (
	"context"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"judgy/internal/core/eggs"
	"judgy/internal/core/model"
	"judgy/internal/ui/animation"
	"judgy/internal/ui/presenter"
)

// Config defines overlay visuals.
type Config struct {
	Opacity   float64
	Animation animation.Config
}

// Window is a small undecorated banner that stays up while an easter egg
// is active.
type Window struct {
	app          fyne.App
	window       fyne.Window
	background   *canvas.Rectangle
	titleLabel   *canvas.Text
	messageLabel *canvas.Text
	mascotLabel  *canvas.Text

	mu      sync.Mutex
	config  Config
	mascot  *animation.Engine
	typer   *animation.Engine
	cancel  context.CancelFunc
	showing eggs.Type
}

const (
	bannerWidthFraction = float32(0.28)
	bannerMinWidth      = float32(360)
	defaultScreenWidth  = float32(1920)
)

var (
	accentColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	textColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("judgy")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: opacityToAlpha(config.Opacity)})

	mascotLabel := canvas.NewText("", accentColor)
	mascotLabel.Alignment = fyne.TextAlignCenter
	mascotLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	mascotLabel.TextSize = 28

	titleLabel := canvas.NewText("", accentColor)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 18

	messageLabel := canvas.NewText("", textColor)
	messageLabel.TextSize = 14

	content := container.New(&bannerLayout{}, mascotLabel, titleLabel, messageLabel)
	window.SetContent(container.NewStack(background, content))

	overlay := &Window{
		app:          app,
		window:       window,
		background:   background,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
		mascotLabel:  mascotLabel,
		config:       config,
	}
	overlay.mascot = animation.New(config.Animation, func(frame string) {
		overlay.setText(overlay.mascotLabel, frame)
	})
	overlay.typer = animation.New(config.Animation, func(frame string) {
		overlay.setText(overlay.messageLabel, frame)
	})
	return overlay
}

// Show presents a triggered easter egg until Hide or its duration ends.
func (overlay *Window) Show(event eggs.Event) {
	overlay.mu.Lock()
	overlay.stopLocked()
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancel = cancel
	overlay.showing = event.Type
	overlay.mu.Unlock()

	overlay.titleLabel.Text = presenter.Title(event.Type)
	overlay.titleLabel.Refresh()
	overlay.messageLabel.Text = ""
	overlay.messageLabel.Refresh()
	overlay.applyOpacity()
	overlay.resizeToScreenFraction()
	overlay.window.Show()

	duration := event.Duration
	if duration <= 0 {
		duration = model.DefaultEasterEggConfig().EggDuration
	}
	overlay.mascot.StartCelebration(ctx, animation.Celebration(event.Type), duration)
	overlay.typer.StartEggTypewriter(ctx, event.Message)
}

// Hide closes the banner and stops its animations.
func (overlay *Window) Hide() {
	overlay.mu.Lock()
	overlay.stopLocked()
	overlay.showing = ""
	overlay.mu.Unlock()
	overlay.window.Hide()
}

// Showing returns the egg on screen, or "" when hidden.
func (overlay *Window) Showing() eggs.Type {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.showing
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.mu.Lock()
	overlay.config = config
	overlay.mu.Unlock()
	overlay.mascot.UpdateConfig(config.Animation)
	overlay.typer.UpdateConfig(config.Animation)
	overlay.applyOpacity()
}

func (overlay *Window) setText(label *canvas.Text, text string) {
	fyne.Do(func() {
		label.Text = text
		label.Refresh()
	})
}

func (overlay *Window) stopLocked() {
	if overlay.cancel != nil {
		overlay.cancel()
		overlay.cancel = nil
	}
}

func (overlay *Window) applyOpacity() {
	overlay.mu.Lock()
	alpha := opacityToAlpha(overlay.config.Opacity)
	overlay.mu.Unlock()
	overlay.background.FillColor = color.NRGBA{A: alpha}
	canvas.Refresh(overlay.background)
	overlay.applyNativeOpacity(alpha)
}

func (overlay *Window) resizeToScreenFraction() {
	screenWidth := defaultScreenWidth
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize := overlay.window.Canvas().Size(); canvasSize.Width >= 1024 {
		screenWidth = canvasSize.Width
	}
	width := screenWidth * bannerWidthFraction
	if width < bannerMinWidth {
		width = bannerMinWidth
	}
	height := overlay.window.Content().MinSize().Height
	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}

// bannerLayout puts the mascot on the left and stacks the title above the
// message on the right.
type bannerLayout struct{}

const bannerPadding = float32(12)

func (layout *bannerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	mascot, title, message := objects[0], objects[1], objects[2]

	mascotSize := mascot.MinSize()
	mascot.Move(fyne.NewPos(bannerPadding, (size.Height-mascotSize.Height)/2))
	mascot.Resize(mascotSize)

	textX := bannerPadding*2 + mascotSize.Width
	textWidth := size.Width - textX - bannerPadding
	if textWidth < 0 {
		textWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(textX, bannerPadding))
	title.Resize(fyne.NewSize(textWidth, titleSize.Height))

	messageSize := message.MinSize()
	message.Move(fyne.NewPos(textX, bannerPadding+titleSize.Height+6))
	message.Resize(fyne.NewSize(textWidth, messageSize.Height))
}

func (layout *bannerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	mascotSize := objects[0].MinSize()
	titleSize := objects[1].MinSize()
	messageSize := objects[2].MinSize()

	textWidth := titleSize.Width
	if messageSize.Width > textWidth {
		textWidth = messageSize.Width
	}
	textHeight := titleSize.Height + 6 + messageSize.Height
	height := mascotSize.Height
	if textHeight > height {
		height = textHeight
	}
	return fyne.NewSize(bannerPadding*3+mascotSize.Width+textWidth, height+bannerPadding*2)
}
