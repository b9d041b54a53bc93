package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	onCancel     func()
	idleWarn     *widget.Entry
	idlePenalty  *widget.Entry
	spamCount    *widget.Entry
	spamWindow   *widget.Entry
	fastSpeed    *widget.Entry
	eggDuration  *widget.Entry
	secretCombo  *widget.Entry
	reduceMotion *widget.Check
	startPaused  *widget.Check
	opacity      *widget.Slider
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("judgy Settings")

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		idleWarn:     widget.NewEntry(),
		idlePenalty:  widget.NewEntry(),
		spamCount:    widget.NewEntry(),
		spamWindow:   widget.NewEntry(),
		fastSpeed:    widget.NewEntry(),
		eggDuration:  widget.NewEntry(),
		secretCombo:  widget.NewEntry(),
		reduceMotion: widget.NewCheck("Reduce motion", nil),
		startPaused:  widget.NewCheck("Start with judging paused", nil),
		opacity:      widget.NewSlider(0.7, 0.95),
	}
	prefs.opacity.Step = 0.01
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Patience", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Ask \"Thinking?\" after"), prefs.idleWarn, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Assume you left after"), prefs.idlePenalty, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Strictness", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Clicks that count as spam"), prefs.spamCount),
		container.NewHBox(widget.NewLabel("Spam window"), prefs.spamWindow, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Fast scroll speed"), prefs.fastSpeed, widget.NewLabel("px/ms")),
		widget.NewLabelWithStyle("Celebrations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Show easter eggs for"), prefs.eggDuration, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Secret combo"), prefs.secretCombo),
		prefs.reduceMotion,
		prefs.startPaused,
		widget.NewLabel("Overlay opacity"),
		prefs.opacity,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(440, 520))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	tuning := settings.Tuning
	prefs.idleWarn.SetText(formatSeconds(tuning.Idle.Warn))
	prefs.idlePenalty.SetText(formatSeconds(tuning.Idle.Penalty))
	prefs.spamCount.SetText(strconv.Itoa(tuning.Click.SpamCount))
	prefs.spamWindow.SetText(strconv.FormatInt(tuning.Click.Window.Milliseconds(), 10))
	prefs.fastSpeed.SetText(strconv.FormatFloat(tuning.Scroll.FastSpeed, 'f', -1, 64))
	prefs.eggDuration.SetText(formatSeconds(tuning.Eggs.EggDuration))
	prefs.secretCombo.SetText(tuning.Eggs.SecretCombo)
	prefs.reduceMotion.SetChecked(settings.ReduceMotion)
	prefs.startPaused.SetChecked(settings.StartPaused)
	prefs.opacity.Value = settings.OverlayOpacity
	prefs.opacity.Refresh()
}

func (prefs *Window) handleSave() {
	prefs.settings = applyForm(prefs.settings, formValues{
		idleWarn:    prefs.idleWarn.Text,
		idlePenalty: prefs.idlePenalty.Text,
		spamCount:   prefs.spamCount.Text,
		spamWindow:  prefs.spamWindow.Text,
		fastSpeed:   prefs.fastSpeed.Text,
		eggDuration: prefs.eggDuration.Text,
		secretCombo: prefs.secretCombo.Text,
	})
	prefs.settings.ReduceMotion = prefs.reduceMotion.Checked
	prefs.settings.StartPaused = prefs.startPaused.Checked
	prefs.settings.OverlayOpacity = prefs.opacity.Value

	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

type formValues struct {
	idleWarn    string
	idlePenalty string
	spamCount   string
	spamWindow  string
	fastSpeed   string
	eggDuration string
	secretCombo string
}

// applyForm copies every valid field onto settings. Invalid or empty fields
// keep their previous values.
func applyForm(settings Settings, values formValues) Settings {
	tuning := &settings.Tuning
	if seconds, ok := parsePositiveFloat(values.idleWarn); ok {
		tuning.Idle.Warn = secondsToDuration(seconds)
		if tuning.Idle.WarnMax < tuning.Idle.Warn {
			tuning.Idle.WarnMax = 2 * tuning.Idle.Warn
		}
	}
	if seconds, ok := parsePositiveFloat(values.idlePenalty); ok {
		tuning.Idle.Penalty = secondsToDuration(seconds)
	}
	if count, ok := parsePositiveInt(values.spamCount); ok {
		tuning.Click.SpamCount = count
	}
	if ms, ok := parsePositiveInt(values.spamWindow); ok {
		tuning.Click.Window = time.Duration(ms) * time.Millisecond
	}
	if speed, ok := parsePositiveFloat(values.fastSpeed); ok {
		tuning.Scroll.FastSpeed = speed
	}
	if seconds, ok := parsePositiveFloat(values.eggDuration); ok {
		tuning.Eggs.EggDuration = secondsToDuration(seconds)
	}
	if combo := strings.TrimSpace(values.secretCombo); combo != "" {
		tuning.Eggs.SecretCombo = strings.ToUpper(combo)
	}
	return settings
}

func formatSeconds(value time.Duration) string {
	return strconv.FormatFloat(value.Seconds(), 'f', -1, 64)
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parsePositiveFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

