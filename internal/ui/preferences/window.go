// Package preferences provides the settings window of the desktop app.
package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pieclock/internal/config"
	"pieclock/internal/core/clockface"
	"pieclock/internal/core/dial"
)

const (
	directionClockwise        = "Clockwise"
	directionCounterClockwise = "Counter-clockwise"
)

var stores = []string{"file", "sqlite"}

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  config.Settings
	onSave    func(config.Settings)
	sound     *widget.Select
	alarmSecs *widget.Entry
	flash     *widget.Check
	direction *widget.RadioGroup
	scales    *widget.Entry
	tickMs    *widget.Entry
	saveSecs  *widget.Entry
	store     *widget.Select
}

// New creates a preferences window offering sounds as the alarm choices.
func New(app fyne.App, settings config.Settings, sounds []string, onSave func(config.Settings)) *Window {
	window := app.NewWindow("Pie Clock Settings")

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		sound:     widget.NewSelect(sounds, nil),
		alarmSecs: widget.NewEntry(),
		flash:     widget.NewCheck("Flash in the last 5% of the face", nil),
		direction: widget.NewRadioGroup([]string{directionClockwise, directionCounterClockwise}, nil),
		scales:    widget.NewEntry(),
		tickMs:    widget.NewEntry(),
		saveSecs:  widget.NewEntry(),
		store:     widget.NewSelect(stores, nil),
	}
	prefs.direction.Horizontal = true
	prefs.scales.SetPlaceHolder(strings.Join(defaultScaleNames(), ", "))

	form := container.NewVBox(
		widget.NewLabelWithStyle("New timers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Alarm sound"), nil, prefs.sound),
		container.NewHBox(widget.NewLabel("Ring for"), prefs.alarmSecs, widget.NewLabel("sec")),
		prefs.flash,
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.direction,
		widget.NewLabel("Watchfaces"),
		prefs.scales,
		widget.NewLabelWithStyle("Advanced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Tick every"), prefs.tickMs, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Save every"), prefs.saveSecs, widget.NewLabel("sec")),
		container.NewBorder(nil, nil, widget.NewLabel("Storage (after restart)"), nil, prefs.store),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(440, 520))

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() config.Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings config.Settings) {
	prefs.settings = settings
	prefs.sound.SetSelected(settings.DefaultSound)
	prefs.alarmSecs.SetText(fmt.Sprintf("%d", int(settings.AlarmPlayDuration.Seconds())))
	prefs.flash.SetChecked(settings.FlashWarning)
	if settings.SweepDirection == dial.CounterClockwise {
		prefs.direction.SetSelected(directionCounterClockwise)
	} else {
		prefs.direction.SetSelected(directionClockwise)
	}
	prefs.scales.SetText(strings.Join(settings.Scales, ", "))
	prefs.tickMs.SetText(fmt.Sprintf("%d", settings.TickInterval.Milliseconds()))
	prefs.saveSecs.SetText(fmt.Sprintf("%d", int(settings.SaveInterval.Seconds())))
	prefs.store.SetSelected(settings.Store)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if prefs.sound.Selected != "" {
		settings.DefaultSound = prefs.sound.Selected
	}
	if seconds, ok := parsePositiveInt(prefs.alarmSecs.Text); ok && seconds <= 600 {
		settings.AlarmPlayDuration = time.Duration(seconds) * time.Second
	}
	settings.FlashWarning = prefs.flash.Checked
	if prefs.direction.Selected == directionCounterClockwise {
		settings.SweepDirection = dial.CounterClockwise
	} else {
		settings.SweepDirection = dial.Clockwise
	}
	if scales, ok := parseScales(prefs.scales.Text); ok {
		settings.Scales = scales
	}
	if millis, ok := parsePositiveInt(prefs.tickMs.Text); ok && millis >= 10 && millis <= 1000 {
		settings.TickInterval = time.Duration(millis) * time.Millisecond
	}
	if seconds, ok := parsePositiveInt(prefs.saveSecs.Text); ok {
		settings.SaveInterval = time.Duration(seconds) * time.Second
	}
	if prefs.store.Selected != "" {
		settings.Store = prefs.store.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// parseScales splits a comma separated list. An empty list selects the
// built-in faces; an invalid one is rejected as a whole.
func parseScales(value string) ([]string, bool) {
	var names []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	if len(names) == 0 {
		return nil, true
	}
	if _, err := clockface.ParseScales(names); err != nil {
		return nil, false
	}
	return names, true
}

func defaultScaleNames() []string {
	names := make([]string, 0, len(clockface.DefaultScales))
	for _, scale := range clockface.DefaultScales {
		names = append(names, scale.Name)
	}
	return names
}
