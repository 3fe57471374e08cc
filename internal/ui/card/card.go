// Package card builds the control card shown for each timer.
package card

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pieclock/internal/core/countdown"
	"pieclock/internal/core/dial"
	"pieclock/internal/ui/face"
)

const endedLayout = "15:04"

var alarmTextColor = color.NRGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}

// Options configures a card.
type Options struct {
	Direction dial.Direction
	// Sounds lists the selectable alarm sounds.
	Sounds []string
	// Window parents the color picker. Without it the color button is hidden.
	Window fyne.Window
	// OnRemove is invoked with the timer id when the user removes the card.
	OnRemove func(id string)
	// OnMove is invoked with the timer id and -1 or +1.
	OnMove func(id string, delta int)
}

// Card holds the widgets of one timer.
type Card struct {
	engine  *countdown.Engine
	options Options

	face      *face.Face
	label     *widget.Entry
	timeText  *canvas.Text
	status    *widget.Label
	duration  *widget.Entry
	primary   *widget.Button
	cancel    *widget.Button
	restart   *widget.Button
	scale     *widget.Button
	loop      *widget.Check
	sound     *widget.Select
	autoColor *widget.Check
	content   fyne.CanvasObject

	syncedLabel string
}

// New builds the card for engine.
func New(engine *countdown.Engine, options Options) *Card {
	card := &Card{engine: engine, options: options}

	card.face = face.New(engine, options.Direction)
	card.face.OnTapped = card.toggle

	card.label = widget.NewEntry()
	card.label.SetPlaceHolder("Label")
	card.label.OnSubmitted = card.setLabel

	card.timeText = canvas.NewText("00:00", theme.Color(theme.ColorNameForeground))
	card.timeText.Alignment = fyne.TextAlignCenter
	card.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	card.timeText.TextSize = 28

	card.status = widget.NewLabel("")
	card.status.Alignment = fyne.TextAlignCenter

	card.duration = widget.NewEntry()
	card.duration.SetPlaceHolder("5m, 90s or 1:30")
	card.duration.Validator = func(value string) error {
		_, err := countdown.ParseDuration(value)
		return err
	}
	card.duration.OnSubmitted = card.setDuration

	card.primary = widget.NewButton("Start", card.toggle)
	card.primary.Importance = widget.HighImportance
	card.cancel = widget.NewButton("Cancel", engine.Cancel)
	card.restart = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), engine.Restart)
	card.scale = widget.NewButton("", card.cycleScale)

	card.loop = widget.NewCheck("Loop", nil)
	card.loop.OnChanged = engine.SetLooping

	card.sound = widget.NewSelect(options.Sounds, nil)
	card.sound.OnChanged = card.setSound

	card.autoColor = widget.NewCheck("Auto color", nil)
	card.autoColor.OnChanged = card.setAutoColor

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if card.options.OnRemove != nil {
			card.options.OnRemove(engine.ID())
		}
	})
	up := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() { card.move(-1) })
	down := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() { card.move(1) })

	colorRow := container.NewHBox(card.autoColor)
	if options.Window != nil {
		colorRow.Add(widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), card.pickColor))
	}

	header := container.NewBorder(nil, nil, nil, container.NewHBox(up, down, remove), card.label)
	controls := container.NewHBox(card.primary, card.cancel, card.restart, layout.NewSpacer(), card.scale)
	settings := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Set"), nil, card.duration),
		container.NewBorder(nil, nil, widget.NewLabel("Sound"), nil, card.sound),
		container.NewHBox(card.loop, layout.NewSpacer(), colorRow),
	)
	card.content = widget.NewCard("", "", container.NewVBox(
		header,
		card.face,
		card.timeText,
		card.status,
		controls,
		settings,
	))

	card.Refresh()
	return card
}

// Content returns the card's canvas object.
func (card *Card) Content() fyne.CanvasObject {
	return card.content
}

// Engine returns the timer behind the card.
func (card *Card) Engine() *countdown.Engine {
	return card.engine
}

// SetDirection switches the sweep direction of the face.
func (card *Card) SetDirection(direction dial.Direction) {
	card.options.Direction = direction
	card.face.SetDirection(direction)
}

// Refresh synchronizes every widget with the timer. Call it on the fyne thread.
func (card *Card) Refresh() {
	view := card.engine.View()

	card.face.Refresh()

	card.timeText.Text = countdown.FormatDuration(view.Displayed)
	if view.State == countdown.StateAlarming {
		card.timeText.Color = alarmTextColor
	} else {
		card.timeText.Color = theme.Color(theme.ColorNameForeground)
	}
	card.timeText.Refresh()

	card.status.SetText(statusText(view))

	card.primary.SetText(primaryText(view.State))
	setEnabled(card.primary, view.State != countdown.StateIdle || view.Configured > 0)
	setEnabled(card.cancel, view.State == countdown.StateRunning || view.State == countdown.StatePaused)
	setEnabled(card.restart, view.State != countdown.StateIdle && view.Initial > 0)

	if view.Settings.AutoScale {
		card.scale.SetText(view.Scale.Name + " (auto)")
	} else {
		card.scale.SetText(view.Scale.Name)
	}

	// Only follow label changes made elsewhere so typing is not overwritten.
	if view.Settings.Label != card.syncedLabel {
		card.syncedLabel = view.Settings.Label
		card.label.SetText(view.Settings.Label)
	}
	if card.loop.Checked != view.Looping {
		card.loop.SetChecked(view.Looping)
	}
	if card.sound.Selected != view.Settings.Sound {
		card.sound.SetSelected(view.Settings.Sound)
	}
	if card.autoColor.Checked != view.Settings.AutoColor {
		card.autoColor.SetChecked(view.Settings.AutoColor)
	}
}

func (card *Card) toggle() {
	card.engine.Toggle()
	card.Refresh()
}

func (card *Card) cycleScale() {
	card.engine.CycleScale()
	card.Refresh()
}

func (card *Card) move(delta int) {
	if card.options.OnMove != nil {
		card.options.OnMove(card.engine.ID(), delta)
	}
}

func (card *Card) setLabel(label string) {
	settings := card.engine.Settings()
	if settings.Label == label {
		return
	}
	settings.Label = label
	card.engine.UpdateSettings(settings)
}

func (card *Card) setSound(sound string) {
	settings := card.engine.Settings()
	if sound == "" || settings.Sound == sound {
		return
	}
	settings.Sound = sound
	card.engine.UpdateSettings(settings)
}

func (card *Card) setAutoColor(auto bool) {
	settings := card.engine.Settings()
	if settings.AutoColor == auto {
		return
	}
	settings.AutoColor = auto
	card.engine.UpdateSettings(settings)
	card.Refresh()
}

func (card *Card) setDuration(value string) {
	duration, err := countdown.ParseDuration(value)
	if err != nil {
		return
	}
	if card.engine.State() == countdown.StateIdle {
		card.engine.SetConfigured(duration)
	} else {
		card.engine.SetRemainingDirectly(duration)
	}
	card.duration.SetText("")
	card.Refresh()
}

func (card *Card) pickColor() {
	picker := dialog.NewColorPicker("Timer color", "Pick the pie color", func(picked color.Color) {
		card.setManualColor(color.NRGBAModel.Convert(picked).(color.NRGBA))
	}, card.options.Window)
	picker.Advanced = true
	picker.Show()
}

func (card *Card) setManualColor(value color.NRGBA) {
	settings := card.engine.Settings()
	settings.ManualColor = countdown.FormatHexColor(value)
	settings.AutoColor = false
	card.engine.UpdateSettings(settings)
	card.Refresh()
}

func primaryText(state countdown.State) string {
	switch state {
	case countdown.StateRunning:
		return "Pause"
	case countdown.StatePaused:
		return "Resume"
	case countdown.StateAlarming:
		return "Dismiss"
	default:
		return "Start"
	}
}

func statusText(view countdown.View) string {
	switch view.State {
	case countdown.StateRunning:
		return fmt.Sprintf("ends %s", view.Deadline.Local().Format(endedLayout))
	case countdown.StateAlarming:
		return fmt.Sprintf("ended %s", view.FiredAt.Local().Format(endedLayout))
	case countdown.StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
