// Package face draws a countdown as a pie over a clock face and turns drags
// on it into new remaining times.
package face

import (
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"pieclock/internal/core/clockface"
	"pieclock/internal/core/countdown"
	"pieclock/internal/core/dial"
)

const (
	minSide     = float32(120)
	tickCount   = 12
	tickDegrees = 1.2
	ringWidth   = 0.08
	blinkPeriod = 500 * time.Millisecond
)

var (
	faceColor  = color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	tickColor  = color.NRGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	alarmColor = color.NRGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
	flashColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Face is the dial widget of one timer.
type Face struct {
	widget.BaseWidget

	engine    *countdown.Engine
	direction dial.Direction
	raster    *canvas.Raster

	mu        sync.RWMutex
	view      countdown.View
	dragScale clockface.Scale
	now       func() time.Time

	// OnTapped runs when the face is tapped without dragging.
	OnTapped func()
}

// New creates a face for engine.
func New(engine *countdown.Engine, direction dial.Direction) *Face {
	face := &Face{
		engine:    engine,
		direction: direction,
		view:      engine.View(),
		now:       time.Now,
	}
	face.raster = canvas.NewRasterWithPixels(face.colorAt)
	face.ExtendBaseWidget(face)
	return face
}

// SetDirection switches the sweep direction.
func (face *Face) SetDirection(direction dial.Direction) {
	face.mu.Lock()
	face.direction = direction
	face.mu.Unlock()
	face.Refresh()
}

// Refresh re-reads the engine and redraws.
func (face *Face) Refresh() {
	view := face.engine.View()
	face.mu.Lock()
	face.view = view
	face.mu.Unlock()
	face.BaseWidget.Refresh()
}

// MinSize keeps the dial usable.
func (face *Face) MinSize() fyne.Size {
	return fyne.NewSize(minSide, minSide)
}

// Tapped forwards to OnTapped.
func (face *Face) Tapped(_ *fyne.PointEvent) {
	if face.OnTapped != nil {
		face.OnTapped()
	}
}

// Dragged sets the remaining time from the pointer angle. The watchface is
// fixed for the whole gesture so the pie does not jump between scales.
func (face *Face) Dragged(event *fyne.DragEvent) {
	size := face.Size()
	radius := float64(fyne.Min(size.Width, size.Height)) / 2
	offset := dial.Offset{
		X: float64(event.Position.X) - float64(size.Width)/2,
		Y: float64(event.Position.Y) - float64(size.Height)/2,
	}

	face.mu.Lock()
	if face.dragScale.Max == 0 {
		face.dragScale = face.engine.EffectiveScale()
	}
	scale := face.dragScale
	direction := face.direction
	face.mu.Unlock()

	angle := dial.AngleFromDrag(offset, radius)
	if direction == dial.CounterClockwise && angle > 0 {
		angle = 360 - angle
	}
	face.engine.SetRemainingDirectly(dial.DurationFromAngle(angle, scale.Max))
	face.Refresh()
}

// DragEnd releases the watchface captured by Dragged.
func (face *Face) DragEnd() {
	face.mu.Lock()
	face.dragScale = clockface.Scale{}
	face.mu.Unlock()
	face.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (face *Face) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(face.raster)
}

func (face *Face) colorAt(x, y, w, h int) color.Color {
	face.mu.RLock()
	view := face.view
	direction := face.direction
	face.mu.RUnlock()

	radius := math.Min(float64(w), float64(h)) / 2
	offset := dial.Offset{X: float64(x) + 0.5 - float64(w)/2, Y: float64(y) + 0.5 - float64(h)/2}
	distance := math.Hypot(offset.X, offset.Y)
	if radius <= 0 || distance > radius {
		return color.Transparent
	}

	angle := dial.AngleFromDrag(offset, radius)
	outer := distance > radius*(1-ringWidth)
	blink := face.now().UnixNano()/int64(blinkPeriod)%2 == 0

	switch {
	case view.State == countdown.StateAlarming && outer:
		if blink {
			return alarmColor
		}
		return faceColor
	case outer && isTick(angle):
		return tickColor
	case dial.Contains(angle, view.Sweep, direction):
		if view.Warning && blink {
			return flashColor
		}
		if view.State == countdown.StatePaused {
			return faded(view.Color)
		}
		return view.Color
	default:
		return faceColor
	}
}

func isTick(angle float64) bool {
	step := 360.0 / tickCount
	mod := math.Mod(angle, step)
	return mod < tickDegrees/2 || step-mod < tickDegrees/2
}

func faded(value color.NRGBA) color.NRGBA {
	value.A = 0x80
	return value
}
