package countdown

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"pieclock/internal/core/clockface"
	"pieclock/internal/core/dial"
)

// warningFraction is the share of the displayed scale that triggers the flash warning.
const warningFraction = 0.05

var (
	calmColor    = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	warningColor = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	urgentColor  = color.NRGBA{R: 0xf4, G: 0x43, B: 0x36, A: 0xff}
)

// View is an immutable copy of everything a renderer needs.
type View struct {
	ID         string
	State      State
	Configured time.Duration
	Initial    time.Duration
	Remaining  time.Duration
	// Displayed is the configured duration while idle and the remaining time otherwise.
	Displayed time.Duration
	Deadline  time.Time
	FiredAt   time.Time
	Looping   bool
	Ringing   bool
	Scale     clockface.Scale
	Sweep     float64
	Urgency   float64
	Color     color.NRGBA
	Warning   bool
	Settings  Settings
}

// View returns the current derived presentation values.
func (engine *Engine) View() View {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	scale := engine.effectiveScaleLocked()
	displayed := engine.displayedLocked()
	view := View{
		ID:         engine.id,
		State:      engine.state,
		Configured: engine.configured,
		Initial:    engine.initial,
		Remaining:  engine.remaining,
		Displayed:  displayed,
		Looping:    engine.looping,
		Ringing:    engine.ringing,
		Scale:      scale,
		Sweep:      dial.SweepAngle(displayed, scale.Max),
		Urgency:    engine.urgencyLocked(),
		Warning:    engine.inWarningZoneLocked(scale),
		Settings:   engine.settings,
	}
	switch engine.state {
	case StateRunning:
		view.Deadline = engine.deadline
	case StateAlarming:
		view.FiredAt = engine.deadline
	}
	view.Color = engine.colorLocked(view.Urgency)
	return view
}

// Title returns the user label, or a short form of the id.
func (view View) Title() string {
	if view.Settings.Label != "" {
		return view.Settings.Label
	}
	if len(view.ID) > 6 {
		return view.ID[:6]
	}
	return view.ID
}

// EffectiveScale returns the watchface currently used for display.
func (engine *Engine) EffectiveScale() clockface.Scale {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.effectiveScaleLocked()
}

// Urgency returns the elapsed fraction of the initial duration in [0, 1].
func (engine *Engine) Urgency() float64 {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.urgencyLocked()
}

// InWarningZone reports whether a running timer is in the final 5% of its displayed scale.
func (engine *Engine) InWarningZone() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.inWarningZoneLocked(engine.effectiveScaleLocked())
}

func (engine *Engine) displayedLocked() time.Duration {
	if engine.state == StateIdle {
		return engine.configured
	}
	return engine.remaining
}

func (engine *Engine) effectiveScaleLocked() clockface.Scale {
	selector := engine.options.Selector
	if !engine.settings.AutoScale {
		if scale, ok := selector.Lookup(engine.settings.ManualScale); ok {
			return scale
		}
	}
	return selector.BestFit(engine.displayedLocked())
}

func (engine *Engine) urgencyLocked() float64 {
	if engine.initial <= 0 {
		return 1
	}
	urgency := float64(engine.initial-engine.remaining) / float64(engine.initial)
	if urgency < 0 {
		return 0
	}
	if urgency > 1 {
		return 1
	}
	return urgency
}

func (engine *Engine) inWarningZoneLocked(scale clockface.Scale) bool {
	if !engine.settings.FlashWarning || engine.state != StateRunning || scale.Max <= 0 {
		return false
	}
	return float64(engine.remaining)/float64(scale.Max) < warningFraction
}

func (engine *Engine) colorLocked(urgency float64) color.NRGBA {
	if !engine.settings.AutoColor {
		if manual, ok := ParseHexColor(engine.settings.ManualColor); ok {
			return manual
		}
	}
	return UrgencyColor(urgency)
}

// UrgencyColor maps urgency onto a green, amber, red gradient.
func UrgencyColor(urgency float64) color.NRGBA {
	switch {
	case urgency <= 0:
		return calmColor
	case urgency >= 1:
		return urgentColor
	case urgency < 0.5:
		return lerpColor(calmColor, warningColor, urgency*2)
	default:
		return lerpColor(warningColor, urgentColor, (urgency-0.5)*2)
	}
}

// ParseHexColor parses "#rrggbb" or "rrggbb".
func ParseHexColor(value string) (color.NRGBA, bool) {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(value) != 6 {
		return color.NRGBA{}, false
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(parsed >> 16), G: uint8(parsed >> 8), B: uint8(parsed), A: 0xff}, true
}

// FormatHexColor renders a color as "#rrggbb".
func FormatHexColor(value color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", value.R, value.G, value.B)
}

func lerpColor(from, to color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(from.R) + t*(float64(to.R)-float64(from.R))),
		G: uint8(float64(from.G) + t*(float64(to.G)-float64(from.G))),
		B: uint8(float64(from.B) + t*(float64(to.B)-float64(from.B))),
		A: uint8(float64(from.A) + t*(float64(to.A)-float64(from.A))),
	}
}
