// Package dial converts between pointer geometry on a clock face and durations.
package dial

import (
	"math"
	"time"
)

// SnapInterval is the granularity of durations produced by dragging the dial.
const SnapInterval = 30 * time.Second

// Offset is a pointer position relative to the dial center in screen
// coordinates: X grows to the right and Y grows downward.
type Offset struct {
	X float64
	Y float64
}

// Direction selects how the remaining-time pie is laid out from 12 o'clock.
type Direction string

const (
	// Clockwise draws the pie from 12 o'clock clockwise; it shrinks back toward 12 as time runs out.
	Clockwise Direction = "clockwise"
	// CounterClockwise mirrors Clockwise.
	CounterClockwise Direction = "counter_clockwise"
)

// ParseDirection maps a configuration string onto a Direction, defaulting to Clockwise.
func ParseDirection(value string) Direction {
	if Direction(value) == CounterClockwise {
		return CounterClockwise
	}
	return Clockwise
}

// AngleFromDrag returns the angle of offset measured clockwise from 12 o'clock,
// in degrees within [0, 360). The radius only normalizes the offset.
func AngleFromDrag(offset Offset, radius float64) float64 {
	x, y := offset.X, offset.Y
	if radius > 0 && !math.IsInf(radius, 0) {
		x /= radius
		y /= radius
	}
	if !finite(x) || !finite(y) || (x == 0 && y == 0) {
		return 0
	}
	return normalizeAngle(math.Atan2(x, -y) * 180 / math.Pi)
}

// DurationFromAngle maps an angle onto a scale of scaleMax per revolution,
// snapped to the nearest SnapInterval and clamped to [0, scaleMax].
func DurationFromAngle(angle float64, scaleMax time.Duration) time.Duration {
	if scaleMax <= 0 || !finite(angle) {
		return 0
	}
	angle = normalizeAngle(angle)
	raw := angle / 360 * float64(scaleMax)
	snapped := Snap(time.Duration(raw))
	ceiling := scaleMax - scaleMax%SnapInterval
	if snapped > ceiling {
		snapped = ceiling
	}
	if snapped < 0 {
		return 0
	}
	return snapped
}

// DragDuration converts a pointer offset straight into a snapped duration.
func DragDuration(offset Offset, radius float64, scaleMax time.Duration) time.Duration {
	return DurationFromAngle(AngleFromDrag(offset, radius), scaleMax)
}

// SweepAngle returns the pie extent in degrees for remaining on a scale of scaleMax.
func SweepAngle(remaining, scaleMax time.Duration) float64 {
	if scaleMax <= 0 || remaining <= 0 {
		return 0
	}
	sweep := float64(remaining) / float64(scaleMax) * 360
	if sweep > 360 {
		return 360
	}
	return sweep
}

// Arc returns the start angle and signed extent of the pie slice, both in
// degrees clockwise from 12 o'clock.
func Arc(sweep float64, direction Direction) (start, extent float64) {
	if direction == CounterClockwise {
		return 0, -sweep
	}
	return 0, sweep
}

// Contains reports whether angle (clockwise from 12 o'clock) falls inside the
// slice returned by Arc.
func Contains(angle, sweep float64, direction Direction) bool {
	if sweep <= 0 {
		return false
	}
	if sweep >= 360 {
		return true
	}
	angle = normalizeAngle(angle)
	if direction == CounterClockwise {
		return angle == 0 || angle >= 360-sweep
	}
	return angle <= sweep
}

// Snap rounds value to the nearest SnapInterval.
func Snap(value time.Duration) time.Duration {
	if value <= 0 {
		return 0
	}
	return value.Round(SnapInterval)
}

func normalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	if angle >= 360 {
		angle = 0
	}
	return angle
}

func finite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
