package dial

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAngleFromDrag(t *testing.T) {
	tests := []struct {
		name   string
		offset Offset
		want   float64
	}{
		{name: "above center", offset: Offset{X: 0, Y: -40}, want: 0},
		{name: "right of center", offset: Offset{X: 40, Y: 0}, want: 90},
		{name: "below center", offset: Offset{X: 0, Y: 40}, want: 180},
		{name: "left of center", offset: Offset{X: -40, Y: 0}, want: 270},
		{name: "upper right diagonal", offset: Offset{X: 10, Y: -10}, want: 45},
		{name: "upper left diagonal", offset: Offset{X: -10, Y: -10}, want: 315},
		{name: "center", offset: Offset{}, want: 0},
		{name: "nan", offset: Offset{X: math.NaN(), Y: 1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngleFromDrag(tt.offset, 40)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestAngleFromDrag_RadiusDoesNotChangeAngle(t *testing.T) {
	offset := Offset{X: 3, Y: 4}
	assert.InDelta(t, AngleFromDrag(offset, 1), AngleFromDrag(offset, 250), 1e-9)
	assert.InDelta(t, AngleFromDrag(offset, 1), AngleFromDrag(offset, 0), 1e-9)
}

func TestDurationFromAngle(t *testing.T) {
	tests := []struct {
		name     string
		angle    float64
		scaleMax time.Duration
		want     time.Duration
	}{
		{name: "quarter of an hour", angle: 90, scaleMax: time.Hour, want: 15 * time.Minute},
		{name: "rounds down below half step", angle: 1, scaleMax: time.Hour, want: 0},
		{name: "rounds up past half step", angle: 2, scaleMax: time.Hour, want: 30 * time.Second},
		{name: "almost full turn", angle: 359.99, scaleMax: time.Hour, want: time.Hour},
		{name: "negative angle normalizes", angle: -90, scaleMax: time.Hour, want: 45 * time.Minute},
		{name: "zero scale", angle: 180, scaleMax: 0, want: 0},
		{name: "nan angle", angle: math.NaN(), scaleMax: time.Hour, want: 0},
		{name: "scale not on grid", angle: 359.9, scaleMax: 100 * time.Second, want: 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationFromAngle(tt.angle, tt.scaleMax))
		})
	}
}

func TestDurationFromAngle_SnapGrid(t *testing.T) {
	scales := []time.Duration{time.Minute, 5 * time.Minute, 9 * time.Minute, 90 * time.Minute, 96 * time.Hour, 100 * time.Second}
	for _, scale := range scales {
		for angle := -30.0; angle < 400; angle += 0.7 {
			got := DurationFromAngle(angle, scale)
			assert.Zero(t, got%SnapInterval, "angle %v scale %v", angle, scale)
			assert.GreaterOrEqual(t, got, time.Duration(0))
			assert.LessOrEqual(t, got, scale)
		}
	}
}

func TestDragDuration(t *testing.T) {
	assert.Equal(t, 30*time.Minute, DragDuration(Offset{X: 0, Y: 50}, 50, time.Hour))
}

func TestSweepAngle(t *testing.T) {
	assert.InDelta(t, 180.0, SweepAngle(30*time.Minute, time.Hour), 1e-9)
	assert.InDelta(t, 360.0, SweepAngle(2*time.Hour, time.Hour), 1e-9)
	assert.Zero(t, SweepAngle(time.Minute, 0))
	assert.Zero(t, SweepAngle(-time.Minute, time.Hour))
}

func TestArcAndContains(t *testing.T) {
	start, extent := Arc(90, Clockwise)
	assert.Zero(t, start)
	assert.Equal(t, 90.0, extent)
	assert.True(t, Contains(45, 90, Clockwise))
	assert.False(t, Contains(135, 90, Clockwise))

	start, extent = Arc(90, CounterClockwise)
	assert.Zero(t, start)
	assert.Equal(t, -90.0, extent)
	assert.True(t, Contains(300, 90, CounterClockwise))
	assert.False(t, Contains(45, 90, CounterClockwise))

	assert.False(t, Contains(10, 0, Clockwise))
	assert.True(t, Contains(200, 360, CounterClockwise))
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, CounterClockwise, ParseDirection("counter_clockwise"))
	assert.Equal(t, Clockwise, ParseDirection("bogus"))
}
