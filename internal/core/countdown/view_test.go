package countdown

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pieclock/internal/core/clockface"
)

func TestEngine_EffectiveScaleFollowsRemaining(t *testing.T) {
	clock := newFakeClock()
	engine := newEngine(clock, nil)

	engine.SetConfigured(10 * time.Minute)
	assert.Equal(t, "15m", engine.EffectiveScale().Name)

	engine.Start()
	engine.Tick(clock.Set(6 * time.Minute))
	assert.Equal(t, "5m", engine.EffectiveScale().Name)

	engine.Tick(clock.Set(9*time.Minute + 30*time.Second))
	assert.Equal(t, "60s", engine.EffectiveScale().Name)
}

func TestEngine_WarningZoneUsesDisplayedScale(t *testing.T) {
	clock := newFakeClock()
	engine := newEngine(clock, nil)
	engine.SetConfigured(10 * time.Minute)
	engine.Start()

	// 16s left is still above 5% of the 60s face.
	engine.Tick(clock.Set(10*time.Minute - 16*time.Second))
	assert.False(t, engine.InWarningZone())

	engine.Tick(clock.Set(10*time.Minute - 2*time.Second))
	assert.True(t, engine.InWarningZone())

	settings := engine.Settings()
	settings.FlashWarning = false
	engine.UpdateSettings(settings)
	assert.False(t, engine.InWarningZone())
}

func TestEngine_WarningZoneOnManualScale(t *testing.T) {
	clock := newFakeClock()
	engine := newEngine(clock, nil)
	settings := engine.Settings()
	settings.AutoScale = false
	settings.ManualScale = "60m"
	engine.UpdateSettings(settings)

	engine.SetConfigured(30 * time.Minute)
	engine.Start()
	engine.Tick(clock.Set(28 * time.Minute))
	assert.True(t, engine.InWarningZone())
	assert.Equal(t, "60m", engine.EffectiveScale().Name)
}

func TestEngine_StartReplacesClippingManualScale(t *testing.T) {
	engine := newEngine(newFakeClock(), nil)
	settings := engine.Settings()
	settings.AutoScale = false
	settings.ManualScale = "5m"
	engine.UpdateSettings(settings)

	engine.SetConfigured(20 * time.Minute)
	engine.Start()
	assert.Equal(t, "30m", engine.Settings().ManualScale)
}

func TestEngine_CycleScale(t *testing.T) {
	engine := New("t", Settings{AutoScale: true}, Options{
		Clock: newFakeClock(),
		Selector: clockface.NewSelector([]clockface.Scale{
			{Name: "60s", Max: time.Minute},
			{Name: "5m", Max: 5 * time.Minute},
			{Name: "15m", Max: 15 * time.Minute},
		}),
	})
	engine.SetConfigured(2 * time.Minute)
	require.Equal(t, "5m", engine.EffectiveScale().Name)

	engine.CycleScale()
	assert.False(t, engine.Settings().AutoScale)
	assert.Equal(t, "15m", engine.EffectiveScale().Name)

	engine.CycleScale()
	assert.Equal(t, "5m", engine.EffectiveScale().Name)
}

func TestEngine_Urgency(t *testing.T) {
	clock := newFakeClock()
	engine := newEngine(clock, nil)
	assert.Equal(t, 1.0, engine.Urgency())

	engine.SetConfigured(100 * time.Second)
	engine.Start()
	assert.Equal(t, 0.0, engine.Urgency())

	engine.Tick(clock.Set(25 * time.Second))
	assert.InDelta(t, 0.25, engine.Urgency(), 1e-9)

	engine.Tick(clock.Set(75 * time.Second))
	assert.InDelta(t, 0.75, engine.Urgency(), 1e-9)
}

func TestEngine_ViewColor(t *testing.T) {
	clock := newFakeClock()
	engine := newEngine(clock, nil)
	engine.SetConfigured(time.Minute)
	engine.Start()
	assert.Equal(t, calmColor, engine.View().Color)

	settings := engine.Settings()
	settings.AutoColor = false
	settings.ManualColor = "#102030"
	engine.UpdateSettings(settings)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, engine.View().Color)
}

func TestEngine_ViewSweep(t *testing.T) {
	clock := newFakeClock()
	engine := newEngine(clock, nil)
	engine.SetConfigured(30 * time.Minute)
	assert.InDelta(t, 360.0, engine.View().Sweep, 1e-9)

	engine.Start()
	engine.Tick(clock.Set(15 * time.Minute))
	assert.InDelta(t, 360.0, engine.View().Sweep, 1e-9)

	engine.Tick(clock.Set(20 * time.Minute))
	assert.InDelta(t, 240.0, engine.View().Sweep, 1e-9)
}

func TestUrgencyColor(t *testing.T) {
	assert.Equal(t, calmColor, UrgencyColor(-1))
	assert.Equal(t, warningColor, UrgencyColor(0.5))
	assert.Equal(t, urgentColor, UrgencyColor(1.5))
}

func TestHexColor(t *testing.T) {
	parsed, ok := ParseHexColor("#e8be42")
	require.True(t, ok)
	assert.Equal(t, "#e8be42", FormatHexColor(parsed))

	_, ok = ParseHexColor("red")
	assert.False(t, ok)
	_, ok = ParseHexColor("#zzzzzz")
	assert.False(t, ok)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		value time.Duration
		want  string
	}{
		{value: -time.Second, want: "00:00"},
		{value: 0, want: "00:00"},
		{value: 100 * time.Millisecond, want: "00:01"},
		{value: 90 * time.Second, want: "01:30"},
		{value: 59*time.Minute + 59*time.Second, want: "59:59"},
		{value: 2*time.Hour + 5*time.Minute + 7*time.Second, want: "2:05:07"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.value), tt.value.String())
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{value: "90s", want: 90 * time.Second},
		{value: "1h30m", want: 90 * time.Minute},
		{value: "25", want: 25 * time.Minute},
		{value: "5:00", want: 5 * time.Minute},
		{value: "1:02:03", want: time.Hour + 2*time.Minute + 3*time.Second},
		{value: " 0:30 ", want: 30 * time.Second},
		{value: "", wantErr: true},
		{value: "-5m", wantErr: true},
		{value: "1:75", wantErr: true},
		{value: "1:2:3:4", wantErr: true},
		{value: "soon", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.value)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidDuration, tt.value)
			continue
		}
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}
}

func TestView_Title(t *testing.T) {
	assert.Equal(t, "abc", View{ID: "abc"}.Title())
	assert.Equal(t, "0123ab", View{ID: "0123abcdef"}.Title())
	assert.Equal(t, "tea", View{ID: "0123abcdef", Settings: Settings{Label: "tea"}}.Title())
}
