package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pieclock/internal/core/clockface"
)

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, 100*time.Millisecond, settings.RunOptions().TickInterval)
	assert.Equal(t, 5*time.Second, settings.RunOptions().SaveInterval)
	assert.Equal(t, "Glass", settings.TimerDefaults().Sound)
	assert.Equal(t, clockface.DefaultScales, settings.Selector().Scales())
}

func TestSettings_TimerDefaults(t *testing.T) {
	settings := DefaultSettings()
	settings.DefaultSound = "Ping"
	settings.AlarmPlayDuration = 3 * time.Second
	settings.FlashWarning = false

	defaults := settings.TimerDefaults()
	assert.Equal(t, "Ping", defaults.Sound)
	assert.Equal(t, 3*time.Second, defaults.AlarmPlayDuration)
	assert.False(t, defaults.FlashWarning)
	assert.True(t, defaults.AutoScale)
}

func TestSettings_Selector(t *testing.T) {
	settings := DefaultSettings()
	settings.Scales = []string{"10m", "1h"}
	scales := settings.Selector().Scales()
	assert.Len(t, scales, 2)
	assert.Equal(t, 10*time.Minute, scales[0].Max)

	settings.Scales = []string{"soon"}
	assert.Equal(t, clockface.DefaultScales, settings.Selector().Scales())
}
