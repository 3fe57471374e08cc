package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pieclock/internal/config"
	"pieclock/internal/core/dial"
)

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), settings)
}

func TestSettings_SaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pieclock")
	settings := config.DefaultSettings()
	settings.TickInterval = 250 * time.Millisecond
	settings.SaveInterval = 30 * time.Second
	settings.DefaultSound = "Ping"
	settings.AlarmPlayDuration = 4 * time.Second
	settings.FlashWarning = false
	settings.SweepDirection = dial.CounterClockwise
	settings.Scales = []string{"10m", "1h"}
	settings.Store = BackendSQLite

	require.NoError(t, SaveSettings(dir, settings))
	loaded, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadSettings_IgnoresInvalidValues(t *testing.T) {
	dir := t.TempDir()
	raw := "tick_interval_ms: 5\nsave_interval_seconds: -1\nalarm_play_seconds: 9999\nsweep_direction: sideways\nstore: redis\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte(raw), 0o644))

	settings, err := LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSettings(), settings)
}

func TestLoadSettings_ParseError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, settingsFileName), []byte("scales: [oops"), 0o644))

	settings, err := LoadSettings(dir)
	assert.Error(t, err)
	assert.Equal(t, config.DefaultSettings(), settings)
}
