// Package config holds the user preferences shared by the desktop app and the CLI.
package config

import (
	"log"
	"time"

	"pieclock/internal/core/clockface"
	"pieclock/internal/core/collection"
	"pieclock/internal/core/dial"
	"pieclock/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	TickInterval      time.Duration
	SaveInterval      time.Duration
	DefaultSound      string
	AlarmPlayDuration time.Duration
	FlashWarning      bool
	SweepDirection    dial.Direction
	// Scales lists watchface names such as "90m"; empty means the built-in set.
	Scales []string
	Store  string
}

// DefaultSettings returns default settings for pieclock.
func DefaultSettings() Settings {
	defaults := model.DefaultTimerDefaults()
	return Settings{
		TickInterval:      100 * time.Millisecond,
		SaveInterval:      5 * time.Second,
		DefaultSound:      defaults.Sound,
		AlarmPlayDuration: defaults.AlarmPlayDuration,
		FlashWarning:      defaults.FlashWarning,
		SweepDirection:    dial.Clockwise,
		Store:             "file",
	}
}

// TimerDefaults converts settings to the defaults applied to new timers.
func (settings Settings) TimerDefaults() model.TimerDefaults {
	defaults := model.DefaultTimerDefaults()
	if settings.DefaultSound != "" {
		defaults.Sound = settings.DefaultSound
	}
	if settings.AlarmPlayDuration > 0 {
		defaults.AlarmPlayDuration = settings.AlarmPlayDuration
	}
	defaults.FlashWarning = settings.FlashWarning
	return defaults
}

// Selector builds the watchface selector. Unparseable scales fall back to the defaults.
func (settings Settings) Selector() *clockface.Selector {
	if len(settings.Scales) == 0 {
		return clockface.Default()
	}
	scales, err := clockface.ParseScales(settings.Scales)
	if err != nil {
		log.Printf("scales: %v", err)
		return clockface.Default()
	}
	return clockface.NewSelector(scales)
}

// RunOptions converts settings to the collection driver options.
func (settings Settings) RunOptions() collection.Options {
	return collection.Options{
		TickInterval: settings.TickInterval,
		SaveInterval: settings.SaveInterval,
	}
}
