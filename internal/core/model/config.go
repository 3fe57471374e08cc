package model

import "time"

// TimerDefaults holds the presentation settings applied to newly created timers
// and to snapshot records that omit optional fields.
type TimerDefaults struct {
	Sound             string
	AlarmPlayDuration time.Duration
	AutoScale         bool
	AutoColor         bool
	FlashWarning      bool
	ManualColor       string
}

// SoundNone disables the audible alarm for a timer.
const SoundNone = "None"

// DefaultTimerDefaults returns the documented fallback values.
func DefaultTimerDefaults() TimerDefaults {
	return TimerDefaults{
		Sound:             "Glass",
		AlarmPlayDuration: 10 * time.Second,
		AutoScale:         true,
		AutoColor:         true,
		FlashWarning:      true,
		ManualColor:       "#e8be42",
	}
}
