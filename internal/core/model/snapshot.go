package model

import (
	"math"
	"time"
)

// SnapshotVersion is written into every snapshot produced by this build.
const SnapshotVersion = 1

// Snapshot is the persisted form of a timer collection.
type Snapshot struct {
	Version int       `yaml:"version"`
	SavedAt time.Time `yaml:"saved_at"`
	Timers  []Record  `yaml:"timers"`
}

// Record is the flattened state of one countdown.
// Durations are stored in milliseconds. Deadline is absolute so that a
// snapshot restored later can account for the time the process was not running.
// Pointer fields are optional and fall back to TimerDefaults when absent.
type Record struct {
	ID               string     `yaml:"id"`
	Label            string     `yaml:"label,omitempty"`
	State            string     `yaml:"state"`
	ConfiguredMillis int64      `yaml:"configured_ms"`
	InitialMillis    int64      `yaml:"initial_ms"`
	RemainingMillis  int64      `yaml:"remaining_ms"`
	Deadline         *time.Time `yaml:"deadline,omitempty"`
	Looping          bool       `yaml:"looping,omitempty"`

	Sound           *string `yaml:"sound,omitempty"`
	AlarmPlayMillis *int64  `yaml:"alarm_play_ms,omitempty"`
	// AlarmPlaySeconds is read from snapshots written before alarm_play_ms.
	AlarmPlaySeconds *int   `yaml:"alarm_play_seconds,omitempty"`
	ManualScale      string `yaml:"manual_scale,omitempty"`
	AutoScale        *bool  `yaml:"auto_scale,omitempty"`
	ManualColor      string `yaml:"manual_color,omitempty"`
	AutoColor        *bool  `yaml:"auto_color,omitempty"`
	FlashWarning     *bool  `yaml:"flash_warning,omitempty"`
}

const (
	maxMillis  = math.MaxInt64 / int64(time.Millisecond)
	maxSeconds = math.MaxInt64 / int64(time.Second)
)

// Millis converts a duration into the record's millisecond unit.
func Millis(value time.Duration) int64 {
	return int64(value / time.Millisecond)
}

// FromMillis converts a record millisecond value back into a duration.
// Negative values are clamped to zero and values past the duration range to
// the largest representable millisecond count.
func FromMillis(value int64) time.Duration {
	if value <= 0 {
		return 0
	}
	if value > maxMillis {
		value = maxMillis
	}
	return time.Duration(value) * time.Millisecond
}

// FromSeconds is FromMillis for whole seconds.
func FromSeconds(value int64) time.Duration {
	if value <= 0 {
		return 0
	}
	if value > maxSeconds {
		value = maxSeconds
	}
	return time.Duration(value) * time.Second
}

// BoolOr dereferences an optional flag.
func BoolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
