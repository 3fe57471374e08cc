package countdown

import (
	"time"

	"pieclock/internal/core/model"
)

// Record flattens the engine into its persisted form.
func (engine *Engine) Record() model.Record {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	sound := engine.settings.Sound
	playMillis := model.Millis(engine.settings.AlarmPlayDuration)
	autoScale := engine.settings.AutoScale
	autoColor := engine.settings.AutoColor
	flash := engine.settings.FlashWarning

	record := model.Record{
		ID:               engine.id,
		Label:            engine.settings.Label,
		State:            string(engine.state),
		ConfiguredMillis: model.Millis(engine.configured),
		InitialMillis:    model.Millis(engine.initial),
		RemainingMillis:  model.Millis(engine.remaining),
		Looping:          engine.looping,
		Sound:            &sound,
		AlarmPlayMillis:  &playMillis,
		ManualScale:      engine.settings.ManualScale,
		AutoScale:        &autoScale,
		ManualColor:      engine.settings.ManualColor,
		AutoColor:        &autoColor,
		FlashWarning:     &flash,
	}
	if !engine.deadline.IsZero() {
		deadline := engine.deadline
		record.Deadline = &deadline
	}
	return record
}

// Restore rebuilds an engine from a record. A running record whose deadline
// has already passed at now comes back idle with nothing remaining; alarms are
// never replayed on restore.
func Restore(record model.Record, now time.Time, defaults model.TimerDefaults, options Options) *Engine {
	settings := SettingsFromDefaults(defaults)
	settings.Label = record.Label
	if record.Sound != nil {
		settings.Sound = *record.Sound
	}
	switch {
	case record.AlarmPlayMillis != nil && *record.AlarmPlayMillis >= 0:
		settings.AlarmPlayDuration = model.FromMillis(*record.AlarmPlayMillis)
	case record.AlarmPlaySeconds != nil && *record.AlarmPlaySeconds >= 0:
		settings.AlarmPlayDuration = model.FromSeconds(int64(*record.AlarmPlaySeconds))
	}
	settings.ManualScale = record.ManualScale
	settings.AutoScale = model.BoolOr(record.AutoScale, defaults.AutoScale)
	if record.ManualColor != "" {
		settings.ManualColor = record.ManualColor
	}
	settings.AutoColor = model.BoolOr(record.AutoColor, defaults.AutoColor)
	settings.FlashWarning = model.BoolOr(record.FlashWarning, defaults.FlashWarning)

	engine := New(record.ID, settings, options)
	engine.configured = model.FromMillis(record.ConfiguredMillis)
	engine.initial = model.FromMillis(record.InitialMillis)
	engine.looping = record.Looping
	remaining := model.FromMillis(record.RemainingMillis)

	switch ParseState(record.State) {
	case StateRunning:
		if record.Deadline == nil || !now.Before(*record.Deadline) {
			engine.state = StateIdle
			engine.remaining = 0
			break
		}
		engine.state = StateRunning
		engine.deadline = *record.Deadline
		engine.remaining = engine.deadline.Sub(now)
		if engine.initial < engine.remaining {
			engine.initial = engine.remaining
		}
	case StatePaused:
		if remaining <= 0 {
			engine.state = StateIdle
			engine.remaining = 0
			break
		}
		engine.state = StatePaused
		engine.remaining = remaining
		if engine.initial < remaining {
			engine.initial = remaining
		}
	case StateAlarming:
		engine.state = StateAlarming
		engine.remaining = 0
		if record.Deadline != nil {
			engine.deadline = *record.Deadline
		}
	default:
		engine.state = StateIdle
		if remaining > engine.configured {
			remaining = engine.configured
		}
		engine.remaining = remaining
	}
	return engine
}
