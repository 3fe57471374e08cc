package countdown

import (
	"time"

	"pieclock/internal/core/dial"
)

// Toggle performs the primary action for the current state: start, pause,
// resume or dismiss.
func (engine *Engine) Toggle() {
	switch engine.State() {
	case StateIdle:
		engine.Start()
	case StateRunning:
		engine.Pause()
	case StatePaused:
		engine.Resume()
	case StateAlarming:
		engine.Dismiss()
	}
}

// Nudge moves the displayed duration by delta on the snap grid. Alarming
// timers are left alone.
func (engine *Engine) Nudge(delta time.Duration) {
	view := engine.View()
	switch view.State {
	case StateIdle:
		engine.SetConfigured(dial.Snap(view.Configured + delta))
	case StateRunning, StatePaused:
		engine.SetRemainingDirectly(dial.Snap(view.Remaining + delta))
	}
}
