package countdown

import "time"

// State represents the current countdown mode.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateAlarming State = "alarming"
)

// ParseState maps a persisted state string onto a State. Unknown values are idle.
func ParseState(value string) State {
	switch State(value) {
	case StateRunning, StatePaused, StateAlarming:
		return State(value)
	default:
		return StateIdle
	}
}

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventUpdated      EventType = "updated"
	EventExpired      EventType = "expired"
	EventAlarmStopped EventType = "alarm_stopped"
)

// Event represents a countdown update for observers.
type Event struct {
	Type      EventType
	TimerID   string
	State     State
	Remaining time.Duration
	At        time.Time
}
