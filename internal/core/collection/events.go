package collection

import (
	"time"

	"pieclock/internal/core/countdown"
)

// EventType defines the type of collection event.
type EventType string

const (
	EventChanged   EventType = "changed"
	EventExpired   EventType = "expired"
	EventAdded     EventType = "added"
	EventRemoved   EventType = "removed"
	EventReordered EventType = "reordered"
)

// Event notifies observers that the collection or one of its timers changed.
// TimerID is empty for bulk ticks.
type Event struct {
	Type    EventType
	TimerID string
	State   countdown.State
	At      time.Time
}
