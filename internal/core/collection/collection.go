// Package collection owns the ordered set of countdowns shown by the app.
package collection

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"pieclock/internal/core/countdown"
	"pieclock/internal/core/model"
)

//go:generate mockgen -source=collection.go -destination=mock_store.go -package=collection

// Store persists serialized snapshots. Load returns nil data on first run.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Codec converts snapshots to and from their stored bytes.
type Codec interface {
	Encode(snapshot model.Snapshot) ([]byte, error)
	Decode(data []byte) (model.Snapshot, error)
}

// Config wires the collection to its collaborators.
type Config struct {
	Engine   countdown.Options
	Defaults model.TimerDefaults
	Store    Store
	Codec    Codec
	// NewID generates timer identifiers. Defaults to random hex.
	NewID func() string
}

// Collection is an ordered set of independent countdowns.
type Collection struct {
	mu      sync.Mutex
	config  Config
	engines []*Engine
	events  []chan Event
	dirty   bool
	// unreadable is set while the last Load could not read the store.
	unreadable bool
}

// Engine aliases the countdown engine for callers that only import collection.
type Engine = countdown.Engine

// New creates an empty collection.
func New(config Config) *Collection {
	if config.NewID == nil {
		config.NewID = randomID
	}
	if config.Defaults == (model.TimerDefaults{}) {
		config.Defaults = model.DefaultTimerDefaults()
	}
	return &Collection{config: config}
}

// Subscribe registers a new observer channel. Sends never block; a full
// channel drops the event.
func (collection *Collection) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	collection.mu.Lock()
	collection.events = append(collection.events, ch)
	collection.mu.Unlock()
	return ch
}

// Close closes every observer channel.
func (collection *Collection) Close() {
	collection.mu.Lock()
	events := collection.events
	collection.events = nil
	collection.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Add appends a new idle timer with no configured duration.
func (collection *Collection) Add() *Engine {
	collection.mu.Lock()
	id := collection.uniqueIDLocked()
	engine := countdown.New(id, countdown.SettingsFromDefaults(collection.config.Defaults), collection.config.Engine)
	collection.attachLocked(engine)
	collection.engines = append(collection.engines, engine)
	collection.dirty = true
	collection.mu.Unlock()

	collection.emit(Event{Type: EventAdded, TimerID: id, State: countdown.StateIdle, At: collection.now()})
	return engine
}

// Remove deletes the timer with id after silencing its alarm.
func (collection *Collection) Remove(id string) bool {
	collection.mu.Lock()
	index := collection.indexLocked(id)
	if index < 0 {
		collection.mu.Unlock()
		return false
	}
	engine := collection.engines[index]
	collection.engines = append(collection.engines[:index], collection.engines[index+1:]...)
	collection.dirty = true
	collection.mu.Unlock()

	engine.SetObserver(nil)
	engine.Stop()
	collection.emit(Event{Type: EventRemoved, TimerID: id, At: collection.now()})
	return true
}

// Reorder moves the timer with id to toIndex, keeping the relative order of
// the others. toIndex is clamped into range.
func (collection *Collection) Reorder(id string, toIndex int) bool {
	collection.mu.Lock()
	from := collection.indexLocked(id)
	if from < 0 {
		collection.mu.Unlock()
		return false
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(collection.engines)-1 {
		toIndex = len(collection.engines) - 1
	}
	if from == toIndex {
		collection.mu.Unlock()
		return true
	}

	engine := collection.engines[from]
	remaining := append(collection.engines[:from:from], collection.engines[from+1:]...)
	reordered := make([]*Engine, 0, len(collection.engines))
	reordered = append(reordered, remaining[:toIndex]...)
	reordered = append(reordered, engine)
	reordered = append(reordered, remaining[toIndex:]...)
	collection.engines = reordered
	collection.dirty = true
	collection.mu.Unlock()

	collection.emit(Event{Type: EventReordered, TimerID: id, At: collection.now()})
	return true
}

// Get returns the timer with id.
func (collection *Collection) Get(id string) (*Engine, bool) {
	collection.mu.Lock()
	defer collection.mu.Unlock()
	index := collection.indexLocked(id)
	if index < 0 {
		return nil, false
	}
	return collection.engines[index], true
}

// At returns the timer at a display position.
func (collection *Collection) At(index int) (*Engine, bool) {
	collection.mu.Lock()
	defer collection.mu.Unlock()
	if index < 0 || index >= len(collection.engines) {
		return nil, false
	}
	return collection.engines[index], true
}

// Timers returns the timers in display order.
func (collection *Collection) Timers() []*Engine {
	collection.mu.Lock()
	defer collection.mu.Unlock()
	return append([]*Engine(nil), collection.engines...)
}

// Len returns the number of timers.
func (collection *Collection) Len() int {
	collection.mu.Lock()
	defer collection.mu.Unlock()
	return len(collection.engines)
}

// IsEmpty reports whether the collection has no timers.
func (collection *Collection) IsEmpty() bool {
	return collection.Len() == 0
}

// EnsureOne seeds a default timer when the collection is empty.
func (collection *Collection) EnsureOne() *Engine {
	if engine, ok := collection.At(0); ok {
		return engine
	}
	return collection.Add()
}

// TickAll advances every timer to now and emits a single change event.
func (collection *Collection) TickAll(now time.Time) {
	for _, engine := range collection.Timers() {
		engine.Tick(now)
	}
	collection.emit(Event{Type: EventChanged, At: now})
}

// SetDefaults replaces the settings applied to timers added from now on.
func (collection *Collection) SetDefaults(defaults model.TimerDefaults) {
	collection.mu.Lock()
	collection.config.Defaults = defaults
	collection.mu.Unlock()
}

// Dirty reports whether the collection changed since the last save.
func (collection *Collection) Dirty() bool {
	collection.mu.Lock()
	defer collection.mu.Unlock()
	return collection.dirty
}

func (collection *Collection) attachLocked(engine *Engine) {
	engine.SetObserver(collection.onEngineEvent)
}

func (collection *Collection) onEngineEvent(event countdown.Event) {
	collection.mu.Lock()
	collection.dirty = true
	collection.mu.Unlock()

	eventType := EventChanged
	if event.Type == countdown.EventExpired {
		eventType = EventExpired
	}
	collection.emit(Event{Type: eventType, TimerID: event.TimerID, State: event.State, At: event.At})
}

func (collection *Collection) emit(event Event) {
	collection.mu.Lock()
	events := append([]chan Event(nil), collection.events...)
	collection.mu.Unlock()

	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (collection *Collection) indexLocked(id string) int {
	for index, engine := range collection.engines {
		if engine.ID() == id {
			return index
		}
	}
	return -1
}

func (collection *Collection) uniqueIDLocked() string {
	for {
		id := collection.config.NewID()
		if id != "" && collection.indexLocked(id) < 0 {
			return id
		}
	}
}

func (collection *Collection) now() time.Time {
	if collection.config.Engine.Clock != nil {
		return collection.config.Engine.Clock.Now()
	}
	return time.Now()
}

func randomID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("t%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
