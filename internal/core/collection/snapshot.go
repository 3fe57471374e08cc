package collection

import (
	"errors"
	"fmt"
	"time"

	"pieclock/internal/core/countdown"
	"pieclock/internal/core/model"
)

var (
	// ErrNoStore is returned by Load and Save when the collection has no store or codec.
	ErrNoStore = errors.New("collection has no store")
	// ErrUnreadable is returned by Load when the store itself failed, and by
	// Save until a later Load succeeds, so stored timers are never replaced by
	// the placeholder shown in the meantime.
	ErrUnreadable = errors.New("stored timers could not be read")
)

// Snapshot captures every timer in display order.
func (collection *Collection) Snapshot() model.Snapshot {
	engines := collection.Timers()
	snapshot := model.Snapshot{
		Version: model.SnapshotVersion,
		SavedAt: collection.now(),
		Timers:  make([]model.Record, 0, len(engines)),
	}
	for _, engine := range engines {
		snapshot.Timers = append(snapshot.Timers, engine.Record())
	}
	return snapshot
}

// Restore replaces the current timers with the snapshot contents. Records
// without an id get a fresh one; repeated ids keep the first occurrence.
func (collection *Collection) Restore(snapshot model.Snapshot, now time.Time) {
	collection.mu.Lock()
	previous := collection.engines
	collection.engines = make([]*Engine, 0, len(snapshot.Timers))
	seen := make(map[string]bool, len(snapshot.Timers))
	for _, record := range snapshot.Timers {
		if record.ID == "" {
			record.ID = collection.uniqueIDLocked()
		}
		if seen[record.ID] {
			continue
		}
		seen[record.ID] = true
		engine := countdown.Restore(record, now, collection.config.Defaults, collection.config.Engine)
		collection.attachLocked(engine)
		collection.engines = append(collection.engines, engine)
	}
	collection.dirty = false
	collection.mu.Unlock()

	for _, engine := range previous {
		engine.SetObserver(nil)
		engine.Stop()
	}
	collection.emit(Event{Type: EventChanged, At: now})
}

// Load restores the collection from its store. Missing or corrupt data leaves
// a single default timer and the returned error is informational. A store
// that cannot be read also leaves a default timer, but the collection stays
// clean and refuses to Save until a Load succeeds.
func (collection *Collection) Load() error {
	if collection.config.Store == nil || collection.config.Codec == nil {
		collection.EnsureOne()
		return ErrNoStore
	}

	data, err := collection.config.Store.Load()
	if err != nil {
		collection.resetToDefault()
		collection.mu.Lock()
		collection.dirty = false
		collection.unreadable = true
		collection.mu.Unlock()
		return fmt.Errorf("load snapshot: %w: %w", ErrUnreadable, err)
	}
	collection.mu.Lock()
	collection.unreadable = false
	collection.mu.Unlock()
	if len(data) == 0 {
		collection.resetToDefault()
		return nil
	}

	snapshot, err := collection.config.Codec.Decode(data)
	if err != nil {
		collection.resetToDefault()
		return fmt.Errorf("decode snapshot: %w", err)
	}

	collection.Restore(snapshot, collection.now())
	collection.EnsureOne()
	return nil
}

// Save writes the current snapshot to the store and clears the dirty flag.
func (collection *Collection) Save() error {
	if collection.config.Store == nil || collection.config.Codec == nil {
		return ErrNoStore
	}

	collection.mu.Lock()
	if collection.unreadable {
		collection.mu.Unlock()
		return fmt.Errorf("save snapshot: %w", ErrUnreadable)
	}
	collection.dirty = false
	collection.mu.Unlock()

	data, err := collection.config.Codec.Encode(collection.Snapshot())
	if err == nil {
		err = collection.config.Store.Save(data)
	}
	if err != nil {
		collection.markDirty()
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (collection *Collection) resetToDefault() {
	collection.Restore(model.Snapshot{}, collection.now())
	collection.Add()
}

func (collection *Collection) markDirty() {
	collection.mu.Lock()
	collection.dirty = true
	collection.mu.Unlock()
}
