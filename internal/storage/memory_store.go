package storage

import "sync"

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStore returns a store seeded with data.
func NewMemoryStore(data []byte) *MemoryStore {
	return &MemoryStore{data: append([]byte(nil), data...)}
}

func (store *MemoryStore) Load() ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.data == nil {
		return nil, nil
	}
	return append([]byte(nil), store.data...), nil
}

func (store *MemoryStore) Save(data []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.data = append([]byte(nil), data...)
	store.saves++
	return nil
}

// Saves returns how many times Save was called.
func (store *MemoryStore) Saves() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.saves
}
