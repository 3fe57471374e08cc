package storage

import (
	"fmt"
	"io"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a snapshot store that may hold resources.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Open builds the named backend rooted at dir. The closer is never nil.
func Open(backend, dir string) (Store, io.Closer, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStoreIn(dir), nopCloser{}, nil
	case BackendSQLite:
		store, err := OpenSQLiteStoreIn(dir)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return store, store, nil
	case BackendMemory:
		return NewMemoryStore(nil), nopCloser{}, nil
	default:
		return nil, nopCloser{}, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
