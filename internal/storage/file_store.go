package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	snapshotFileName = "timers.yaml"
	lockSuffix       = ".lock"

	defaultLockTimeout = 2 * time.Second
	lockRetryDelay     = 25 * time.Millisecond
)

// FileStore keeps the snapshot in a yaml file next to a lock file so two
// processes never write it at the same time.
type FileStore struct {
	mu          sync.Mutex
	path        string
	lockTimeout time.Duration
}

// NewFileStore stores the snapshot at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, lockTimeout: defaultLockTimeout}
}

// NewFileStoreIn stores the snapshot under dir with the default file name.
func NewFileStoreIn(dir string) *FileStore {
	return NewFileStore(filepath.Join(dir, snapshotFileName))
}

// Path returns the snapshot file location.
func (store *FileStore) Path() string {
	return store.path
}

// Load returns the stored bytes, or nil when nothing was saved yet.
func (store *FileStore) Load() ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	fileLock := flock.New(store.path + lockSuffix)
	if err := store.acquire(fileLock.TryRLockContext); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer fileLock.Close()

	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, wrapErr("read", store.path, err)
	}
	return data, nil
}

// Save writes data atomically through a temp file and rename.
func (store *FileStore) Save(data []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return wrapErr("create directory", filepath.Dir(store.path), err)
	}

	fileLock := flock.New(store.path + lockSuffix)
	if err := store.acquire(fileLock.TryLockContext); err != nil {
		return err
	}
	defer fileLock.Close()

	return atomicWrite(store.path, data)
}

// acquire retries a lock attempt until the lock timeout, so a short write by
// another process is waited out instead of reported.
func (store *FileStore) acquire(try func(context.Context, time.Duration) (bool, error)) error {
	ctx, cancel := context.WithTimeout(context.Background(), store.lockTimeout)
	defer cancel()

	locked, err := try(ctx, lockRetryDelay)
	if errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return wrapErr("lock", store.path, err)
	}
	if !locked {
		return wrapErr("lock", store.path, ErrLocked)
	}
	return nil
}

func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return wrapErr("create temp", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return wrapErr("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return wrapErr("close", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return wrapErr("rename", path, err)
	}
	return nil
}
