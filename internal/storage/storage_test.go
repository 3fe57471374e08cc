package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pieclock/internal/core/model"
)

func TestFileStore_FirstRunReturnsNil(t *testing.T) {
	store := NewFileStoreIn(filepath.Join(t.TempDir(), "missing"))
	data, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStoreIn(filepath.Join(dir, "nested"))

	require.NoError(t, store.Save([]byte("version: 1\n")))
	data, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))

	require.NoError(t, store.Save([]byte("version: 2\n")))
	data, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "version: 2\n", string(data))

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".tmp")
	}
}

func TestFileStore_SaveFailsWhenLocked(t *testing.T) {
	store := NewFileStoreIn(t.TempDir())
	store.lockTimeout = 50 * time.Millisecond

	holder := flock.New(store.Path() + lockSuffix)
	locked, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer holder.Close()

	err = store.Save([]byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocked)

	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "lock", opErr.Op)
	assert.Equal(t, store.Path(), opErr.Path)
}

func TestFileStore_LoadFailsWhileWriterHoldsLock(t *testing.T) {
	store := NewFileStoreIn(t.TempDir())
	store.lockTimeout = 50 * time.Millisecond
	require.NoError(t, store.Save([]byte("version: 1\n")))

	holder := flock.New(store.Path() + lockSuffix)
	locked, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer holder.Close()

	data, err := store.Load()
	assert.ErrorIs(t, err, ErrLocked)
	assert.Nil(t, data)
}

func TestFileStore_LoadWaitsForShortWrite(t *testing.T) {
	store := NewFileStoreIn(t.TempDir())
	require.NoError(t, store.Save([]byte("version: 1\n")))

	holder := flock.New(store.Path() + lockSuffix)
	locked, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	released := make(chan struct{})
	go func() {
		time.Sleep(100 * time.Millisecond)
		holder.Close()
		close(released)
	}()

	data, err := store.Load()
	<-released
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := OpenSQLiteStoreIn(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	data, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save([]byte("first")))
	require.NoError(t, store.Save([]byte("second")))

	data, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(nil)
	data, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save([]byte("abc")))
	data, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))
	assert.Equal(t, 1, store.Saves())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	store, closer, err := Open("", dir)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)
	assert.NoError(t, closer.Close())

	store, closer, err = Open(BackendSQLite, dir)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	assert.NoError(t, closer.Close())

	_, _, err = Open("redis", dir)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestYAMLCodec_RoundTrip(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	sound := "Ping"
	autoColor := false
	snapshot := model.Snapshot{
		Version: model.SnapshotVersion,
		SavedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Timers: []model.Record{{
			ID:               "a",
			Label:            "tea",
			State:            "running",
			ConfiguredMillis: 300000,
			InitialMillis:    300000,
			RemainingMillis:  120000,
			Deadline:         &deadline,
			Looping:          true,
			Sound:            &sound,
			AutoColor:        &autoColor,
		}},
	}

	codec := YAMLCodec{}
	data, err := codec.Encode(snapshot)
	require.NoError(t, err)
	assert.Contains(t, string(data), "configured_ms: 300000")

	decoded, err := codec.Decode(data)
	require.NoError(t, err)
	require.Len(t, decoded.Timers, 1)
	record := decoded.Timers[0]
	assert.Equal(t, "tea", record.Label)
	require.NotNil(t, record.Deadline)
	assert.True(t, deadline.Equal(*record.Deadline))
	require.NotNil(t, record.AutoColor)
	assert.False(t, *record.AutoColor)
	assert.Nil(t, record.AutoScale)
}

func TestYAMLCodec_RejectsGarbage(t *testing.T) {
	codec := YAMLCodec{}
	_, err := codec.Decode([]byte("timers: [unterminated"))
	assert.Error(t, err)

	_, err = codec.Decode([]byte("\n"))
	assert.ErrorIs(t, err, ErrEmptySnapshot)
}
