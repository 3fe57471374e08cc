package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteFileName = "timers.db"

// SQLiteStore keeps the snapshot in a single-row sqlite table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, wrapErr("open", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, wrapErr("ping", path, err)
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// OpenSQLiteStoreIn opens the default database file under dir.
func OpenSQLiteStoreIn(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrapErr("create directory", dir, err)
	}
	return OpenSQLiteStore(filepath.Join(dir, sqliteFileName))
}

func (store *SQLiteStore) createTables() error {
	query := `CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data BLOB NOT NULL,
		saved_at DATETIME NOT NULL
	);`
	if _, err := store.db.Exec(query); err != nil {
		return wrapErr("create table", store.path, err)
	}
	return nil
}

// Load returns the stored bytes, or nil when nothing was saved yet.
func (store *SQLiteStore) Load() ([]byte, error) {
	var data []byte
	err := store.db.QueryRow(`SELECT data FROM snapshots WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("select", store.path, err)
	}
	return data, nil
}

func (store *SQLiteStore) Save(data []byte) error {
	_, err := store.db.Exec(
		`INSERT INTO snapshots (id, data, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		data, time.Now().UTC(),
	)
	return wrapErr("upsert", store.path, err)
}

// Close releases the database handle.
func (store *SQLiteStore) Close() error {
	return wrapErr("close", store.path, store.db.Close())
}
