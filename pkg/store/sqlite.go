package store

import (
	"database/sql"
	"encoding/json"
	"sync"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// SQLiteStore keeps settings in a single-table SQLite database, values
// JSON-encoded. The working set lives in memory; Persist flushes pending
// changes inside one transaction so a submission's delta commits atomically.
type SQLiteStore struct {
	mu      sync.RWMutex
	db      *sql.DB
	path    string
	data    map[string]any
	dirty   map[string]struct{}
	removed map[string]struct{}
}

// OpenSQLite opens (and if needed initialises) the database at path and
// loads the full mapping into memory.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, storageErr("init", path, err)
	}

	rows, err := db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		db.Close()
		return nil, storageErr("load", path, err)
	}
	defer rows.Close()

	data := make(map[string]any)
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			db.Close()
			return nil, storageErr("scan", path, err)
		}
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			db.Close()
			return nil, storageErr("decode", path, err)
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		db.Close()
		return nil, storageErr("load", path, err)
	}

	return &SQLiteStore{
		db:      db,
		path:    path,
		data:    data,
		dirty:   make(map[string]struct{}),
		removed: make(map[string]struct{}),
	}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.data)
}

func (s *SQLiteStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *SQLiteStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(key, value)
}

func (s *SQLiteStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(key)
}

func (s *SQLiteStore) setLocked(key string, value any) {
	s.data[key] = value
	s.dirty[key] = struct{}{}
	delete(s.removed, key)
}

func (s *SQLiteStore) deleteLocked(key string) {
	if _, ok := s.data[key]; !ok {
		return
	}
	delete(s.data, key)
	delete(s.dirty, key)
	s.removed[key] = struct{}{}
}

func (s *SQLiteStore) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}

func (s *SQLiteStore) Update(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Remember pre-update state so a failure rolls the working set back.
	before := cloneMap(s.data)
	beforeDirty := cloneSet(s.dirty)
	beforeRemoved := cloneSet(s.removed)

	if err := fn(sqliteTx{s}); err != nil {
		s.data, s.dirty, s.removed = before, beforeDirty, beforeRemoved
		return err
	}
	if err := s.persistLocked(); err != nil {
		s.data, s.dirty, s.removed = before, beforeDirty, beforeRemoved
		return err
	}
	return nil
}

func (s *SQLiteStore) persistLocked() error {
	if len(s.dirty) == 0 && len(s.removed) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("begin", s.path, err)
	}

	for key := range s.dirty {
		raw, err := json.Marshal(s.data[key])
		if err != nil {
			tx.Rollback()
			return storageErr("encode", s.path, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, string(raw),
		); err != nil {
			tx.Rollback()
			return storageErr("upsert", s.path, err)
		}
	}
	for key := range s.removed {
		if _, err := tx.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
			tx.Rollback()
			return storageErr("delete", s.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", s.path, err)
	}
	s.dirty = make(map[string]struct{})
	s.removed = make(map[string]struct{})
	return nil
}

type sqliteTx struct {
	store *SQLiteStore
}

func (t sqliteTx) Set(key string, value any) { t.store.setLocked(key, value) }
func (t sqliteTx) Delete(key string)         { t.store.deleteLocked(key) }

func cloneSet(in map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for key := range in {
		out[key] = struct{}{}
	}
	return out
}
