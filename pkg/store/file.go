package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps settings in a JSON document on disk. Reads fall through to
// an optional read-only defaults layer; writes and persistence only ever
// touch the operator's overlay file. Persist writes a temporary file in the
// same directory and renames it over the target, so a crash mid-write leaves
// either the old state or the new state, never a torn file.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	data     map[string]any
	defaults map[string]any

	optErr error
}

// FileOption customises FileStore construction.
type FileOption func(*FileStore)

// WithDefaults layers a read-only defaults mapping beneath the overlay.
func WithDefaults(defaults map[string]any) FileOption {
	return func(s *FileStore) {
		s.defaults = cloneMap(defaults)
	}
}

// WithDefaultsFile loads the defaults layer from a YAML document. See
// LoadDefaults.
func WithDefaultsFile(path string) FileOption {
	return func(s *FileStore) {
		defaults, err := LoadDefaults(path)
		if err != nil {
			s.optErr = err
			return
		}
		s.defaults = defaults
	}
}

// OpenFile loads the overlay document at path, creating an empty store when
// the file does not exist yet.
func OpenFile(path string, options ...FileOption) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: make(map[string]any),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.optErr != nil {
		return nil, s.optErr
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, storageErr("read", path, err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, storageErr("parse", path, err)
	}
	return s, nil
}

// Path returns the overlay document location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := cloneMap(s.defaults)
	for key, value := range s.data {
		merged[key] = value
	}
	return merged
}

func (s *FileStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value, ok := s.data[key]; ok {
		return value, true
	}
	value, ok := s.defaults[key]
	return value, ok
}

func (s *FileStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *FileStore) Persist() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(s.data)
}

func (s *FileStore) Update(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := cloneMap(s.data)
	if err := fn(mapTx{working}); err != nil {
		return err
	}
	if err := s.persistLocked(working); err != nil {
		return err
	}
	s.data = working
	return nil
}

func (s *FileStore) persistLocked(data map[string]any) error {
	payload, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return storageErr("encode", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return storageErr("create temp", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storageErr("write", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storageErr("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return storageErr("close", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return storageErr("rename", s.path, err)
	}
	return nil
}
