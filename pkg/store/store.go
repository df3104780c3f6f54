// Package store provides the persistent key-value mapping behind a settings
// page: an in-memory map for tests, a JSON file with crash-safe persistence,
// and a SQLite-backed variant. All implementations share the same atomic
// update discipline: a submission's whole delta applies inside one critical
// section, or not at all.
package store

import "fmt"

// Tx is the mutation surface handed to Update callbacks. Mutations made
// through it become durable together when the callback returns nil.
type Tx interface {
	Set(key string, value any)
	Delete(key string)
}

// Store is the configuration mapping shared across requests. Reads may run
// concurrently; Update serialises writers and persists before returning.
type Store interface {
	// Snapshot returns a copy of the full current mapping.
	Snapshot() map[string]any
	// Get returns one value; ok is false when the key is absent.
	Get(key string) (any, bool)
	// Set stores a value without persisting. Prefer Update for request
	// handling.
	Set(key string, value any)
	// Delete removes a key if present; removing an absent key is a no-op.
	Delete(key string)
	// Persist durably commits the current state.
	Persist() error
	// Update runs fn inside the store's write lock and persists the result.
	// If fn or the persist step fails, no mutation survives.
	Update(fn func(Tx) error) error
}

// StorageError wraps persistence failures so callers can distinguish I/O
// trouble from validation trouble.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}
