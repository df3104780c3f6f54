package store

import "sync"

// MemoryStore is a Store without durable backing. It exists for tests and
// for embedding callers that manage persistence themselves.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]any
}

// NewMemory constructs an empty in-memory store, optionally seeded with
// initial values.
func NewMemory(seed map[string]any) *MemoryStore {
	data := make(map[string]any, len(seed))
	for key, value := range seed {
		data[key] = value
	}
	return &MemoryStore{data: data}
}

func (s *MemoryStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMap(s.data)
}

func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok
}

func (s *MemoryStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *MemoryStore) Persist() error { return nil }

func (s *MemoryStore) Update(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := cloneMap(s.data)
	if err := fn(mapTx{working}); err != nil {
		return err
	}
	s.data = working
	return nil
}

// mapTx mutates a working copy so a failed Update leaves no trace.
type mapTx struct {
	data map[string]any
}

func (t mapTx) Set(key string, value any) { t.data[key] = value }
func (t mapTx) Delete(key string)         { delete(t.data, key) }

func cloneMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
