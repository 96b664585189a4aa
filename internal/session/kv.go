package session

import (
	"context"
	"maps"
	"sync"
)

// KV is the durable side of the session store. Implementations give
// last-write-wins semantics and must apply a single Set or Delete call as a
// whole, so the three session keys are never observed half written.
type KV interface {
	// Get returns the values for the keys that exist. Missing keys are absent
	// from the map, they are not an error.
	Get(ctx context.Context, keys ...string) (map[string]string, error)

	// Set writes all values in one operation.
	Set(ctx context.Context, values map[string]string) error

	// Delete removes the keys. Deleting missing keys is not an error.
	Delete(ctx context.Context, keys ...string) error
}

// MemoryKV implements KV in memory.
// This implementation is for testing only - data is lost on restart.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV creates a new in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *MemoryKV) Set(ctx context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	maps.Copy(m.values, values)
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
