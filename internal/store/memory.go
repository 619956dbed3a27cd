// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// The exhaustive search uses it as its memo table: results are keyed by the
// content key of a candidate set, so different guess/score paths that reach
// the same set share one computation.
//
// Characteristics:
//   - Stores values keyed by string in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State lives for the lifetime of the process only.
//   - Get returns ErrNotFound for missing keys.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get for keys that were never saved.
var ErrNotFound = errors.New("not found")

// Store defines the memo interface for search results.
type Store[V any] interface {
	// Save persists or replaces the value for key.
	Save(ctx context.Context, key string, v V) error

	// Get retrieves the value for key.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) (V, error)

	// Len reports the number of stored entries.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory[V any] struct {
	mu    sync.RWMutex // guards items
	items map[string]V
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore[V any]() Store[V] {
	return &memory[V]{items: make(map[string]V)}
}

// Save adds or updates the value in the map.
func (m *memory[V]) Save(ctx context.Context, key string, v V) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = v
	return nil
}

// Get looks up a value by key.
func (m *memory[V]) Get(ctx context.Context, key string) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	var zero V
	return zero, ErrNotFound
}

func (m *memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
