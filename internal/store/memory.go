// apps/go-server/internal/store/memory.go
//
// In-memory table registry.
//
// Characteristics:
//   - Stores *table.Table values keyed by table ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; tables are never persisted.
//   - Delete closes the table so its countdown and subscribers stop.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/spectrum/apps/go-server/internal/table"
)

// ErrNotFound is returned for unknown table IDs.
var ErrNotFound = errors.New("table not found")

// Store defines the registry interface for live tables.
type Store interface {
	// Save adds or replaces a table.
	Save(ctx context.Context, t *table.Table) error

	// Get retrieves a table by ID.
	// Returns ErrNotFound if the table is not registered.
	Get(ctx context.Context, id string) (*table.Table, error)

	// Delete closes and removes a table. Unknown IDs are not an error.
	Delete(ctx context.Context, id string) error

	// Len reports how many tables are registered.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex            // guards tables map
	tables map[string]*table.Table // keyed by Table.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{tables: make(map[string]*table.Table)}
}

// Save adds or updates the table in the map.
func (m *memory) Save(ctx context.Context, t *table.Table) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.tables[t.ID]; ok && old != t {
		old.Close()
	}
	m.tables[t.ID] = t
	return nil
}

// Get looks up a table by ID.
func (m *memory) Get(ctx context.Context, id string) (*table.Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tables[id]; ok {
		return t, nil
	}
	return nil, ErrNotFound
}

// Delete closes and removes the table.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	t, ok := m.tables[id]
	delete(m.tables, id)
	m.mu.Unlock()
	if ok {
		t.Close()
	}
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}
