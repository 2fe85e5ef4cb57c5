package store

import (
	"context"
	"sync"

	"github.com/ajitpratap0/meds2rdf/internal/graph"
)

// MockStore is an in-memory implementation of Store for testing.
type MockStore struct {
	mu     sync.RWMutex
	saved  []*graph.Graph
	closed bool

	// SaveErr and PingErr, when set, are returned by Save and Ping.
	SaveErr error
	PingErr error
}

// NewMockStore creates a new mock store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

// Save records g.
func (m *MockStore) Save(ctx context.Context, g *graph.Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saved = append(m.saved, g)
	return nil
}

// Ping returns PingErr.
func (m *MockStore) Ping(_ context.Context) error {
	return m.PingErr
}

// Saved returns the graphs saved so far.
func (m *MockStore) Saved() []*graph.Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*graph.Graph, len(m.saved))
	copy(out, m.saved)
	return out
}

// Closed reports whether Close was called.
func (m *MockStore) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
