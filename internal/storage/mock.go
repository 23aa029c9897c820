package storage

import "sync"

// MockStore is an in-memory implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	entries map[string][]byte

	// FailWrites makes Set drop every write, mimicking a full or broken
	// backing store.
	FailWrites bool

	// Call records
	GetCalls    []string
	SetCalls    []string
	DeleteCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{entries: make(map[string][]byte)}
}

func (m *MockStore) Get(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, key)
	value, ok := m.entries[key]
	if !ok {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}

func (m *MockStore) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, key)
	if m.FailWrites {
		return
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[key] = stored
}

func (m *MockStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	delete(m.entries, key)
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]byte)
}

// Len returns the number of stored entries.
func (m *MockStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
