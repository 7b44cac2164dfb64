package storage

import (
	"context"
	"sync"
)

// Memory is an in-process [Store]. The zero value is ready to use.
type Memory struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the stored snapshot, if any.
func (m *Memory) Load(context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

// Save overwrites the stored snapshot.
func (m *Memory) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.set = true
	return nil
}

// Clear removes the stored snapshot. Clearing an empty store is a no-op.
func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	m.set = false
	return nil
}
