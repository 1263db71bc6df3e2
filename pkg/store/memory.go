package store

import (
	"context"
	"sync"
)

// Memory is a process-local backend used by tests and ephemeral runs.
type Memory struct {
	mu     sync.Mutex
	data   map[Key][]byte
	writes map[Key]int

	// FailWrites makes every Write return the given error.
	FailWrites error
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		data:   make(map[Key][]byte),
		writes: make(map[Key]int),
	}
}

func (m *Memory) Read(_ context.Context, key Key) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotExist
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *Memory) Write(_ context.Context, key Key, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	m.data[key] = buf
	m.writes[key]++
	return nil
}

// Put seeds raw bytes under key without counting a write.
func (m *Memory) Put(key Key, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

// Writes reports how many times key has been written.
func (m *Memory) Writes(key Key) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[key]
}

func (m *Memory) Close() error {
	return nil
}
