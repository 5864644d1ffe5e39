package store

import (
	"context"
	"fmt"
	"sync"
)

type ident struct {
	group, key uint32
}

// Memory is an in-memory Store implementation for tests and examples.
// Thread-safe for concurrent reads and writes.
type Memory struct {
	mu       sync.RWMutex
	payloads map[ident][]byte
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{
		payloads: make(map[ident][]byte),
	}
}

// ReadObject fills buf with the payload stored under (group, key).
func (m *Memory) ReadObject(_ context.Context, group, key uint32, buf []byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.payloads[ident{group, key}]
	if !ok {
		return ErrNotFound
	}
	if len(data) != len(buf) {
		return fmt.Errorf("store: payload size %d does not match buffer size %d", len(data), len(buf))
	}
	copy(buf, data)
	return nil
}

// WriteObject persists buf under (group, key).
func (m *Memory) WriteObject(_ context.Context, group, key uint32, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external mutation
	copied := make([]byte, len(buf))
	copy(copied, buf)
	m.payloads[ident{group, key}] = copied
	return nil
}

// Len returns the number of stored payloads.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payloads)
}
