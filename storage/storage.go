package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("key not found")

// ErrClosed is returned when a backend is used after Close.
var ErrClosed = errors.New("storage backend closed")

// Backend is a minimal durable key-value store. Values are opaque strings;
// serialization is the caller's concern. Implementations must be safe for
// concurrent use.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Memory is a process-local Backend. It satisfies the contract but persists
// nothing; it backs tests and the degraded mode entered when a durable
// backend becomes unavailable.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", ErrClosed
	}
	value, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	delete(m.values, key)
	return nil
}

// Close marks the backend closed. Subsequent calls fail with ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
