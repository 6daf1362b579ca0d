package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in process. Values are copied in and out.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
	// GetErr and PutErr, when set, fail every Get or Put. Used to simulate storage outages.
	GetErr error
	PutErr error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.docs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }
