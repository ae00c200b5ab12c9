package store

import (
	"sort"
	"sync"
)

// MemoryStore is a map-backed Store for tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]map[string][]byte // user -> namespace -> data
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]map[string][]byte)}
}

// Load implements Store.
func (m *MemoryStore) Load(externalUserID, namespace string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[externalUserID][namespace]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Save implements Store.
func (m *MemoryStore) Save(externalUserID, namespace string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blobs[externalUserID] == nil {
		m.blobs[externalUserID] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[externalUserID][namespace] = cp
	return nil
}

// Delete implements Store. Deleting a missing blob is a no-op.
func (m *MemoryStore) Delete(externalUserID, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs[externalUserID], namespace)
	return nil
}

// Users implements Lister.
func (m *MemoryStore) Users() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.blobs))
	for user := range m.blobs {
		out = append(out, user)
	}
	sort.Strings(out)
	return out, nil
}
