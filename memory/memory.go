// Package memory implements core.MemoryStore backends for longer-lived
// tutoring context: weak topics, recent results, student preferences.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// storedMemory is the internal record kept per appended memory.
type storedMemory struct {
	id       string
	content  string
	metadata map[string]any
}

// InMemoryStore is a process-local MemoryStore offering session-scoped
// key/value memory (Get/Put) and append-only stored memories with
// case-insensitive substring Search. A retention cap bounds stored memories
// per session; the oldest entries are dropped first.
type InMemoryStore struct {
	mu        sync.RWMutex
	kv        map[string]map[string]any     // sessionID -> key -> value
	memories  map[string][]storedMemory     // sessionID -> ordered memories
	nextID    map[string]int                // sessionID -> id counter
	retention int
}

// DefaultRetention is the per-session stored memory cap.
const DefaultRetention = 200

// NewInMemoryStore creates an in-memory memory store with the default
// retention cap.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		kv:        make(map[string]map[string]any),
		memories:  make(map[string][]storedMemory),
		nextID:    make(map[string]int),
		retention: DefaultRetention,
	}
}

// Get returns a copy of the session's key/value memory map.
func (m *InMemoryStore) Get(sessionID string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kv, exists := m.kv[sessionID]
	if !exists {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(kv))
	for k, v := range kv {
		out[k] = v
	}
	return out, nil
}

// Put merges the delta into the session's key/value memory.
func (m *InMemoryStore) Put(sessionID string, delta map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.kv[sessionID]; !exists {
		m.kv[sessionID] = make(map[string]any)
	}
	for k, v := range delta {
		m.kv[sessionID][k] = v
	}
	return nil
}

// Search does a case-insensitive substring scan over stored memories in
// insertion order, newest first, up to limit. Every hit scores 1.0.
func (m *InMemoryStore) Search(sessionID string, query string, limit int) ([]core.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.memories[sessionID]
	results := make([]core.SearchResult, 0, limit)
	q := strings.ToLower(query)

	for i := len(stored) - 1; i >= 0 && len(results) < limit; i-- {
		sm := stored[i]
		if q != "" && !strings.Contains(strings.ToLower(sm.content), q) {
			continue
		}
		md := make(map[string]any, len(sm.metadata))
		for k, v := range sm.metadata {
			md[k] = v
		}
		results = append(results, core.SearchResult{
			ID:       sm.id,
			Content:  sm.content,
			Score:    1.0,
			Metadata: md,
		})
	}
	return results, nil
}

// Store appends a memory, evicting the oldest entry once the retention cap is
// reached.
func (m *InMemoryStore) Store(sessionID string, content string, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := fmt.Sprintf("mem_%d", m.nextID[sessionID])
	m.nextID[sessionID]++

	m.memories[sessionID] = append(m.memories[sessionID], storedMemory{
		id:       id,
		content:  content,
		metadata: metadata,
	})
	if len(m.memories[sessionID]) > m.retention {
		m.memories[sessionID] = m.memories[sessionID][1:]
	}
	return nil
}

// Delete removes a stored memory by id.
func (m *InMemoryStore) Delete(sessionID string, memoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.memories[sessionID]
	for i := range stored {
		if stored[i].id == memoryID {
			m.memories[sessionID] = append(stored[:i], stored[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("memory %s not found", memoryID)
}
