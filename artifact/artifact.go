// Package artifact provides core.ArtifactStore implementations. Worksheets
// generated by the save_worksheet tool are the main payload; the interface
// itself lives in core so callers stay decoupled from storage backends.
package artifact

import (
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when no artifact exists for a session / id pair.
var ErrNotFound = fmt.Errorf("artifact not found")

// InMemoryStore keeps artifacts in a nested map guarded by an RWMutex,
// keyed sessionID -> artifactID -> bytes. Data is copied on save and on read
// so callers cannot mutate internal buffers. Suitable for tests and
// single-process deployments; there is no retention or size limit.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[string]map[string][]byte
}

// NewInMemoryStore returns an empty in-memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{artifacts: make(map[string]map[string][]byte)}
}

// Save stores or overwrites the artifact bytes for the session and id.
func (s *InMemoryStore) Save(sessionID, artifactID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.artifacts[sessionID]; !exists {
		s.artifacts[sessionID] = make(map[string][]byte)
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	s.artifacts[sessionID][artifactID] = cp

	return nil
}

// Get returns a copy of the stored bytes or ErrNotFound.
func (s *InMemoryStore) Get(sessionID, artifactID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.artifacts[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := m[artifactID]
	if !ok {
		return nil, ErrNotFound
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the sorted artifact ids stored for the session.
func (s *InMemoryStore) List(sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.artifacts[sessionID]
	if !ok {
		return []string{}, nil
	}

	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Delete removes the artifact or returns ErrNotFound.
func (s *InMemoryStore) Delete(sessionID, artifactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.artifacts[sessionID]
	if !ok {
		return ErrNotFound
	}
	if _, ok := m[artifactID]; !ok {
		return ErrNotFound
	}
	delete(m, artifactID)
	return nil
}
