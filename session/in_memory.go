// Package session implements core.SessionStore backends: a process-local map
// for tests and single-node runs, and a Redis store for deployments where
// sessions must survive restarts.
package session

import (
	"sync"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// InMemoryStore keeps sessions in a process-local map. Safe for concurrent
// access; returned sessions are clones so callers cannot mutate internal
// state. Best suited for tests and ephemeral demo runs.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*core.Session)}
}

// Get returns a clone of an existing session, creating it lazily.
func (s *InMemoryStore) Get(sessionID string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(sessionID).Clone(), nil
}

// Create creates (or resets) the session with the given id.
func (s *InMemoryStore) Create(sessionID string) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := core.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess.Clone(), nil
}

// AppendEvent adds an event to the session, creating it if needed.
func (s *InMemoryStore) AppendEvent(sessionID string, ev core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getOrCreateLocked(sessionID).AddEvent(ev)
	return nil
}

// ApplyDelta merges a key/value delta into the session state.
func (s *InMemoryStore) ApplyDelta(sessionID string, delta map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getOrCreateLocked(sessionID).MergeState(delta)
	return nil
}

func (s *InMemoryStore) getOrCreateLocked(sessionID string) *core.Session {
	if sess, ok := s.sessions[sessionID]; ok {
		return sess
	}
	sess := core.NewSession(sessionID)
	s.sessions[sessionID] = sess
	return sess
}
