package core

import (
	"context"
	"testing"
)

type stubSessionStore struct {
	sessions map[string]*Session
	deltas   []map[string]any
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: map[string]*Session{}}
}

func (s *stubSessionStore) Create(id string) (*Session, error) {
	sess := NewSession(id)
	s.sessions[id] = sess
	return sess, nil
}

func (s *stubSessionStore) Get(id string) (*Session, error) {
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	return s.Create(id)
}

func (s *stubSessionStore) AppendEvent(sessionID string, ev Event) error {
	sess, _ := s.Get(sessionID)
	sess.AddEvent(ev)
	return nil
}

func (s *stubSessionStore) ApplyDelta(sessionID string, delta map[string]any) error {
	sess, _ := s.Get(sessionID)
	sess.MergeState(delta)
	s.deltas = append(s.deltas, delta)
	return nil
}

func newTestRunContext(emit chan Event) (*RunContext, *stubSessionStore) {
	store := newStubSessionStore()
	sess, _ := store.Create("sess-1")
	rc := NewRunContext(
		context.Background(),
		"sess-1", "run-1",
		AgentInfo{Name: "ORACLE", Type: "tutor"},
		NewTextContent("user", "/test"),
		0,
		emit, nil, sess, store, nil, nil, nil,
	)
	return rc, store
}

func TestRunContext_StateDeltaStaging(t *testing.T) {
	rc, store := newTestRunContext(nil)

	rc.SetState("hints_shown", 1)
	if v, ok := rc.GetState("hints_shown"); !ok || v.(int) != 1 {
		t.Fatal("staged state not visible through GetState")
	}
	if _, ok := rc.Session.GetState("hints_shown"); ok {
		t.Fatal("staged state must not hit the session before commit")
	}

	if err := rc.CommitStateDelta(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if len(store.deltas) != 1 {
		t.Fatalf("expected one persisted delta, got %d", len(store.deltas))
	}
	if len(rc.StateDelta) != 0 {
		t.Error("delta buffer should be cleared after commit")
	}
}

func TestRunContext_EmitEventMergesDelta(t *testing.T) {
	emit := make(chan Event, 1)
	rc, _ := newTestRunContext(emit)

	rc.SetState(StateKeyStreak, 3)
	if err := rc.EmitEvent(NewMessageEvent("SPARK", "correct!")); err != nil {
		t.Fatalf("emit failed: %v", err)
	}

	ev := <-emit
	if ev.Actions.StateDelta[StateKeyStreak].(int) != 3 {
		t.Fatalf("state delta not merged into event: %+v", ev.Actions)
	}
	if len(rc.StateDelta) != 0 {
		t.Error("delta buffer should reset after emit")
	}
}

func TestRunContext_ChildContextIsolation(t *testing.T) {
	rc, _ := newTestRunContext(nil)
	rc.SetState("parent", true)

	childEmit := make(chan Event, 1)
	child := rc.NewChildContext(childEmit, nil, "plan-step-1")

	if len(child.StateDelta) != 0 {
		t.Error("child context should start with empty delta")
	}
	if child.Branch != "plan-step-1" {
		t.Errorf("Branch = %q", child.Branch)
	}
	if child.SessionID != rc.SessionID {
		t.Error("child shares session identity")
	}
}

func TestRunContext_UserText(t *testing.T) {
	rc, _ := newTestRunContext(nil)
	if rc.UserText() != "/test" {
		t.Errorf("UserText() = %q", rc.UserText())
	}
}
