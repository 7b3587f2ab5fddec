package ui

import (
	"testing"
	"time"
)

func TestSessionsCreateAndGet(t *testing.T) {
	s := NewSessions(time.Hour)
	session := s.Create()

	got, ok := s.Get(session.ID)
	if !ok || got != session {
		t.Fatalf("Get(%q) = %v, %v; want created session", session.ID, got, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Errorf("Get(missing) found a session")
	}
}

func TestSessionsPruneIdle(t *testing.T) {
	s := NewSessions(time.Minute)
	old := s.Create()
	old.lastSeen = time.Now().Add(-time.Hour)

	s.Create()
	if _, ok := s.Get(old.ID); ok {
		t.Errorf("idle session %s was not pruned", old.ID)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestSessionHandleKeyCollectsEvents(t *testing.T) {
	s := NewSessions(0)
	session := s.Create()

	result, err := session.HandleKey("7")
	if err != nil {
		t.Fatalf("HandleKey error: %v", err)
	}
	if !result.Scroll || result.Rejected || result.Reset {
		t.Errorf("result = %+v, want only scroll", result)
	}

	result, _ = session.HandleKey("Escape")
	if result.Scroll || !result.Reset {
		t.Errorf("result = %+v, want only reset", result)
	}
}
