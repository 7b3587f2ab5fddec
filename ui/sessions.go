package ui

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dhamidi/calc/editor"
)

// Session is one browser's calculator display. Its mutex serializes input so
// every key is handled to completion before the next one.
type Session struct {
	ID string

	mu       sync.Mutex
	editor   *editor.Editor
	events   []editor.Event
	lastSeen time.Time
}

// KeyResult describes the display after handling one key.
type KeyResult struct {
	Display  string `json:"display"`
	State    string `json:"state"`
	Action   string `json:"action"`
	Rejected bool   `json:"rejected"`
	Scroll   bool   `json:"scroll"`
	Reset    bool   `json:"reset"`
}

func (s *Session) HandleKey(key string) (KeyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = s.events[:0]
	s.lastSeen = time.Now()
	action, err := s.editor.HandleKey(key)

	result := KeyResult{
		Display: s.editor.Text(),
		State:   s.editor.State().String(),
		Action:  action.String(),
	}
	for _, ev := range s.events {
		switch ev {
		case editor.EventRejected:
			result.Rejected = true
		case editor.EventScroll:
			result.Scroll = true
		case editor.EventReset:
			result.Reset = true
		}
	}
	return result, err
}

func (s *Session) Display() (string, editor.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Text(), s.editor.State()
}

func (s *Session) Variant() editor.Variant {
	return s.editor.Variant()
}

type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	options  []editor.Option
	ttl      time.Duration
}

func NewSessions(ttl time.Duration, opts ...editor.Option) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		options:  opts,
		ttl:      ttl,
	}
}

func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Create starts a new session with an empty display and drops sessions idle
// for longer than the TTL.
func (s *Sessions) Create() *Session {
	session := &Session{
		ID:       uuid.NewString(),
		lastSeen: time.Now(),
	}
	opts := append([]editor.Option{}, s.options...)
	opts = append(opts, editor.WithListener(func(ev editor.Event) {
		session.events = append(session.events, ev)
	}))
	session.editor = editor.New(opts...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(time.Now())
	s.sessions[session.ID] = session
	return session
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Sessions) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, session := range s.sessions {
		session.mu.Lock()
		idle := now.Sub(session.lastSeen)
		session.mu.Unlock()
		if idle > s.ttl {
			delete(s.sessions, id)
		}
	}
}
