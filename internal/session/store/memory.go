package store

import (
	"context"
	"sync"
	"time"

	"pingmap/internal/session"
	"pingmap/pkg/platform/sentinel"
)

// InMemory keeps sessions in a process-local map. Expired entries are
// dropped lazily on lookup.
type InMemory struct {
	mu       sync.RWMutex
	sessions map[string]*session.Session
	now      func() time.Time
}

// NewInMemory creates an empty in-memory session store.
func NewInMemory() *InMemory {
	return &InMemory{
		sessions: make(map[string]*session.Session),
		now:      time.Now,
	}
}

// NewInMemoryWithClock creates a store with an injectable clock for tests.
func NewInMemoryWithClock(now func() time.Time) *InMemory {
	s := NewInMemory()
	s.now = now
	return s
}

func (s *InMemory) Save(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	s.sessions[sess.Token] = &copied
	return nil
}

func (s *InMemory) Find(ctx context.Context, token string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if sess.Expired(s.now()) {
		delete(s.sessions, token)
		return nil, sentinel.ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *InMemory) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
