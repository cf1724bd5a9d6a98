package session

import (
	"context"
	"sync"
	"time"

	"heladeria-storefront/internal/domain"
)

// memoryStore keeps sessions in process memory. The default when no DB_DSN
// is configured; sessions die with the process.
type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewMemory() Store {
	return &memoryStore{sessions: make(map[string]*Session)}
}

func (s *memoryStore) Create(_ context.Context, rawToken, username string, expiresAt time.Time) (*Session, error) {
	id, err := randomID()
	if err != nil {
		return nil, err
	}
	sess := newSession(id, rawToken, username, expiresAt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
	return sess, nil
}

func (s *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}
