// Package memory provides the in-memory session store, the default for a
// single-process server.
package memory

import (
	"context"
	"sync"

	"github.com/rockysnow7/cyoa/pkg/session"
	"github.com/rockysnow7/cyoa/pkg/story"
)

// Store implements session.Store in memory. Safe for concurrent use.
type Store struct {
	data map[string]*session.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*session.Session),
	}
}

// Save persists a copy of the session. The caller keeps ownership of its own
// copy; later mutations of it never leak into the store.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	copied := sess.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[copied.ID] = copied
	return nil
}

// Load retrieves a copy of the session so the caller can't mutate stored
// state through the returned pointer.
func (s *Store) Load(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[id]
	if !ok {
		return nil, story.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the IDs of every stored session.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}
