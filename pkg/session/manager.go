package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rockysnow7/cyoa/internal/logging"
	"github.com/rockysnow7/cyoa/internal/runtime"
	"github.com/rockysnow7/cyoa/pkg/story"
)

// lockEntry holds one session's mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access. It uses reference counting to garbage
// collect locks for sessions nobody is touching, so calls against different
// sessions only contend on the brief lock-map access.
type Manager struct {
	store   Store
	runtime *runtime.Engine

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	now    func() time.Time
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the time source. Used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a session Manager over a runtime engine and a store.
func NewManager(rt *runtime.Engine, store Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		runtime: rt,
		locks:   make(map[string]*lockEntry),
		now:     time.Now,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after
// unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// withLock executes fn while holding the lock for the session.
func (m *Manager) withLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()
	return fn(ctx)
}

// Create allocates a fresh session: a new opaque ID, a clone of the story's
// initial environment, the entry scene, and last-activity stamped to now.
func (m *Manager) Create(ctx context.Context) (string, error) {
	st := m.runtime.Story()
	s := &Session{
		ID:         uuid.NewString(),
		SceneName:  st.Entry,
		Env:        st.Initial.Clone(),
		LastActive: m.now(),
	}

	err := m.withLock(ctx, s.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, s)
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	m.logger.Info("session created", "session_id", s.ID, "scene", s.SceneName)
	return s.ID, nil
}

// Current renders the session's current scene and touches its last-activity
// timestamp. Returns story.ErrSessionNotFound for unknown IDs.
func (m *Manager) Current(ctx context.Context, id string) (story.View, error) {
	var view story.View
	err := m.withLock(ctx, id, func(ctx context.Context) error {
		s, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}

		view, err = m.runtime.Render(s.Env, s.SceneName)
		if err != nil {
			return err
		}

		s.LastActive = m.now()
		return m.store.Save(ctx, s)
	})
	return view, err
}

// Choose advances the session through one transition and returns the freshly
// rendered view of the new state. The whole read-evaluate-write runs under
// the session's lock, so concurrent chooses against the same session
// serialize: the second caller always sees the post-transition state, never a
// stale one. A failed advance leaves the stored session untouched except for
// the activity timestamp.
func (m *Manager) Choose(ctx context.Context, id, choiceID string) (story.View, error) {
	var view story.View
	err := m.withLock(ctx, id, func(ctx context.Context) error {
		s, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}

		s.LastActive = m.now()

		next, advErr := m.runtime.Advance(s.Env, s.SceneName, choiceID)
		if advErr != nil {
			// Still touch the session: a failed choose is activity.
			if saveErr := m.store.Save(ctx, s); saveErr != nil {
				m.logger.Warn("failed to touch session after rejected choose",
					"session_id", id, "error", saveErr)
			}
			return advErr
		}
		s.SceneName = next

		view, err = m.runtime.Render(s.Env, s.SceneName)
		if err != nil {
			return err
		}
		return m.store.Save(ctx, s)
	})
	return view, err
}

// Sweep removes every session whose last activity is older than now-timeout
// and returns how many were removed. It is a pure computation over stored
// timestamps, invoked only by an explicit external call; the Manager runs no
// timers of its own.
func (m *Manager) Sweep(ctx context.Context, timeout time.Duration, now time.Time) (int, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	cutoff := now.Add(-timeout)
	removed := 0
	for _, id := range ids {
		err := m.withLock(ctx, id, func(ctx context.Context) error {
			s, err := m.store.Load(ctx, id)
			if err != nil {
				// Raced with another sweep or a delete, or the store's own
				// TTL ran out; make sure the entry is fully gone.
				if errors.Is(err, story.ErrSessionNotFound) {
					return m.store.Delete(ctx, id)
				}
				return err
			}
			// Only strictly older sessions expire; one last active exactly
			// at the cutoff survives.
			if !s.LastActive.Before(cutoff) {
				return nil
			}
			if err := m.store.Delete(ctx, id); err != nil {
				return err
			}
			removed++
			m.logger.Info("session expired", "session_id", id, "last_active", s.LastActive)
			return nil
		})
		if err != nil {
			return removed, err
		}
	}
	return removed, nil
}
