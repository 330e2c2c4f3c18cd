package session

import "context"

// Store defines the interface for persisting sessions. Implementations must
// be safe for concurrent use; per-session serialization is the Manager's job.
type Store interface {
	// Save persists the session, keyed by its ID.
	Save(ctx context.Context, s *Session) error

	// Load retrieves a session by ID.
	// Returns story.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
