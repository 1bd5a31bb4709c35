package service

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session id does not resolve.
var ErrSessionNotFound = errors.New("session not found")

// Session represents an authenticated member session artifact. It stores only
// identity pointers, never auth state.
type Session struct {
	ID        string    // Unique session identifier; the cookie value.
	UserID    int       // References the SystemUser id.
	ExpiresAt time.Time // Absolute expiry time.
}

// SessionStore defines how session artifacts are stored and retrieved.
// Implementations must remain stateless and opaque.
type SessionStore interface {
	// Create stores a new session with a TTL derived from its expiry.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by id. Returns ErrSessionNotFound when absent.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Delete removes a session, ending it.
	Delete(ctx context.Context, sessionID string) error
}
