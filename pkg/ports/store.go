package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/domain"
)

// SessionStore persists step-by-step executions, so a session can be
// resumed by another process or after a restart.
type SessionStore interface {
	// Save persists the session under session.ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
