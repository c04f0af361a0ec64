package storage

import (
	"context"
	"time"

	"github.com/iudanet/jobtracker/internal/models"
)

// SessionStorage defines interface for session persistence
type SessionStorage interface {
	// CreateSession stores a new session and sets session.ID
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSessionUser returns the owner of a session that is active,
	// not expired at now and belongs to an active user.
	// Returns ErrSessionNotFound otherwise
	GetSessionUser(ctx context.Context, token string, now time.Time) (*models.SessionUser, error)

	// InvalidateSession marks the session inactive
	// Returns true if an active session with this token existed
	InvalidateSession(ctx context.Context, token string) (bool, error)

	// DeleteExpiredSessions removes sessions expired at now or already inactive
	// Returns number of deleted sessions
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
