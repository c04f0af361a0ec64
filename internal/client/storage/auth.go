package storage

import (
	"context"
	"time"
)

// AuthStorage defines interface for storing the client session locally.
type AuthStorage interface {
	// SaveAuth stores the current session, replacing any previous one
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves the stored session
	// Returns ErrAuthNotFound if no auth data exists
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	DeleteAuth(ctx context.Context) error
}

// AuthData represents the session persisted by the CLI client
type AuthData struct {
	Email     string `json:"email"`
	Token     string `json:"token"`      // opaque session token
	ServerURL string `json:"server_url"` // сервер, выдавший token
	UserID    int64  `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"` // UNIX seconds
}

// Expired reports whether the session is past its expiry at now.
func (a *AuthData) Expired(now time.Time) bool {
	return now.Unix() >= a.ExpiresAt
}
