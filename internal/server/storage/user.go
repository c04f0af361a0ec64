package storage

import (
	"context"
	"time"

	"github.com/iudanet/jobtracker/internal/models"
)

// UserStorage defines interface for user and profile persistence
type UserStorage interface {
	// CreateUser inserts the user and an empty profile in one transaction
	// and sets user.ID on success.
	// Returns ErrUserAlreadyExists if email is already registered
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves an active user joined with its profile
	// Returns ErrUserNotFound if user doesn't exist or is inactive
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// GetUserByEmail retrieves an active user joined with its profile
	// Returns ErrUserNotFound if user doesn't exist or is inactive
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// EmailExists reports whether any user (active or not) holds the email
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateLastLogin updates the last login timestamp
	UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error

	// UpdateProfile writes only the fields present in update and bumps updated_at.
	// An empty update is a successful no-op.
	// Returns ErrUserNotFound if user doesn't exist
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate, updatedAt time.Time) error

	// DeactivateUser marks user inactive and deactivates all of its sessions
	// in one transaction. Returns true if the user row changed
	DeactivateUser(ctx context.Context, userID int64) (bool, error)
}
