package storage

import (
	"context"
	"time"

	"github.com/iudanet/jobtracker/internal/models"
)

// ApplicationStorage defines interface for job applications and their status history.
//
// Every ownership-checked method returns ErrApplicationNotFound when the
// application does not exist and ErrNotOwner when it belongs to another user.
type ApplicationStorage interface {
	// CreateApplication inserts the application and its initial history row
	// in one transaction and sets app.ID
	CreateApplication(ctx context.Context, app *models.JobApplication, note string) error

	// ListApplications returns user's applications, newest first.
	// A nil status returns applications of every status
	ListApplications(ctx context.Context, userID int64, status *models.ApplicationStatus) ([]models.JobApplication, error)

	// GetApplication retrieves an application owned by userID
	GetApplication(ctx context.Context, id, userID int64) (*models.JobApplication, error)

	// UpdateStatus changes status and appends one history row in one transaction
	UpdateStatus(ctx context.Context, id, userID int64, status models.ApplicationStatus, notes *string, changedAt time.Time) error

	// UpdateApplication writes only the fields present in update.
	// An empty update after the ownership check is a successful no-op
	UpdateApplication(ctx context.Context, id, userID int64, update models.ApplicationUpdate) error

	// DeleteApplication removes the application, history rows go with it
	DeleteApplication(ctx context.Context, id, userID int64) error

	// GetHistory returns status history of an owned application, newest first.
	// Returns an empty slice when the application is absent or not owned
	GetHistory(ctx context.Context, id, userID int64) ([]models.StatusHistory, error)

	// CountByStatus returns number of user's applications per status
	CountByStatus(ctx context.Context, userID int64) (map[models.ApplicationStatus]int, error)

	// CountSince returns number of user's applications dated at or after since
	CountSince(ctx context.Context, userID int64, since time.Time) (int, error)
}

// Storage combines all storage contracts behind one handle
type Storage interface {
	UserStorage
	SessionStorage
	ApplicationStorage

	// Ping verifies the database connection is alive
	Ping(ctx context.Context) error

	// Close releases the underlying connection
	Close() error
}
