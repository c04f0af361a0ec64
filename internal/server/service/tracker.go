package service

import (
	"context"

	"github.com/iudanet/jobtracker/internal/server/storage"
)

// Tracker aggregates the auth, user and application services behind
// one value used by HTTP handlers. All three share the storage handle
// passed to NewTracker.
type Tracker struct {
	*AuthService
	*UserService
	*ApplicationService

	store storage.Storage
}

// NewTracker создает фасад поверх одного хранилища
func NewTracker(store storage.Storage, cfg Config) *Tracker {
	cfg = cfg.withDefaults()
	return &Tracker{
		AuthService:        NewAuthService(store, store, cfg),
		UserService:        NewUserService(store, cfg),
		ApplicationService: NewApplicationService(store, cfg),
		store:              store,
	}
}

// Ping checks storage availability
func (t *Tracker) Ping(ctx context.Context) error {
	return t.store.Ping(ctx)
}
