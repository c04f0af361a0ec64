package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/jobtracker/internal/crypto"
	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

// UserService manages users and their profiles
type UserService struct {
	users storage.UserStorage
	now   func() time.Time
}

// NewUserService создает сервис пользователей
func NewUserService(users storage.UserStorage, cfg Config) *UserService {
	cfg = cfg.withDefaults()
	return &UserService{users: users, now: cfg.Now}
}

// CreateUser регистрирует пользователя с пустым профилем.
// Возвращает storage.ErrUserAlreadyExists если email занят
func (s *UserService) CreateUser(ctx context.Context, email, password, firstName, lastName string) (*models.User, error) {
	hash, salt, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    s.now().UTC().Truncate(time.Second),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Возвращаем запись в том виде, в каком она лежит в БД (user + profile)
	return s.users.GetUserByID(ctx, user.ID)
}

// GetUserByID returns active user with profile
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetUserByID(ctx, userID)
}

// GetUserByEmail returns active user with profile
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetUserByEmail(ctx, email)
}

// IsEmailRegistered reports whether email is already taken
func (s *UserService) IsEmailRegistered(ctx context.Context, email string) (bool, error) {
	return s.users.EmailExists(ctx, email)
}

// UpdateProfile applies a sparse profile update.
// An update without fields succeeds without touching storage
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) error {
	if update.IsEmpty() {
		return nil
	}
	return s.users.UpdateProfile(ctx, userID, update, s.now().UTC().Truncate(time.Second))
}

// DeactivateUser disables the user and all its sessions
func (s *UserService) DeactivateUser(ctx context.Context, userID int64) (bool, error) {
	return s.users.DeactivateUser(ctx, userID)
}
