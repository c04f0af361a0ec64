package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/jobtracker/internal/crypto"
	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

// DefaultSessionTTL время жизни сессии с момента выдачи
const DefaultSessionTTL = 24 * time.Hour

// AuthService handles password hashing and the session lifecycle.
type AuthService struct {
	users      storage.UserStorage
	sessions   storage.SessionStorage
	now        func() time.Time
	sessionTTL time.Duration
}

// NewAuthService создает сервис аутентификации
func NewAuthService(users storage.UserStorage, sessions storage.SessionStorage, cfg Config) *AuthService {
	cfg = cfg.withDefaults()
	return &AuthService{
		users:      users,
		sessions:   sessions,
		now:        cfg.Now,
		sessionTTL: cfg.SessionTTL,
	}
}

// HashPassword returns hex hash and hex salt for the password
func (s *AuthService) HashPassword(password string) (hash, salt string, err error) {
	return crypto.HashPassword(password)
}

// VerifyPassword checks password against stored hash and salt
func (s *AuthService) VerifyPassword(password, hash, salt string) bool {
	return crypto.VerifyPassword(password, hash, salt)
}

// Authenticate проверяет email и пароль.
// При успехе обновляет last_login и возвращает пользователя
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive || !crypto.VerifyPassword(password, user.PasswordHash, user.Salt) {
		return nil, ErrInvalidCredentials
	}

	loginAt := s.now().UTC().Truncate(time.Second)
	if err := s.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &loginAt

	return user, nil
}

// CreateSession issues a new session token for the user
func (s *AuthService) CreateSession(ctx context.Context, userID int64) (*models.Session, error) {
	token, err := crypto.GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	session := &models.Session{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
		IsActive:  true,
	}

	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// ValidateSession returns public identity of the session owner.
// Unknown, inactive and expired sessions as well as deactivated users
// all yield storage.ErrSessionNotFound
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*models.SessionUser, error) {
	if token == "" {
		return nil, storage.ErrSessionNotFound
	}

	user, err := s.sessions.GetSessionUser(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	return user, nil
}

// InvalidateSession switches the session off.
// Returns true if an active session with this token existed
func (s *AuthService) InvalidateSession(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.sessions.InvalidateSession(ctx, token)
}

// PurgeExpiredSessions deletes expired and inactive sessions
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int, error) {
	return s.sessions.DeleteExpiredSessions(ctx, s.now())
}
