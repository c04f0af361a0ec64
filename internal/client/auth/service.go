// Package auth управляет сессией CLI клиента: регистрация, вход, выход
// и хранение session token в локальном хранилище.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/jobtracker/internal/client/api"
	"github.com/iudanet/jobtracker/internal/client/storage"
	"github.com/iudanet/jobtracker/internal/validation"
	pkgapi "github.com/iudanet/jobtracker/pkg/api"
)

// ErrNotAuthenticated возвращается, когда локальной сессии нет или она истекла
var ErrNotAuthenticated = errors.New("not authenticated, run 'jobtracker login' first")

// API is the subset of the HTTP client used for authentication.
type API interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.LoginResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	Logout(ctx context.Context) error
	SetToken(token string)
}

// Service предоставляет функции авторизации
type Service struct {
	api       API
	store     storage.AuthStorage
	now       func() time.Time
	serverURL string
}

// NewService создает новый сервис авторизации
func NewService(apiClient API, store storage.AuthStorage, serverURL string) *Service {
	return &Service{
		api:       apiClient,
		store:     store,
		now:       time.Now,
		serverURL: serverURL,
	}
}

// Register регистрирует пользователя и сохраняет выданную сессию
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*storage.AuthData, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	// Проверяем то же, что и сервер, чтобы не гонять заведомо неверный запрос
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidateName("first name", firstName); err != nil {
		return nil, err
	}
	if err := validation.ValidateName("last name", lastName); err != nil {
		return nil, err
	}
	if err := validation.DefaultPasswordValidator().Validate(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.Register(ctx, pkgapi.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return s.saveSession(ctx, resp)
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, email, password string) (*storage.AuthData, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	resp, err := s.api.Login(ctx, pkgapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.saveSession(ctx, resp)
}

func (s *Service) saveSession(ctx context.Context, resp *pkgapi.LoginResponse) (*storage.AuthData, error) {
	auth := &storage.AuthData{
		Email:     resp.User.Email,
		UserID:    resp.User.ID,
		Token:     resp.AccessToken,
		ServerURL: s.serverURL,
		ExpiresAt: resp.ExpiresAt.Unix(),
	}

	if err := s.store.SaveAuth(ctx, auth); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	s.api.SetToken(auth.Token)
	return auth, nil
}

// Current возвращает действующую локальную сессию и подставляет ее token в API клиент
func (s *Service) Current(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	if auth.Expired(s.now()) {
		return nil, ErrNotAuthenticated
	}

	s.api.SetToken(auth.Token)
	return auth, nil
}

// Stored возвращает сохраненную сессию без проверки срока действия
func (s *Service) Stored(ctx context.Context) (*storage.AuthData, error) {
	auth, err := s.store.GetAuth(ctx)
	if errors.Is(err, storage.ErrAuthNotFound) {
		return nil, ErrNotAuthenticated
	}
	return auth, err
}

// Logout завершает сессию на сервере и удаляет локальные данные.
// Истекшая или уже отозванная сессия удаляется только локально
func (s *Service) Logout(ctx context.Context) error {
	auth, err := s.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	if !auth.Expired(s.now()) {
		s.api.SetToken(auth.Token)
		if err := s.api.Logout(ctx); err != nil && !api.IsUnauthorized(err) {
			return err
		}
	}

	return s.Forget(ctx)
}

// Forget удаляет локальную сессию, не обращаясь к серверу
func (s *Service) Forget(ctx context.Context) error {
	s.api.SetToken("")
	if err := s.store.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete auth data: %w", err)
	}
	return nil
}
