package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/service"
	"github.com/iudanet/jobtracker/internal/server/storage"
	"github.com/iudanet/jobtracker/internal/validation"
	"github.com/iudanet/jobtracker/pkg/api"
)

// AuthService определяет операции, нужные AuthHandler
type AuthService interface {
	CreateUser(ctx context.Context, email, password, firstName, lastName string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	CreateSession(ctx context.Context, userID int64) (*models.Session, error)
	InvalidateSession(ctx context.Context, token string) (bool, error)
	IsEmailRegistered(ctx context.Context, email string) (bool, error)
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	auth AuthService
	responder
	passwords validation.PasswordPolicy
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, auth AuthService, passwords validation.PasswordPolicy) *AuthHandler {
	return &AuthHandler{
		responder: responder{logger: logger},
		auth:      auth,
		passwords: passwords,
	}
}

// Register обрабатывает POST /api/auth/register
// Регистрация нового пользователя и выдача сессии
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := validation.ValidateEmail(req.Email); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateName("first_name", req.FirstName); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateName("last_name", req.LastName); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.passwords.Validator(req.Email, req.FirstName, req.LastName).Validate(req.Password); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.auth.CreateUser(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "email already registered", slog.String("email", req.Email))
			h.sendError(w, "email already registered", http.StatusConflict)
			return
		}
		h.internalError(w, r, "failed to create user", err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", user.Email),
		slog.Int64("user_id", user.ID))

	h.issueSession(w, r, user, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		h.sendError(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.auth.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.WarnContext(ctx, "authentication failed", slog.String("email", req.Email))
			h.sendError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		h.internalError(w, r, "failed to authenticate user", err)
		return
	}

	h.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))

	h.issueSession(w, r, user, http.StatusOK)
}

func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, user *models.User, statusCode int) {
	session, err := h.auth.CreateSession(r.Context(), user.ID)
	if err != nil {
		h.internalError(w, r, "failed to create session", err)
		return
	}

	h.sendJSON(w, api.LoginResponse{
		AccessToken: session.Token,
		TokenType:   api.TokenTypeBearer,
		ExpiresAt:   session.ExpiresAt,
		User:        toUserResponse(user),
	}, statusCode)
}

// Logout обрабатывает POST /api/auth/logout
// Деактивирует сессию, с которой пришел запрос
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := GetSessionToken(ctx)
	if !ok {
		h.sendError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	if _, err := h.auth.InvalidateSession(ctx, token); err != nil {
		h.internalError(w, r, "failed to invalidate session", err)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "Successfully logged out"}, http.StatusOK)
}

// Me обрабатывает GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to get user", err)
		return
	}

	h.sendJSON(w, toUserResponse(user), http.StatusOK)
}

// CheckEmail обрабатывает GET /api/auth/check-email/{email}
func (h *AuthHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	if err := validation.ValidateEmail(email); err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	taken, err := h.auth.IsEmailRegistered(r.Context(), email)
	if err != nil {
		h.internalError(w, r, "failed to check email", err)
		return
	}

	resp := api.EmailAvailabilityResponse{Available: !taken, Message: "Email is available"}
	if taken {
		resp.Message = "Email is already registered"
	}

	h.sendJSON(w, resp, http.StatusOK)
}
