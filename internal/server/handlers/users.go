package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
	"github.com/iudanet/jobtracker/pkg/api"
)

// UserService определяет операции, нужные UserHandler
type UserService interface {
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) error
	DeactivateUser(ctx context.Context, userID int64) (bool, error)
}

// UserHandler обрабатывает запросы профиля и аккаунта
type UserHandler struct {
	users UserService
	responder
}

// NewUserHandler создает новый handler профиля
func NewUserHandler(logger *slog.Logger, users UserService) *UserHandler {
	return &UserHandler{
		responder: responder{logger: logger},
		users:     users,
	}
}

// GetProfile обрабатывает GET /api/users/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	h.respondUser(w, r, userID)
}

// UpdateProfile обрабатывает PUT /api/users/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req api.ProfileUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	update := models.ProfileUpdate{
		Phone:        req.Phone,
		Location:     req.Location,
		ResumePath:   req.ResumePath,
		LinkedInURL:  req.LinkedInURL,
		PortfolioURL: req.PortfolioURL,
		Bio:          req.Bio,
		Skills:       req.Skills,
	}

	if err := h.users.UpdateProfile(r.Context(), userID, update); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.sendError(w, "user not found", http.StatusNotFound)
			return
		}
		h.internalError(w, r, "failed to update profile", err)
		return
	}

	h.respondUser(w, r, userID)
}

// DeleteAccount обрабатывает DELETE /api/users/account
// Пользователь деактивируется вместе со всеми сессиями
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	changed, err := h.users.DeactivateUser(ctx, userID)
	if err != nil {
		h.internalError(w, r, "failed to deactivate user", err)
		return
	}
	if !changed {
		h.sendError(w, "user not found", http.StatusNotFound)
		return
	}

	h.logger.InfoContext(ctx, "user deactivated", slog.Int64("user_id", userID))
	h.sendJSON(w, api.MessageResponse{Message: "Account deactivated"}, http.StatusOK)
}

func (h *UserHandler) respondUser(w http.ResponseWriter, r *http.Request, userID int64) {
	user, err := h.users.GetUserByID(r.Context(), userID)
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
