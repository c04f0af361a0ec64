package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/service"
	"github.com/iudanet/jobtracker/internal/server/storage"
	"github.com/iudanet/jobtracker/pkg/api"
)

// ApplicationService определяет операции, нужные ApplicationHandler
type ApplicationService interface {
	CreateApplication(ctx context.Context, userID int64, in models.NewApplication) (int64, error)
	ListApplications(ctx context.Context, userID int64, status *models.ApplicationStatus) ([]models.JobApplication, error)
	GetApplication(ctx context.Context, id, userID int64) (*models.JobApplication, error)
	UpdateStatus(ctx context.Context, id, userID int64, status models.ApplicationStatus, notes *string) error
	UpdateApplication(ctx context.Context, id, userID int64, update models.ApplicationUpdate) error
	DeleteApplication(ctx context.Context, id, userID int64) error
	GetHistory(ctx context.Context, id, userID int64) ([]models.StatusHistory, error)
	GetStats(ctx context.Context, userID int64) (*models.Stats, error)
}

// ApplicationHandler обрабатывает запросы по откликам на вакансии
type ApplicationHandler struct {
	apps ApplicationService
	responder
}

// NewApplicationHandler создает новый handler откликов
func NewApplicationHandler(logger *slog.Logger, apps ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		responder: responder{logger: logger},
		apps:      apps,
	}
}

// Create обрабатывает POST /api/applications
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var req api.ApplicationRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.JobTitle) == "" || strings.TrimSpace(req.CompanyName) == "" {
		h.sendError(w, "job_title and company_name are required", http.StatusBadRequest)
		return
	}

	var status models.ApplicationStatus
	if req.Status != "" {
		parsed, err := models.ParseStatus(req.Status)
		if err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		status = parsed
	}

	if !h.validEmploymentType(w, req.EmploymentType) {
		return
	}

	id, err := h.apps.CreateApplication(ctx, userID, models.NewApplication{
		JobTitle:       req.JobTitle,
		CompanyName:    req.CompanyName,
		JobURL:         req.JobURL,
		Notes:          req.Notes,
		SalaryRange:    req.SalaryRange,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		ExternalJobID:  req.ExternalJobID,
		Status:         status,
		Source:         req.Source,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.internalError(w, r, "failed to create application", err)
		return
	}

	h.logger.InfoContext(ctx, "application created",
		slog.Int64("user_id", userID),
		slog.Int64("application_id", id))

	h.respondApplication(w, r, id, userID, http.StatusCreated)
}

// List обрабатывает GET /api/applications?status=
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	var filter *models.ApplicationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			h.sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		filter = &status
	}

	apps, err := h.apps.ListApplications(r.Context(), userID, filter)
	if err != nil {
		h.internalError(w, r, "failed to list applications", err)
		return
	}

	resp := make([]api.ApplicationResponse, 0, len(apps))
	for i := range apps {
		resp = append(resp, toApplicationResponse(&apps[i]))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Get обрабатывает GET /api/applications/{id}
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	h.respondApplication(w, r, id, userID, http.StatusOK)
}

// Update обрабатывает PUT /api/applications/{id}
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	var req api.ApplicationUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if !h.validEmploymentType(w, req.EmploymentType) {
		return
	}

	err := h.apps.UpdateApplication(r.Context(), id, userID, models.ApplicationUpdate{
		JobTitle:       req.JobTitle,
		CompanyName:    req.CompanyName,
		JobURL:         req.JobURL,
		Notes:          req.Notes,
		SalaryRange:    req.SalaryRange,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Source:         req.Source,
		ExternalJobID:  req.ExternalJobID,
	})
	if err != nil {
		h.handleError(w, r, "failed to update application", err)
		return
	}

	h.respondApplication(w, r, id, userID, http.StatusOK)
}

// UpdateStatus обрабатывает PUT /api/applications/{id}/status
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	var req api.StatusUpdateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		h.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.apps.UpdateStatus(r.Context(), id, userID, status, req.Notes); err != nil {
		h.handleError(w, r, "failed to update status", err)
		return
	}

	h.logger.InfoContext(r.Context(), "application status changed",
		slog.Int64("application_id", id),
		slog.String("status", string(status)))

	h.respondApplication(w, r, id, userID, http.StatusOK)
}

// Delete обрабатывает DELETE /api/applications/{id}
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	if err := h.apps.DeleteApplication(r.Context(), id, userID); err != nil {
		h.handleError(w, r, "failed to delete application", err)
		return
	}

	h.sendJSON(w, api.MessageResponse{Message: "Application deleted successfully"}, http.StatusOK)
}

// History обрабатывает GET /api/applications/{id}/history
func (h *ApplicationHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	// Чужой и несуществующий отклик дают одинаковый 404
	if _, err := h.apps.GetApplication(ctx, id, userID); err != nil {
		h.handleError(w, r, "failed to get application", err)
		return
	}

	history, err := h.apps.GetHistory(ctx, id, userID)
	if err != nil {
		h.internalError(w, r, "failed to get status history", err)
		return
	}

	resp := make([]api.StatusHistoryResponse, 0, len(history))
	for _, entry := range history {
		resp = append(resp, toHistoryResponse(entry))
	}

	h.sendJSON(w, resp, http.StatusOK)
}

// Stats обрабатывает GET /api/applications/stats/summary
func (h *ApplicationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.apps.GetStats(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, "failed to get stats", err)
		return
	}

	h.sendJSON(w, toStatsResponse(stats), http.StatusOK)
}

func (h *ApplicationHandler) respondApplication(w http.ResponseWriter, r *http.Request, id, userID int64, statusCode int) {
	app, err := h.apps.GetApplication(r.Context(), id, userID)
	if err != nil {
		h.handleError(w, r, "failed to get application", err)
		return
	}

	h.sendJSON(w, toApplicationResponse(app), statusCode)
}

// handleError переводит ошибки сервиса в HTTP статусы.
// Отсутствующий и чужой отклик неразличимы для клиента
func (h *ApplicationHandler) handleError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, storage.ErrApplicationNotFound):
		h.sendError(w, "application not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidInput):
		h.sendError(w, err.Error(), http.StatusBadRequest)
	default:
		h.internalError(w, r, msg, err)
	}
}

func (h *ApplicationHandler) applicationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.sendError(w, "invalid application id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *ApplicationHandler) validEmploymentType(w http.ResponseWriter, raw *string) bool {
	if raw == nil || *raw == "" {
		return true
	}
	if !models.EmploymentType(*raw).IsValid() {
		h.sendError(w, "invalid employment_type", http.StatusBadRequest)
		return false
	}
	return true
}
