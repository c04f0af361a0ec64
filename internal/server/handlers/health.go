package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/jobtracker/pkg/api"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	pinger Pinger
	responder
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, pinger Pinger, version string) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		pinger:    pinger,
		version:   version,
	}
}

// Health обрабатывает GET /api/health
// Возвращает 503 если база данных недоступна
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check failed", slog.Any("error", err))
		h.sendJSON(w, api.HealthResponse{Status: "unavailable", Version: h.version}, http.StatusServiceUnavailable)
		return
	}

	h.sendJSON(w, api.HealthResponse{Status: "ok", Version: h.version}, http.StatusOK)
}
