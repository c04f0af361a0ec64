package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/jobtracker/pkg/api"
)

// responder содержит общие helpers для JSON ответов
type responder struct {
	logger *slog.Logger
}

// sendJSON отправляет JSON ответ
func (h responder) sendJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func (h responder) sendError(w http.ResponseWriter, message string, statusCode int) {
	h.sendJSON(w, api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}, statusCode)
}

// decodeJSON читает тело запроса; при ошибке отвечает 400
func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode request body", slog.Any("error", err))
		h.sendError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// requireUserID достает user_id из контекста; при отсутствии отвечает 401
func (h responder) requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "user_id not found in context")
		h.sendError(w, "authentication required", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// internalError логирует причину и отвечает 500 без деталей
func (h responder) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg, slog.Any("error", err))
	h.sendError(w, "internal server error", http.StatusInternalServerError)
}
