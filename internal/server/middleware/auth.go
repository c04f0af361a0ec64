package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/handlers"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

// SessionValidator проверяет session token
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.SessionUser, error)
}

// AuthMiddleware создает middleware для проверки session token
// из заголовка "Authorization: Bearer <token>"
func AuthMiddleware(logger *slog.Logger, sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.WarnContext(ctx, "Missing Authorization header")
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				logger.WarnContext(ctx, "Invalid Authorization header format")
				writeError(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			token := strings.TrimSpace(parts[1])

			user, err := sessions.ValidateSession(ctx, token)
			if err != nil {
				if errors.Is(err, storage.ErrSessionNotFound) {
					logger.WarnContext(ctx, "Invalid or expired session")
					writeError(w, "invalid or expired session", http.StatusUnauthorized)
					return
				}
				logger.ErrorContext(ctx, "Failed to validate session", slog.Any("error", err))
				writeError(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ctx = handlers.WithSession(ctx, user, token)

			logger.DebugContext(ctx, "User authenticated", slog.Int64("user_id", user.ID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
