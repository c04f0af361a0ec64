package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// RecoveryMiddleware создает middleware для восстановления после паники
// Перехватывает panic, логирует стек вызовов и возвращает 500 в формате ErrorResponse
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					// http.ErrAbortHandler штатно прерывает ответ
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.ErrorContext(r.Context(), "Panic recovered",
						"error", err,
						"request_id", GetRequestID(r.Context()),
						"method", r.Method,
						"path", sanitizePath(r.URL.Path),
						"stack", string(debug.Stack()),
					)

					// Не раскрываем детали клиенту
					writeError(w, "internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
