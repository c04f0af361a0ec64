package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iudanet/jobtracker/internal/server/handlers"
	"github.com/iudanet/jobtracker/internal/server/middleware"
	"github.com/iudanet/jobtracker/internal/server/service"
	"github.com/iudanet/jobtracker/internal/validation"
)

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Logger  *slog.Logger
	Tracker *service.Tracker
	// Registry включает /metrics и HTTP метрики; nil отключает
	Registry         *prometheus.Registry
	MetricsNamespace string
	Version          string
	Passwords        validation.PasswordPolicy
}

// quietPaths не пишутся в журнал запросов
var quietPaths = []string{"/api/health", "/metrics"}

// NewRouter собирает ServeMux со всеми маршрутами API и оборачивает его middleware
func NewRouter(deps Dependencies) (http.Handler, error) {
	logger := deps.Logger

	authHandler := handlers.NewAuthHandler(logger, deps.Tracker, deps.Passwords)
	userHandler := handlers.NewUserHandler(logger, deps.Tracker)
	appHandler := handlers.NewApplicationHandler(logger, deps.Tracker)
	healthHandler := handlers.NewHealthHandler(logger, deps.Tracker, deps.Version)

	auth := middleware.AuthMiddleware(logger, deps.Tracker)
	protected := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Auth
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/check-email/{email}", authHandler.CheckEmail)
	mux.Handle("POST /api/auth/logout", protected(authHandler.Logout))
	mux.Handle("GET /api/auth/me", protected(authHandler.Me))

	// Users
	mux.Handle("GET /api/users/profile", protected(userHandler.GetProfile))
	mux.Handle("PUT /api/users/profile", protected(userHandler.UpdateProfile))
	mux.Handle("DELETE /api/users/account", protected(userHandler.DeleteAccount))

	// Applications
	mux.Handle("POST /api/applications", protected(appHandler.Create))
	mux.Handle("GET /api/applications", protected(appHandler.List))
	mux.Handle("GET /api/applications/stats/summary", protected(appHandler.Stats))
	mux.Handle("GET /api/applications/{id}", protected(appHandler.Get))
	mux.Handle("PUT /api/applications/{id}", protected(appHandler.Update))
	mux.Handle("PUT /api/applications/{id}/status", protected(appHandler.UpdateStatus))
	mux.Handle("GET /api/applications/{id}/history", protected(appHandler.History))
	mux.Handle("DELETE /api/applications/{id}", protected(appHandler.Delete))

	var metrics *middleware.HTTPMetrics
	if deps.Registry != nil {
		var err error
		metrics, err = middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{
			Registerer: deps.Registry,
			Namespace:  deps.MetricsNamespace,
		})
		if err != nil {
			return nil, fmt.Errorf("init http metrics: %w", err)
		}
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	// metrics оборачивает mux напрямую: route label берется из r.Pattern
	var handler http.Handler = metrics.Middleware(mux)
	handler = middleware.LoggingWithSkip(logger, quietPaths)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler, nil
}
