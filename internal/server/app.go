// Package server собирает HTTP сервер трекера откликов:
// хранилище, сервисы, маршруты и фоновую очистку сессий.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/iudanet/jobtracker/internal/server/config"
	"github.com/iudanet/jobtracker/internal/server/service"
	"github.com/iudanet/jobtracker/internal/server/storage/sqlite"
)

// App владеет хранилищем и HTTP обработчиком сервера
type App struct {
	logger        *slog.Logger
	cfg           *config.Config
	store         *sqlite.Storage
	tracker       *service.Tracker
	handler       http.Handler
	purgedCounter prometheus.Counter
}

// New открывает базу, применяет миграции и собирает маршруты
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (*App, error) {
	store, err := sqlite.New(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	tracker := service.NewTracker(store, service.Config{SessionTTL: cfg.Session.TTL})

	app := &App{
		logger:  logger,
		cfg:     cfg,
		store:   store,
		tracker: tracker,
	}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		app.purgedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Metrics.Namespace,
			Subsystem: "sessions",
			Name:      "purged_total",
			Help:      "Total number of expired or inactive sessions deleted by the reaper.",
		})
		registry.MustRegister(app.purgedCounter)
	}

	app.handler, err = NewRouter(Dependencies{
		Logger:           logger,
		Tracker:          tracker,
		Registry:         registry,
		MetricsNamespace: cfg.Metrics.Namespace,
		Version:          version,
		Passwords:        cfg.Password,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run обслуживает HTTP до отмены ctx, затем корректно завершает сервер
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       a.cfg.Server.ReadTimeout,
		WriteTimeout:      a.cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	reaperCtx, stopReaper := context.WithCancel(ctx)
	reaperDone := make(chan struct{})
	go func() {
		defer close(reaperDone)
		a.runSessionReaper(reaperCtx, a.cfg.Session.ReapInterval)
	}()
	defer func() {
		stopReaper()
		<-reaperDone
	}()

	a.logger.Info("starting job tracker API", slog.String("address", srv.Addr))

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

// runSessionReaper периодически удаляет истекшие и неактивные сессии.
// interval <= 0 отключает очистку
func (a *App) runSessionReaper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.purgeSessions(ctx)
		}
	}
}

func (a *App) purgeSessions(ctx context.Context) {
	n, err := a.tracker.PurgeExpiredSessions(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "failed to purge sessions", slog.Any("error", err))
		return
	}
	if a.purgedCounter != nil {
		a.purgedCounter.Add(float64(n))
	}
	if n > 0 {
		a.logger.InfoContext(ctx, "purged sessions", slog.Int("count", n))
	}
}

// Close closes the storage.
func (a *App) Close() error {
	return a.store.Close()
}
