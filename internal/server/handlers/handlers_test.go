package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/service"
	"github.com/iudanet/jobtracker/internal/server/storage/sqlite"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// setupTestTracker поднимает Tracker поверх in-memory SQLite
func setupTestTracker(t *testing.T) *service.Tracker {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return service.NewTracker(store, service.Config{})
}

// createTestUser регистрирует пользователя напрямую через сервис
func createTestUser(t *testing.T, tr *service.Tracker, email string) *models.User {
	t.Helper()

	user, err := tr.CreateUser(context.Background(), email, "secret123", "Test", "User")
	require.NoError(t, err)
	return user
}

// newJSONRequest создает запрос с JSON телом
func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withUser кладет сессию пользователя в контекст запроса, как это делает AuthMiddleware
func withUser(req *http.Request, user *models.User, token string) *http.Request {
	ctx := WithSession(req.Context(), &models.SessionUser{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, token)
	return req.WithContext(ctx)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	// Body не вычитывается, чтобы тест мог проверить и сырой JSON
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func strPtr(s string) *string {
	return &s
}
