package handlers

import (
	"context"

	"github.com/iudanet/jobtracker/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// SessionUserKey ключ для хранения пользователя сессии в контексте
	SessionUserKey contextKey = "session_user"
	// SessionTokenKey ключ для хранения session token в контексте
	SessionTokenKey contextKey = "session_token"
)

// WithSession кладет пользователя и token сессии в контекст
func WithSession(ctx context.Context, user *models.SessionUser, token string) context.Context {
	ctx = context.WithValue(ctx, SessionUserKey, user)
	return context.WithValue(ctx, SessionTokenKey, token)
}

// GetSessionUser извлекает пользователя сессии из контекста запроса
func GetSessionUser(ctx context.Context) (*models.SessionUser, bool) {
	user, ok := ctx.Value(SessionUserKey).(*models.SessionUser)
	return user, ok && user != nil
}

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	user, ok := GetSessionUser(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// GetSessionToken извлекает session token из контекста запроса
func GetSessionToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenKey).(string)
	return token, ok
}
