package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

// CreateSession stores a new session
func (s *Storage) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO user_sessions (user_id, session_token, created_at, expires_at, is_active)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		session.UserID,
		session.Token,
		toUnix(session.CreatedAt),
		toUnix(session.ExpiresAt),
		boolToInt(session.IsActive),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get session id: %w", err)
	}
	session.ID = id

	return nil
}

// GetSessionUser returns the public identity behind a valid session
func (s *Storage) GetSessionUser(ctx context.Context, token string, now time.Time) (*models.SessionUser, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name
		FROM user_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.session_token = ?
		  AND s.is_active = 1
		  AND s.expires_at > ?
		  AND u.is_active = 1
	`

	user := &models.SessionUser{}
	err := s.db.QueryRowContext(ctx, query, token, toUnix(now)).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return user, nil
}

// InvalidateSession marks an active session inactive
func (s *Storage) InvalidateSession(ctx context.Context, token string) (bool, error) {
	query := `UPDATE user_sessions SET is_active = 0 WHERE session_token = ? AND is_active = 1`

	result, err := s.db.ExecContext(ctx, query, token)
	if err != nil {
		return false, fmt.Errorf("failed to invalidate session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// DeleteExpiredSessions removes expired and inactive sessions
func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	query := `DELETE FROM user_sessions WHERE expires_at <= ? OR is_active = 0`

	result, err := s.db.ExecContext(ctx, query, toUnix(now))
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
