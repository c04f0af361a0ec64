package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/jobtracker/internal/models"
	"github.com/iudanet/jobtracker/internal/server/storage"
)

const selectUserQuery = `
	SELECT u.id, u.email, u.password_hash, u.salt, u.first_name, u.last_name,
	       u.created_at, u.last_login, u.is_active,
	       p.phone, p.location, p.resume_path, p.linkedin_url, p.portfolio_url,
	       p.skills, p.bio, p.updated_at
	FROM users u
	LEFT JOIN user_profiles p ON p.user_id = u.id
`

// CreateUser creates a new user together with its empty profile
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO users (email, password_hash, salt, first_name, last_name, created_at, is_active)
			VALUES (?, ?, ?, ?, ?, ?, 1)
		`,
			user.Email,
			user.PasswordHash,
			user.Salt,
			user.FirstName,
			user.LastName,
			toUnix(user.CreatedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrUserAlreadyExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get user id: %w", err)
		}

		// Профиль создается пустым в той же транзакции
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_profiles (user_id, updated_at) VALUES (?, ?)`,
			id, toUnix(user.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to insert user profile: %w", err)
		}

		user.ID = id
		return nil
	})
	if err != nil {
		return err
	}

	user.IsActive = true
	user.LastLogin = nil
	user.Profile = models.UserProfile{
		UserID:    user.ID,
		UpdatedAt: fromUnix(toUnix(user.CreatedAt)),
	}

	return nil
}

// GetUserByID retrieves active user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.getUser(ctx, "u.id = ?", userID)
}

// GetUserByEmail retrieves active user by email (case-sensitive)
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "u.email = ?", email)
}

func (s *Storage) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	query := selectUserQuery + " WHERE " + where + " AND u.is_active = 1"

	user := &models.User{}
	var (
		lastLogin    sql.NullInt64
		isActive     int
		phone        sql.NullString
		location     sql.NullString
		resumePath   sql.NullString
		linkedinURL  sql.NullString
		portfolioURL sql.NullString
		skills       sql.NullString
		bio          sql.NullString
		updatedAt    sql.NullInt64
		createdAt    int64
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Salt,
		&user.FirstName,
		&user.LastName,
		&createdAt,
		&lastLogin,
		&isActive,
		&phone,
		&location,
		&resumePath,
		&linkedinURL,
		&portfolioURL,
		&skills,
		&bio,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.CreatedAt = fromUnix(createdAt)
	user.LastLogin = nullTimePtr(lastLogin)
	user.IsActive = isActive == 1

	user.Profile = models.UserProfile{
		UserID:       user.ID,
		Phone:        nullStringPtr(phone),
		Location:     nullStringPtr(location),
		ResumePath:   nullStringPtr(resumePath),
		LinkedInURL:  nullStringPtr(linkedinURL),
		PortfolioURL: nullStringPtr(portfolioURL),
		Bio:          nullStringPtr(bio),
	}
	if updatedAt.Valid {
		user.Profile.UpdatedAt = fromUnix(updatedAt.Int64)
	}
	if skills.Valid && skills.String != "" {
		if err := json.Unmarshal([]byte(skills.String), &user.Profile.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills: %w", err)
		}
	}

	return user, nil
}

// EmailExists reports whether the email is taken by any user
func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists == 1, nil
}

// UpdateLastLogin updates the last login timestamp
func (s *Storage) UpdateLastLogin(ctx context.Context, userID int64, lastLogin time.Time) error {
	query := `UPDATE users SET last_login = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, toUnix(lastLogin), userID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// UpdateProfile updates only the profile fields present in update
func (s *Storage) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate, updatedAt time.Time) error {
	if update.IsEmpty() {
		return nil
	}

	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)

	addField := func(column string, value *string) {
		if value != nil {
			sets = append(sets, column+" = ?")
			args = append(args, *value)
		}
	}

	addField("phone", update.Phone)
	addField("location", update.Location)
	addField("resume_path", update.ResumePath)
	addField("linkedin_url", update.LinkedInURL)
	addField("portfolio_url", update.PortfolioURL)
	addField("bio", update.Bio)

	if update.Skills != nil {
		skills := *update.Skills
		if skills == nil {
			skills = []string{}
		}
		data, err := json.Marshal(skills)
		if err != nil {
			return fmt.Errorf("failed to encode skills: %w", err)
		}
		sets = append(sets, "skills = ?")
		args = append(args, string(data))
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, toUnix(updatedAt), userID)

	query := "UPDATE user_profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = ?"

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

// DeactivateUser marks user inactive and switches off all its sessions
func (s *Storage) DeactivateUser(ctx context.Context, userID int64) (bool, error) {
	var changed bool

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE users SET is_active = 0 WHERE id = ? AND is_active = 1`, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate user: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		changed = rows > 0

		if _, err := tx.ExecContext(ctx,
			`UPDATE user_sessions SET is_active = 0 WHERE user_id = ?`, userID,
		); err != nil {
			return fmt.Errorf("failed to deactivate user sessions: %w", err)
		}

		return nil
	})
	if err != nil {
		return false, err
	}

	return changed, nil
}
