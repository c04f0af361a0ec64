package models

import "time"

// User представляет пользователя в системе вместе с его профилем
type User struct {
	CreatedAt    time.Time   `json:"created_at"`           // время регистрации
	LastLogin    *time.Time  `json:"last_login,omitempty"` // время последнего входа (nil если не входил)
	Profile      UserProfile `json:"profile"`              // профиль пользователя (1:1)
	Email        string      `json:"email"`                // уникальный email (регистр сохраняется)
	PasswordHash string      `json:"-"`                    // hex PBKDF2-SHA256 хеш пароля
	Salt         string      `json:"-"`                    // hex соль (32 bytes)
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	ID           int64       `json:"id"`
	IsActive     bool        `json:"is_active"` // деактивированный пользователь не может войти
}

// UserProfile представляет необязательные данные профиля пользователя
type UserProfile struct {
	UpdatedAt    time.Time `json:"updated_at"`
	Phone        *string   `json:"phone,omitempty"`
	Location     *string   `json:"location,omitempty"`
	ResumePath   *string   `json:"resume_path,omitempty"`
	LinkedInURL  *string   `json:"linkedin_url,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Skills       []string  `json:"skills,omitempty"` // хранится в БД как JSON массив
	UserID       int64     `json:"user_id"`
}

// ProfileUpdate describes a sparse profile update.
// Only non-nil fields are written; an update without fields is a no-op.
type ProfileUpdate struct {
	Phone        *string
	Location     *string
	ResumePath   *string
	LinkedInURL  *string
	PortfolioURL *string
	Bio          *string
	Skills       *[]string
}

// IsEmpty reports whether the update carries no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Phone == nil && u.Location == nil && u.ResumePath == nil &&
		u.LinkedInURL == nil && u.PortfolioURL == nil && u.Bio == nil && u.Skills == nil
}

// SessionUser is the public identity returned by session validation.
type SessionUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ID        int64  `json:"id"`
}

// Session представляет сессию пользователя (opaque bearer token)
type Session struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"` // хранится в БД как UNIX seconds
	Token     string    `json:"token"`
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	IsActive  bool      `json:"is_active"`
}
