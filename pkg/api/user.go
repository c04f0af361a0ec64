package api

import "time"

// UserResponse представляет пользователя вместе с профилем
type UserResponse struct {
	CreatedAt time.Time       `json:"created_at"`
	LastLogin *time.Time      `json:"last_login,omitempty"`
	Profile   ProfileResponse `json:"profile"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	ID        int64           `json:"id"`
	IsActive  bool            `json:"is_active"`
}

// ProfileResponse представляет профиль пользователя
type ProfileResponse struct {
	UpdatedAt    time.Time `json:"updated_at"`
	Phone        *string   `json:"phone"`
	Location     *string   `json:"location"`
	ResumePath   *string   `json:"resume_path"`
	LinkedInURL  *string   `json:"linkedin_url"`
	PortfolioURL *string   `json:"portfolio_url"`
	Bio          *string   `json:"bio"`
	Skills       []string  `json:"skills"`
}

// ProfileUpdateRequest представляет частичное обновление профиля.
// Отсутствующие поля не изменяются, неизвестные ключи игнорируются
type ProfileUpdateRequest struct {
	Phone        *string   `json:"phone,omitempty"`
	Location     *string   `json:"location,omitempty"`
	ResumePath   *string   `json:"resume_path,omitempty"`
	LinkedInURL  *string   `json:"linkedin_url,omitempty"`
	PortfolioURL *string   `json:"portfolio_url,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
}
