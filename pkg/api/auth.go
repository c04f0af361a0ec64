package api

import "time"

// TokenTypeBearer тип выдаваемого токена
const TokenTypeBearer = "bearer"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"` // plaintext, хешируется на сервере
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse представляет ответ с session token
type LoginResponse struct {
	ExpiresAt   time.Time    `json:"expires_at"`   // момент истечения сессии
	User        UserResponse `json:"user"`         // данные пользователя
	AccessToken string       `json:"access_token"` // opaque session token
	TokenType   string       `json:"token_type"`   // всегда "bearer"
}

// EmailAvailabilityResponse представляет ответ проверки email
type EmailAvailabilityResponse struct {
	Message   string `json:"message"`
	Available bool   `json:"available"`
}

// MessageResponse представляет простой ответ с сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
