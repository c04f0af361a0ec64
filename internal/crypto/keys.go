package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	// SaltSize - размер соли в байтах
	SaltSize = 32
	// TokenSize - количество случайных байт в session token
	TokenSize = 32
)

// GenerateSalt генерирует криптографически случайную соль указанного размера
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// GenerateSaltHex генерирует соль и возвращает ее в hex (64 символа)
func GenerateSaltHex() (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

// GenerateSessionToken создает новый непредсказуемый URL-safe session token
func GenerateSessionToken() (string, error) {
	// Генерируем случайные 32 байта
	tokenBytes := make([]byte, TokenSize)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	// Кодируем в base64 без padding
	return base64.RawURLEncoding.EncodeToString(tokenBytes), nil
}
