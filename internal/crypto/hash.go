package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Параметры PBKDF2 для хеширования паролей
const (
	// PBKDF2Iterations - количество итераций HMAC-SHA256
	PBKDF2Iterations = 100_000
	// PBKDF2KeyLen - длина выходного ключа в байтах
	PBKDF2KeyLen = 32
)

// HashPassword хеширует пароль со свежей случайной солью
// Возвращает hex-encoded хеш и hex-encoded соль
func HashPassword(password string) (hash, salt string, err error) {
	salt, err = GenerateSaltHex()
	if err != nil {
		return "", "", err
	}
	return DeriveHash(password, salt), salt, nil
}

// DeriveHash вычисляет PBKDF2-HMAC-SHA256 от пароля и соли
// Соль используется в текстовом (hex) виде, детерминировано для пары (password, salt)
func DeriveHash(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), PBKDF2Iterations, PBKDF2KeyLen, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyPassword проверяет пароль против сохраненных хеша и соли
// Поврежденная запись (не hex или другая длина) никогда не проходит проверку
func VerifyPassword(password, hash, salt string) bool {
	if ValidateHashFormat(hash, salt) != nil {
		return false
	}

	computed := DeriveHash(password, salt)

	// Сравниваем за постоянное время
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

// ValidateHashFormat проверяет, что хеш и соль имеют ожидаемый формат
func ValidateHashFormat(hash, salt string) error {
	if len(hash) != PBKDF2KeyLen*2 || !isHex(hash) {
		return fmt.Errorf("invalid password hash format")
	}
	if len(salt) != SaltSize*2 || !isHex(salt) {
		return fmt.Errorf("invalid salt format")
	}
	return nil
}
