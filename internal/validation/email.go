package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern определяет допустимый формат email
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MaxEmailLen максимальная длина email (RFC 5321)
const MaxEmailLen = 254

// ValidateEmail проверяет базовый формат email
// Регистр не нормализуется: email хранится так, как ввел пользователь
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("email cannot be empty")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidateName проверяет имя или фамилию пользователя (1-50 символов)
func ValidateName(field, value string) error {
	const maxNameLen = 50

	n := len([]rune(strings.TrimSpace(value)))
	if n == 0 {
		return fmt.Errorf("%s cannot be empty", field)
	}
	if n > maxNameLen {
		return fmt.Errorf("%s must not exceed %d characters", field, maxNameLen)
	}
	return nil
}
