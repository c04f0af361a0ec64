package validation

import (
	"fmt"
	"strings"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

const (
	// DefaultMinPasswordLen минимальная длина пароля
	DefaultMinPasswordLen = 6
	// DefaultMaxPasswordLen максимальная длина пароля
	DefaultMaxPasswordLen = 128
)

// passwordSpecials символы, которые засчитываются как "цифра или спецсимвол"
const passwordSpecials = `0123456789!@#$%^&*(),.?":{}|<>`

// PasswordRule validates a password according to a single policy rule.
type PasswordRule func(password string) error

// PasswordValidator applies a sequence of password rules.
type PasswordValidator struct {
	rules []PasswordRule
}

// NewPasswordValidator constructs a validator with the provided rules.
func NewPasswordValidator(rules ...PasswordRule) *PasswordValidator {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordValidator{rules: copied}
}

// PasswordPolicy описывает настраиваемые требования к паролю
type PasswordPolicy struct {
	MinLength int `mapstructure:"min_length"`
	MaxLength int `mapstructure:"max_length"`
	MinScore  int `mapstructure:"min_score"` // порог zxcvbn 0-4, 0 отключает проверку
}

// DefaultPasswordPolicy returns 6-128 characters without a strength score requirement.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength: DefaultMinPasswordLen,
		MaxLength: DefaultMaxPasswordLen,
	}
}

// Validator builds a validator for the policy. userInputs are passed to
// the strength estimator so that passwords derived from them score lower.
func (p PasswordPolicy) Validator(userInputs ...string) *PasswordValidator {
	rules := []PasswordRule{
		LengthRule(p.MinLength, p.MaxLength),
		DigitOrSpecialRule(),
	}
	if p.MinScore > 0 {
		rules = append(rules, StrengthRule(p.MinScore, userInputs...))
	}
	return NewPasswordValidator(rules...)
}

// DefaultPasswordValidator returns the validator used by registration:
// 6-128 characters with at least one digit or special character.
func DefaultPasswordValidator() *PasswordValidator {
	return DefaultPasswordPolicy().Validator()
}

// Validate executes all rules and returns the first violation.
func (v *PasswordValidator) Validate(password string) error {
	if v == nil {
		return fmt.Errorf("password validator not configured")
	}
	for _, rule := range v.rules {
		if err := rule(password); err != nil {
			return err
		}
	}
	return nil
}

// LengthRule ensures the password length is within [min, max] characters.
func LengthRule(min, max int) PasswordRule {
	return func(password string) error {
		if password == "" {
			return fmt.Errorf("password cannot be empty")
		}
		n := len([]rune(password))
		if n < min {
			return fmt.Errorf("password must be at least %d characters long", min)
		}
		if max > 0 && n > max {
			return fmt.Errorf("password must be less than %d characters", max)
		}
		return nil
	}
}

// DigitOrSpecialRule ensures the password contains a digit or a special character.
func DigitOrSpecialRule() PasswordRule {
	return func(password string) error {
		if strings.ContainsAny(password, passwordSpecials) {
			return nil
		}
		return fmt.Errorf("password should contain at least one number or special character")
	}
}

// StrengthRule rejects passwords whose zxcvbn score (0-4) is below minScore.
// userInputs are words the password must not be built from (email, names).
func StrengthRule(minScore int, userInputs ...string) PasswordRule {
	return func(password string) error {
		if minScore <= 0 {
			return nil
		}
		result := zxcvbn.PasswordStrength(password, userInputs)
		if result.Score < minScore {
			return fmt.Errorf("password is too weak (score %d, required %d)", result.Score, minScore)
		}
		return nil
	}
}
