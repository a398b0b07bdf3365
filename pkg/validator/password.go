package validator

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// IsStrongPassword requires 8-128 runes with an upper, a lower, a digit and a punctuation or symbol.
func IsStrongPassword(password string) bool {
	n := len([]rune(password))
	if n < MinPasswordLength || n > MaxPasswordLength {
		return false
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func ValidateStrongPassword(fl validator.FieldLevel) bool {
	return IsStrongPassword(fl.Field().String())
}

func RegisterPasswordValidation(v *validator.Validate) {
	_ = v.RegisterValidation("strongpassword", ValidateStrongPassword)
}
