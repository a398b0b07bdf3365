package validator

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type testPassword struct {
	Password string `validate:"strongpassword"`
}

func TestValidateStrongPassword(t *testing.T) {
	v := validator.New()
	RegisterPasswordValidation(v)

	tests := []struct {
		name      string
		password  string
		wantValid bool
	}{
		{"all requirements", "Password123!", true},
		{"short mixed password", "Abcdef1!", true},
		{"complex", "MyS3cure!P@ssw0rd#2024", true},
		{"minimum length", "Pass1!aa", true},
		{"with spaces", "Pass 123!", true},
		{"too short", "Pass1!", false},
		{"no uppercase", "password123!", false},
		{"no lowercase", "PASSWORD123!", false},
		{"no number", "Password!", false},
		{"no special", "Password123", false},
		{"only numbers", "12345678", false},
		{"only specials", "!@#$%^&*", false},
		{"empty", "", false},
		{"max length", "Aa1!" + strings.Repeat("a", MaxPasswordLength-4), true},
		{"over max length", "Aa1!" + strings.Repeat("a", MaxPasswordLength-3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(testPassword{Password: tt.password})
			if tt.wantValid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			assert.Equal(t, tt.wantValid, IsStrongPassword(tt.password))
		})
	}
}

type registerLike struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,strongpassword"`
	Role     string `validate:"omitempty,oneof=visitor individual business"`
}

func TestFirstFailure(t *testing.T) {
	cv := New()

	err := cv.Validate(registerLike{Password: "Password123!"})
	field, tag, ok := FirstFailure(err)
	assert.True(t, ok)
	assert.Equal(t, "Email", field)
	assert.Equal(t, "required", tag)

	err = cv.Validate(registerLike{Email: "a@b.com", Password: "weak"})
	field, tag, ok = FirstFailure(err)
	assert.True(t, ok)
	assert.Equal(t, "Password", field)
	assert.Equal(t, "strongpassword", tag)

	err = cv.Validate(registerLike{Email: "a@b.com", Password: "Password123!", Role: "admin"})
	_, tag, ok = FirstFailure(err)
	assert.True(t, ok)
	assert.Equal(t, "oneof", tag)

	assert.NoError(t, cv.Validate(registerLike{Email: "a@b.com", Password: "Password123!"}))

	_, _, ok = FirstFailure(assert.AnError)
	assert.False(t, ok)
}
