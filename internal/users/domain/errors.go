package domain

import (
	"errors"

	authdomain "darna/internal/auth/domain"
)

var (
	ErrInvalidUserID   = errors.New("invalid user ID")
	ErrNothingToUpdate = errors.New("no fields to update")
	ErrSamePassword    = errors.New("new password must differ from the current one")

	ErrUserNotFound      = authdomain.ErrUserNotFound
	ErrIncorrectPassword = authdomain.ErrIncorrectPassword
	ErrWeakPassword      = authdomain.ErrWeakPassword
)
