package domain

import "errors"

var (
	ErrRequiredFieldsMissing = errors.New("required fields are missing")
	ErrInvalidEmailFormat    = errors.New("email format is invalid")
	ErrWeakPassword          = errors.New("password must be 8-128 characters and contain uppercase, lowercase, number and special character")
	ErrInvalidName           = errors.New("name must be between 2 and 50 characters")
	ErrInvalidRole           = errors.New("role is not allowed")
	ErrInvalidSubscription   = errors.New("subscription tier is not valid")
	ErrInvalidCompanyInfo    = errors.New("company information is invalid")
	ErrUserAlreadyExists     = errors.New("user with this email already exists")
	ErrUserNotFound          = errors.New("account not found")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrIncorrectPassword     = errors.New("incorrect password")
	ErrAccountInactive       = errors.New("account has been deactivated, contact support")
	ErrAccountLocked         = errors.New("account is locked, contact support")

	ErrTokenMissing = errors.New("authentication token is missing")
	ErrTokenInvalid = errors.New("authentication token is invalid")
	ErrTokenExpired = errors.New("authentication token has expired")
	ErrTokenRevoked = errors.New("authentication token has been revoked")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	ErrForbidden            = errors.New("you do not have permission to perform this action")
	ErrSubscriptionRequired = errors.New("a pro or premium subscription is required")
	ErrTooManyAttempts      = errors.New("too many attempts, please try again later")

	ErrTwoFactorAlreadyEnabled = errors.New("two-factor authentication is already enabled")
	ErrTwoFactorNotEnabled     = errors.New("two-factor authentication is not enabled")
	ErrTwoFactorNotConfigured  = errors.New("two-factor authentication is not configured, run setup first")
	ErrInvalidTwoFactorCode    = errors.New("invalid two-factor code")
	ErrInvalidRecoveryCode     = errors.New("invalid recovery code")
)
