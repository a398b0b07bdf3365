// Package httputil writes the {success, message, code} envelope every
// endpoint answers with and maps domain errors onto it.
package httputil

import (
	"errors"
	"net/http"

	"darna/internal/auth/domain"
	userdomain "darna/internal/users/domain"
	"darna/pkg/uploadfiles"
	"darna/pkg/validator"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
	CodeBadRequest    = "BAD_REQUEST"
	CodeNotFound      = "NOT_FOUND"
	CodeTooManyTries  = "TOO_MANY_ATTEMPTS"
	CodeForbidden     = "FORBIDDEN"
	CodeTokenMissing  = "TOKEN_MISSING"
	CodeUnsupported   = "UNSUPPORTED_FILE_TYPE"
	CodeFileTooLarge  = "FILE_TOO_LARGE"
	CodeRequiredField = "REQUIRED_FIELDS_MISSING"
)

type apiError struct {
	status int
	code   string
}

var errorTable = []struct {
	err error
	apiError
}{
	{domain.ErrRequiredFieldsMissing, apiError{http.StatusBadRequest, CodeRequiredField}},
	{domain.ErrInvalidEmailFormat, apiError{http.StatusBadRequest, "EMAIL_INVALID"}},
	{domain.ErrWeakPassword, apiError{http.StatusBadRequest, "PASSWORD_WEAK"}},
	{domain.ErrInvalidName, apiError{http.StatusBadRequest, CodeValidation}},
	{domain.ErrInvalidRole, apiError{http.StatusBadRequest, CodeValidation}},
	{domain.ErrInvalidSubscription, apiError{http.StatusBadRequest, CodeValidation}},
	{domain.ErrInvalidCompanyInfo, apiError{http.StatusBadRequest, CodeValidation}},
	{domain.ErrUserAlreadyExists, apiError{http.StatusBadRequest, "USER_ALREADY_EXISTS"}},
	{domain.ErrUserNotFound, apiError{http.StatusNotFound, "ACCOUNT_NOT_FOUND"}},
	{domain.ErrInvalidCredentials, apiError{http.StatusUnauthorized, "INVALID_CREDENTIALS"}},
	{domain.ErrIncorrectPassword, apiError{http.StatusUnauthorized, "INCORRECT_PASSWORD"}},
	{domain.ErrAccountInactive, apiError{http.StatusForbidden, "ACCOUNT_INACTIVE"}},
	{domain.ErrAccountLocked, apiError{http.StatusLocked, "ACCOUNT_LOCKED"}},
	{domain.ErrTokenMissing, apiError{http.StatusUnauthorized, CodeTokenMissing}},
	{domain.ErrTokenInvalid, apiError{http.StatusUnauthorized, "TOKEN_INVALID"}},
	{domain.ErrTokenExpired, apiError{http.StatusUnauthorized, "TOKEN_EXPIRED"}},
	{domain.ErrTokenRevoked, apiError{http.StatusUnauthorized, "TOKEN_REVOKED"}},
	{domain.ErrForbidden, apiError{http.StatusForbidden, CodeForbidden}},
	{domain.ErrSubscriptionRequired, apiError{http.StatusForbidden, "SUBSCRIPTION_REQUIRED"}},
	{domain.ErrTooManyAttempts, apiError{http.StatusTooManyRequests, CodeTooManyTries}},
	{domain.ErrTwoFactorAlreadyEnabled, apiError{http.StatusBadRequest, "TWO_FACTOR_ALREADY_ENABLED"}},
	{domain.ErrTwoFactorNotEnabled, apiError{http.StatusBadRequest, "TWO_FACTOR_NOT_ENABLED"}},
	{domain.ErrTwoFactorNotConfigured, apiError{http.StatusBadRequest, "TWO_FACTOR_NOT_CONFIGURED"}},
	{domain.ErrInvalidTwoFactorCode, apiError{http.StatusUnauthorized, "TWO_FACTOR_INVALID_CODE"}},
	{domain.ErrInvalidRecoveryCode, apiError{http.StatusUnauthorized, "INVALID_RECOVERY_CODE"}},
	{userdomain.ErrInvalidUserID, apiError{http.StatusBadRequest, "INVALID_USER_ID"}},
	{userdomain.ErrNothingToUpdate, apiError{http.StatusBadRequest, CodeValidation}},
	{userdomain.ErrSamePassword, apiError{http.StatusBadRequest, "PASSWORD_UNCHANGED"}},
	{uploadfiles.ErrFileTooLarge, apiError{http.StatusBadRequest, CodeFileTooLarge}},
	{uploadfiles.ErrUnsupportedType, apiError{http.StatusBadRequest, CodeUnsupported}},
	{uploadfiles.ErrStorageDisabled, apiError{http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"}},
}

// Success writes {"success": true, "message": message} merged with payload.
func Success(c echo.Context, status int, message string, payload echo.Map) error {
	body := echo.Map{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

func Fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"message": message,
		"code":    code,
	})
}

// Lookup returns the status and code for a known domain error.
func Lookup(err error) (int, string, bool) {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.status, e.code, true
		}
	}
	return 0, "", false
}

// Error answers with the mapped status for domain errors and a generic 500
// otherwise. Unmapped error text is logged, never returned.
func Error(c echo.Context, log *zap.Logger, err error) error {
	if status, code, ok := Lookup(err); ok {
		return Fail(c, status, code, messageFor(err))
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		return Fail(c, he.Code, codeForStatus(he.Code), msg)
	}

	log.Error("unhandled error",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return Fail(c, http.StatusInternalServerError, CodeInternal, "Internal server error")
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusUnauthorized:
		return CodeTokenMissing
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusTooManyRequests:
		return CodeTooManyTries
	case http.StatusRequestEntityTooLarge:
		return CodeFileTooLarge
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return CodeBadRequest
}

// messageFor returns the sentinel text, not any wrapping context around it.
func messageFor(err error) string {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.err.Error()
		}
	}
	return err.Error()
}

// BindAndValidate decodes the body into dst and runs struct validation,
// translating the first failed rule into the matching domain error.
func BindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	field, tag, ok := validator.FirstFailure(err)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request")
	}

	switch tag {
	case "required":
		return domain.ErrRequiredFieldsMissing
	case "strongpassword":
		return domain.ErrWeakPassword
	case "email":
		return domain.ErrInvalidEmailFormat
	}

	switch field {
	case "Name":
		return domain.ErrInvalidName
	case "Role":
		return domain.ErrInvalidRole
	case "SubscriptionType":
		return domain.ErrInvalidSubscription
	case "Siret", "Address", "CompanyName":
		return domain.ErrInvalidCompanyInfo
	case "TwoFactorToken", "Token":
		return domain.ErrInvalidTwoFactorCode
	case "RecoveryCode":
		return domain.ErrInvalidRecoveryCode
	}
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid value for "+field)
}

// ErrorHandler renders errors escaping handlers and echo's own routing
// errors (404, 405, body limit) in the same envelope.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if werr := Error(c, log, err); werr != nil {
			log.Error("failed to write error response", zap.Error(werr))
		}
	}
}
