package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/auth/handler"
	"darna/internal/auth/usecase"
	"darna/internal/middleware"
	"darna/pkg/token"
	"darna/pkg/validator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const bearer = "Bearer good-token"

func setupHandler(t *testing.T) (*echo.Echo, *MockAuthUsecase, *MockTwoFactorUsecase) {
	ctrl := gomock.NewController(t)
	mockAuth := NewMockAuthUsecase(ctrl)
	mockTwoFactor := NewMockTwoFactorUsecase(ctrl)
	log := zap.NewNop()

	e := echo.New()
	e.Validator = validator.New()

	passthrough := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	h := handler.NewAuthHandler(mockAuth, mockTwoFactor, log)
	h.Bind(e.Group("/api/auth"), middleware.BearerAuth(mockAuth, log), passthrough)

	return e, mockAuth, mockTwoFactor
}

func doJSON(e *echo.Echo, method, path, body, auth string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func sessionFixture() *usecase.AuthResult {
	return &usecase.AuthResult{
		User: &usecase.UserInfo{ID: uuid.NewString(), Email: "owner@example.com", Name: "Owner", Role: domain.RoleIndividual},
		Tokens: &usecase.TokenPair{
			AccessToken:          "access",
			RefreshToken:         "refresh",
			AccessTokenExpiresAt: time.Now().Add(15 * time.Minute),
		},
	}
}

func accessClaims(userID uuid.UUID, role domain.Role) *token.Claims {
	return &token.Claims{
		UserID:    userID.String(),
		Email:     "owner@example.com",
		Role:      string(role),
		TokenType: token.TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}
}

func TestRegisterHandler(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)

	mockAuth.EXPECT().
		Register(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in usecase.RegisterInput, _ domain.DeviceInfo) (*usecase.AuthResult, error) {
			assert.Equal(t, "owner@example.com", in.Email)
			assert.Equal(t, "business", in.Role)
			return sessionFixture(), nil
		})

	rec, body := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"owner@example.com","password":"Password123!","name":"Owner","role":"business"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "access", body["accessToken"])
	assert.Equal(t, "refresh", body["refreshToken"])
	user := body["user"].(map[string]any)
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "twoFactorSecret")
}

func TestRegisterHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"missing fields", `{"email":"owner@example.com"}`, "REQUIRED_FIELDS_MISSING"},
		{"bad email", `{"email":"nope","password":"Password123!","name":"Owner"}`, "EMAIL_INVALID"},
		{"weak password", `{"email":"owner@example.com","password":"password","name":"Owner"}`, "PASSWORD_WEAK"},
		{"admin role", `{"email":"owner@example.com","password":"Password123!","name":"Owner","role":"admin"}`, "VALIDATION_ERROR"},
		{"single letter name", `{"email":"owner@example.com","password":"Password123!","name":"A"}`, "VALIDATION_ERROR"},
		{"malformed json", `{"email":`, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := setupHandler(t)

			rec, body := doJSON(e, http.MethodPost, "/api/auth/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantCode, body["code"])
		})
	}
}

func TestRegisterHandler_Duplicate(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	mockAuth.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrUserAlreadyExists)

	rec, body := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"owner@example.com","password":"Password123!","name":"Owner"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", body["code"])
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		e, mockAuth, _ := setupHandler(t)
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(sessionFixture(), nil)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"owner@example.com","password":"x"}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "access", body["accessToken"])
	})

	t.Run("invalid credentials", func(t *testing.T) {
		e, mockAuth, _ := setupHandler(t)
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidCredentials)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"owner@example.com","password":"x"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
	})

	t.Run("inactive", func(t *testing.T) {
		e, mockAuth, _ := setupHandler(t)
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrAccountInactive)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"owner@example.com","password":"x"}`, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "ACCOUNT_INACTIVE", body["code"])
	})

	t.Run("two-factor required", func(t *testing.T) {
		e, mockAuth, _ := setupHandler(t)
		mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(&usecase.AuthResult{RequiresTwoFactor: true}, nil)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"owner@example.com","password":"x"}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, true, body["requires2FA"])
		assert.Equal(t, "TWO_FACTOR_REQUIRED", body["code"])
		assert.NotContains(t, body, "accessToken")
	})

	t.Run("malformed two-factor code", func(t *testing.T) {
		e, _, _ := setupHandler(t)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/login",
			`{"email":"owner@example.com","password":"x","twoFactorToken":"12ab"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TWO_FACTOR_INVALID_CODE", body["code"])
	})
}

func TestRefreshTokenHandler(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		e, _, _ := setupHandler(t)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/refresh-token", `{}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_MISSING", body["code"])
	})

	t.Run("rotated", func(t *testing.T) {
		e, mockAuth, _ := setupHandler(t)
		mockAuth.EXPECT().
			Refresh(gomock.Any(), "old-refresh", gomock.Any()).
			Return(&usecase.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/refresh-token", `{"refreshToken":"old-refresh"}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "a2", body["accessToken"])
		assert.Equal(t, "r2", body["refreshToken"])
	})

	for _, tc := range []struct {
		err  error
		code string
	}{
		{domain.ErrTokenExpired, "TOKEN_EXPIRED"},
		{domain.ErrTokenRevoked, "TOKEN_REVOKED"},
		{domain.ErrTokenInvalid, "TOKEN_INVALID"},
	} {
		t.Run(tc.code, func(t *testing.T) {
			e, mockAuth, _ := setupHandler(t)
			mockAuth.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec, body := doJSON(e, http.MethodPost, "/api/auth/refresh-token", `{"refreshToken":"r"}`, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)

	rec, body := doJSON(e, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_MISSING", body["code"])

	rec, body = doJSON(e, http.MethodGet, "/api/auth/me", "", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_MISSING", body["code"])

	mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "stale").Return(nil, domain.ErrTokenRevoked)
	rec, body = doJSON(e, http.MethodGet, "/api/auth/me", "", "Bearer stale")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_REVOKED", body["code"])
}

func TestMeHandler(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	userID := uuid.New()

	mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
	mockAuth.EXPECT().GetUserByID(gomock.Any(), userID).Return(&usecase.UserInfo{ID: userID.String(), Email: "owner@example.com"}, nil)

	rec, body := doJSON(e, http.MethodGet, "/api/auth/me", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, userID.String(), user["id"])
}

func TestValidateHandler(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	userID := uuid.New()

	mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleBusiness), nil)

	rec, body := doJSON(e, http.MethodGet, "/api/auth/validate", "", bearer)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["valid"])
	user := body["user"].(map[string]any)
	assert.Equal(t, userID.String(), user["userId"])
	assert.Equal(t, "business", user["role"])
}

func TestLogoutHandler(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	userID := uuid.New()
	claims := accessClaims(userID, domain.RoleIndividual)

	mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(claims, nil)
	mockAuth.EXPECT().
		Logout(gomock.Any(), usecase.LogoutInput{AccessClaims: claims, RefreshToken: "r1"}).
		Return(nil)

	rec, body := doJSON(e, http.MethodPost, "/api/auth/logout", `{"refreshToken":"r1"}`, bearer)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestLogoutHandler_WithoutBody(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	userID := uuid.New()
	claims := accessClaims(userID, domain.RoleIndividual)

	mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(claims, nil)
	mockAuth.EXPECT().Logout(gomock.Any(), usecase.LogoutInput{AccessClaims: claims}).Return(nil)

	rec, body := doJSON(e, http.MethodPost, "/api/auth/logout", "", bearer)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
}

func TestLogoutHandler_MalformedBody(t *testing.T) {
	for _, payload := range []string{`{"refreshToken":123}`, `{"refreshToken":`} {
		e, mockAuth, _ := setupHandler(t)
		mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(uuid.New(), domain.RoleIndividual), nil)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/logout", payload, bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.Equal(t, false, body["success"], payload)
		assert.Equal(t, "BAD_REQUEST", body["code"], payload)
	}
}

func TestRevokeAllTokensHandler(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	userID := uuid.New()

	mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
	mockAuth.EXPECT().RevokeAllRefreshTokens(gomock.Any(), userID).Return(int64(4), nil)

	rec, body := doJSON(e, http.MethodPost, "/api/auth/revoke-all-tokens", "", bearer)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 4, body["revoked"])
}

func TestListRefreshTokensHandler(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	userID := uuid.New()

	mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
	mockAuth.EXPECT().ListActiveRefreshTokens(gomock.Any(), userID).Return([]usecase.RefreshTokenInfo{
		{ID: uuid.NewString(), DeviceInfo: testDevice},
	}, nil)

	rec, body := doJSON(e, http.MethodGet, "/api/auth/refresh-tokens", "", bearer)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])
	tokens := body["refreshTokens"].([]any)
	device := tokens[0].(map[string]any)["deviceInfo"].(map[string]any)
	assert.Equal(t, "go-test", device["userAgent"])
}

func TestTwoFactorHandlers(t *testing.T) {
	t.Run("setup", func(t *testing.T) {
		e, mockAuth, mockTwoFactor := setupHandler(t)
		userID := uuid.New()

		mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
		mockTwoFactor.EXPECT().Setup(gomock.Any(), userID).Return(&usecase.TwoFactorSetupOutput{
			Secret:         "JBSWY3DPEHPK3PXP",
			ManualEntryKey: "JBSWY3DPEHPK3PXP",
			OTPAuthURL:     "otpauth://totp/Darna:owner@example.com?secret=JBSWY3DPEHPK3PXP",
			QRCode:         "data:image/png;base64,AAAA",
		}, nil)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/2fa/setup", "", bearer)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "JBSWY3DPEHPK3PXP", body["secret"])
		assert.Equal(t, "data:image/png;base64,AAAA", body["qrCode"])
	})

	t.Run("setup when enabled", func(t *testing.T) {
		e, mockAuth, mockTwoFactor := setupHandler(t)
		userID := uuid.New()

		mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
		mockTwoFactor.EXPECT().Setup(gomock.Any(), userID).Return(nil, domain.ErrTwoFactorAlreadyEnabled)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/2fa/setup", "", bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "TWO_FACTOR_ALREADY_ENABLED", body["code"])
	})

	t.Run("confirm", func(t *testing.T) {
		e, mockAuth, mockTwoFactor := setupHandler(t)
		userID := uuid.New()
		codes := []string{"AAAA1111", "BBBB2222"}

		mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
		mockTwoFactor.EXPECT().Confirm(gomock.Any(), userID, "123456").Return(&usecase.TwoFactorConfirmOutput{RecoveryCodes: codes}, nil)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/2fa/verify", `{"token":"123456"}`, bearer)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{"AAAA1111", "BBBB2222"}, body["recoveryCodes"])
	})

	t.Run("confirm with wrong code", func(t *testing.T) {
		e, mockAuth, mockTwoFactor := setupHandler(t)
		userID := uuid.New()

		mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
		mockTwoFactor.EXPECT().Confirm(gomock.Any(), userID, "654321").Return(nil, domain.ErrInvalidTwoFactorCode)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/2fa/verify", `{"token":"654321"}`, bearer)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TWO_FACTOR_INVALID_CODE", body["code"])
	})

	t.Run("disable when not enabled", func(t *testing.T) {
		e, mockAuth, mockTwoFactor := setupHandler(t)
		userID := uuid.New()

		mockAuth.EXPECT().ValidateAccessToken(gomock.Any(), "good-token").Return(accessClaims(userID, domain.RoleIndividual), nil)
		mockTwoFactor.EXPECT().Disable(gomock.Any(), userID).Return(domain.ErrTwoFactorNotEnabled)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/2fa/disable", "", bearer)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "TWO_FACTOR_NOT_ENABLED", body["code"])
	})

	t.Run("recovery login", func(t *testing.T) {
		e, mockAuth, _ := setupHandler(t)

		mockAuth.EXPECT().
			LoginWithRecoveryCode(gomock.Any(), usecase.RecoveryLoginInput{Email: "owner@example.com", RecoveryCode: "abcd1234"}, gomock.Any()).
			Return(sessionFixture(), nil)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/2fa/recovery", `{"email":"owner@example.com","recoveryCode":"abcd1234"}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "access", body["accessToken"])
	})

	t.Run("recovery login rejected", func(t *testing.T) {
		e, mockAuth, _ := setupHandler(t)
		mockAuth.EXPECT().LoginWithRecoveryCode(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidRecoveryCode)

		rec, body := doJSON(e, http.MethodPost, "/api/auth/2fa/recovery", `{"email":"owner@example.com","recoveryCode":"ZZZZ9999"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_RECOVERY_CODE", body["code"])
	})
}

func TestUnexpectedErrorsAreNotLeaked(t *testing.T) {
	e, mockAuth, _ := setupHandler(t)
	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	rec, body := doJSON(e, http.MethodPost, "/api/auth/login", `{"email":"owner@example.com","password":"x"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.NotContains(t, body["message"], assert.AnError.Error())
}
