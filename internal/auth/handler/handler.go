package handler

import (
	"net/http"

	"darna/internal/auth/domain"
	"darna/internal/auth/usecase"
	"darna/internal/httputil"
	"darna/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	usecase   usecase.AuthUsecase
	twoFactor usecase.TwoFactorUsecase
	log       *zap.Logger
}

func NewAuthHandler(u usecase.AuthUsecase, tf usecase.TwoFactorUsecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		usecase:   u,
		twoFactor: tf,
		log:       log,
	}
}

// Bind registers the auth routes. requireAuth guards session routes and
// limit throttles the credential-checking ones.
func (h *AuthHandler) Bind(g *echo.Group, requireAuth, limit echo.MiddlewareFunc) {
	g.POST("/register", h.RegisterHandler)
	g.POST("/login", h.LoginHandler, limit)
	g.POST("/refresh-token", h.RefreshTokenHandler, limit)

	g.POST("/logout", h.LogoutHandler, requireAuth)
	g.POST("/revoke-all-tokens", h.RevokeAllTokensHandler, requireAuth)
	g.GET("/me", h.MeHandler, requireAuth)
	g.GET("/validate", h.ValidateHandler, requireAuth)
	g.GET("/refresh-tokens", h.ListRefreshTokensHandler, requireAuth)

	tf := g.Group("/2fa")
	tf.POST("/setup", h.SetupTwoFactorHandler, requireAuth)
	tf.POST("/verify", h.ConfirmTwoFactorHandler, requireAuth)
	tf.POST("/disable", h.DisableTwoFactorHandler, requireAuth)
	tf.POST("/recovery", h.RecoveryLoginHandler, limit)
}

func deviceInfo(c echo.Context) domain.DeviceInfo {
	return domain.DeviceInfo{
		UserAgent: c.Request().UserAgent(),
		IPAddress: c.RealIP(),
	}
}

func sessionPayload(res *usecase.AuthResult) echo.Map {
	return echo.Map{
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
		"expiresAt":    res.Tokens.AccessTokenExpiresAt,
		"user":         res.User,
	}
}

func (h *AuthHandler) fail(c echo.Context, err error) error {
	return httputil.Error(c, h.log, err)
}

func (h *AuthHandler) RegisterHandler(c echo.Context) error {
	var req usecase.RegisterInput
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	res, err := h.usecase.Register(c.Request().Context(), req, deviceInfo(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusCreated, "User registered successfully", sessionPayload(res))
}

func (h *AuthHandler) LoginHandler(c echo.Context) error {
	var req usecase.LoginInput
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	res, err := h.usecase.Login(c.Request().Context(), req, deviceInfo(c))
	if err != nil {
		return h.fail(c, err)
	}

	if res.RequiresTwoFactor {
		return c.JSON(http.StatusOK, echo.Map{
			"success":     false,
			"requires2FA": true,
			"message":     "Two-factor code required",
			"code":        "TWO_FACTOR_REQUIRED",
		})
	}

	return httputil.Success(c, http.StatusOK, "Login successful", sessionPayload(res))
}

func (h *AuthHandler) RefreshTokenHandler(c echo.Context) error {
	var req usecase.RefreshInput
	if err := httputil.BindAndValidate(c, &req); err != nil {
		if _, _, ok := httputil.Lookup(err); ok {
			return h.fail(c, domain.ErrTokenMissing)
		}
		return h.fail(c, err)
	}

	pair, err := h.usecase.Refresh(c.Request().Context(), req.RefreshToken, deviceInfo(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Tokens refreshed", echo.Map{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresAt":    pair.AccessTokenExpiresAt,
	})
}

func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	var req usecase.LogoutInput
	// the body is optional, but a malformed one must not pass as a full logout
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return h.fail(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format"))
		}
	}
	req.AccessClaims = id.Claims

	if err := h.usecase.Logout(c.Request().Context(), req); err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) RevokeAllTokensHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	n, err := h.usecase.RevokeAllRefreshTokens(c.Request().Context(), id.UserID)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "All refresh tokens revoked", echo.Map{"revoked": n})
}

func (h *AuthHandler) MeHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	user, err := h.usecase.GetUserByID(c.Request().Context(), id.UserID)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Profile retrieved", echo.Map{"user": user})
}

func (h *AuthHandler) ValidateHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	return httputil.Success(c, http.StatusOK, "Token is valid", echo.Map{
		"valid": true,
		"user": echo.Map{
			"userId": id.UserID.String(),
			"email":  id.Email,
			"role":   id.Role,
		},
	})
}

func (h *AuthHandler) ListRefreshTokensHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	tokens, err := h.usecase.ListActiveRefreshTokens(c.Request().Context(), id.UserID)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Active refresh tokens", echo.Map{
		"refreshTokens": tokens,
		"count":         len(tokens),
	})
}
