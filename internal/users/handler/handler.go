package handler

import (
	"net/http"

	authdomain "darna/internal/auth/domain"
	"darna/internal/httputil"
	"darna/internal/middleware"
	"darna/internal/users/domain"
	"darna/internal/users/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserHandler struct {
	usecase usecase.UserUsecase
	log     *zap.Logger
}

func NewUserHandler(u usecase.UserUsecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		usecase: u,
		log:     log,
	}
}

// Bind registers the profile routes. Every route needs a bearer token;
// subscriptions backs the paid-tier gate on seller contact details.
func (h *UserHandler) Bind(g *echo.Group, requireAuth echo.MiddlewareFunc, subscriptions middleware.UserLookup) {
	g.Use(requireAuth)

	g.GET("/me", h.GetUserProfile)
	g.PATCH("/me", h.UpdateUserProfile)
	g.PUT("/me/password", h.ChangePassword)
	g.POST("/me/avatar", h.UploadAvatar)

	g.GET("/:id", h.GetUserByID, middleware.OwnerOrRole(h.log, "id", authdomain.RoleAdmin))
	g.GET("/:id/contact", h.GetContact, middleware.PaidOnly(subscriptions, h.log))

	g.PATCH("/:id/status", h.SetStatus, middleware.AdminOnly(h.log))
	g.PATCH("/:id/subscription", h.SetSubscription, middleware.AdminOnly(h.log))
}

func (h *UserHandler) fail(c echo.Context, err error) error {
	return httputil.Error(c, h.log, err)
}

func pathUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domain.ErrInvalidUserID
	}
	return id, nil
}

func (h *UserHandler) GetUserProfile(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	profile, err := h.usecase.GetUserProfile(c.Request().Context(), id.UserID)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Profile retrieved", echo.Map{"user": profile})
}

func (h *UserHandler) UpdateUserProfile(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	var req usecase.UpdateUserRequest
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	profile, err := h.usecase.UpdateUserProfile(c.Request().Context(), id.UserID, req)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Profile updated", echo.Map{"user": profile})
}

func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	var req usecase.ChangePasswordRequest
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	if err := h.usecase.ChangePassword(c.Request().Context(), id.UserID, req); err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Password changed, please sign in again", nil)
}

func (h *UserHandler) UploadAvatar(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return httputil.Fail(c, http.StatusBadRequest, httputil.CodeBadRequest, "An avatar file is required")
	}

	url, err := h.usecase.UploadAvatar(c.Request().Context(), id.UserID, file)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Avatar updated", echo.Map{"avatar": url})
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return h.fail(c, err)
	}

	profile, err := h.usecase.GetUserProfile(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "User retrieved", echo.Map{"user": profile})
}

func (h *UserHandler) GetContact(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return h.fail(c, err)
	}

	contact, err := h.usecase.GetContact(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Contact retrieved", echo.Map{"contact": contact})
}

func (h *UserHandler) SetStatus(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req usecase.SetStatusRequest
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	profile, err := h.usecase.SetStatus(c.Request().Context(), userID, *req.IsActive)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Account status updated", echo.Map{"user": profile})
}

func (h *UserHandler) SetSubscription(c echo.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return h.fail(c, err)
	}

	var req usecase.SetSubscriptionRequest
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	profile, err := h.usecase.SetSubscription(c.Request().Context(), userID, authdomain.SubscriptionTier(req.SubscriptionType))
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Subscription updated", echo.Map{"user": profile})
}
