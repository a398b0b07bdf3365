package handler

import (
	"net/http"

	"darna/internal/auth/usecase"
	"darna/internal/httputil"
	"darna/internal/middleware"

	"github.com/labstack/echo/v4"
)

func (h *AuthHandler) SetupTwoFactorHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	out, err := h.twoFactor.Setup(c.Request().Context(), id.UserID)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Scan the QR code, then confirm with a code", echo.Map{
		"secret":         out.Secret,
		"manualEntryKey": out.ManualEntryKey,
		"otpauthUrl":     out.OTPAuthURL,
		"qrCode":         out.QRCode,
	})
}

func (h *AuthHandler) ConfirmTwoFactorHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	var req usecase.TwoFactorCodeInput
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	out, err := h.twoFactor.Confirm(c.Request().Context(), id.UserID, req.Token)
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Two-factor authentication enabled", echo.Map{
		"recoveryCodes": out.RecoveryCodes,
	})
}

func (h *AuthHandler) DisableTwoFactorHandler(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)

	if err := h.twoFactor.Disable(c.Request().Context(), id.UserID); err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Two-factor authentication disabled", nil)
}

func (h *AuthHandler) RecoveryLoginHandler(c echo.Context) error {
	var req usecase.RecoveryLoginInput
	if err := httputil.BindAndValidate(c, &req); err != nil {
		return h.fail(c, err)
	}

	res, err := h.usecase.LoginWithRecoveryCode(c.Request().Context(), req, deviceInfo(c))
	if err != nil {
		return h.fail(c, err)
	}

	return httputil.Success(c, http.StatusOK, "Recovery code accepted", sessionPayload(res))
}
