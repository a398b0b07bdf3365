package middleware

import (
	"context"

	"darna/internal/auth/domain"
	"darna/internal/auth/usecase"
	"darna/internal/httputil"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserLookup reads the current account, so tier changes apply without a new token.
type UserLookup interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*usecase.UserInfo, error)
}

func RequireSubscription(users UserLookup, log *zap.Logger, tiers ...domain.SubscriptionTier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return httputil.Error(c, log, domain.ErrTokenMissing)
			}

			// admins are never gated on billing
			if id.Role == domain.RoleAdmin {
				return next(c)
			}

			user, err := users.GetUserByID(c.Request().Context(), id.UserID)
			if err != nil {
				return httputil.Error(c, log, err)
			}

			for _, t := range tiers {
				if user.SubscriptionType == t {
					return next(c)
				}
			}
			return httputil.Error(c, log, domain.ErrSubscriptionRequired)
		}
	}
}

func PaidOnly(users UserLookup, log *zap.Logger) echo.MiddlewareFunc {
	return RequireSubscription(users, log, domain.SubscriptionPro, domain.SubscriptionPremium)
}

func PremiumOnly(users UserLookup, log *zap.Logger) echo.MiddlewareFunc {
	return RequireSubscription(users, log, domain.SubscriptionPremium)
}
