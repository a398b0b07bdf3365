package middleware

import (
	"darna/internal/auth/domain"
	"darna/internal/httputil"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func RequireRole(log *zap.Logger, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return httputil.Error(c, log, domain.ErrTokenMissing)
			}
			if !id.HasRole(roles...) {
				return httputil.Error(c, log, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}

func AdminOnly(log *zap.Logger) echo.MiddlewareFunc {
	return RequireRole(log, domain.RoleAdmin)
}

// OwnerOrRole lets the request through when the path parameter names the
// caller's own id or the caller holds one of roles.
func OwnerOrRole(log *zap.Logger, param string, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return httputil.Error(c, log, domain.ErrTokenMissing)
			}
			if id.HasRole(roles...) {
				return next(c)
			}
			owner, err := uuid.Parse(c.Param(param))
			if err != nil || owner != id.UserID {
				return httputil.Error(c, log, domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
