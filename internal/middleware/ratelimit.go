package middleware

import (
	"math"
	"strconv"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/httputil"
	"darna/internal/ratelimit"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RateLimit counts requests per client IP and route. Limiter failures let the request through.
func RateLimit(limiter ratelimit.Limiter, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Path() + "|" + c.RealIP()

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), key, time.Now())
			if err != nil {
				log.Error("rate limiter unavailable", zap.Error(err))
				return next(c)
			}
			if !allowed {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				log.Warn("rate limit exceeded", zap.String("ip", c.RealIP()), zap.String("path", c.Path()))
				return httputil.Error(c, log, domain.ErrTooManyAttempts)
			}
			return next(c)
		}
	}
}
