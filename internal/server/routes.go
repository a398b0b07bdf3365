package server

import (
	"net/http"
	"strconv"
	"time"

	authhandler "darna/internal/auth/handler"
	"darna/internal/httputil"
	"darna/internal/metrics"
	appmiddleware "darna/internal/middleware"
	userhandler "darna/internal/users/handler"
	"darna/pkg/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func (s *Server) RegisterRoutes() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = httputil.ErrorHandler(s.log)

	e.Use(s.requestLogger())
	e.Use(middleware.Recover())
	e.Use(s.instrument)
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XFrameOptions:         "DENY",
		ContentTypeNosniff:    "nosniff",
		XSSProtection:         "1; mode=block",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data: https:; connect-src 'self' https:;",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.cfg.HTTP.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	e.Use(middleware.BodyLimit(s.cfg.HTTP.BodyLimit))

	e.GET("/health", s.healthHandler)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(s.registry)))

	requireAuth := appmiddleware.BearerAuth(s.auth, s.log)
	api := e.Group("/api")

	authhandler.NewAuthHandler(s.auth, s.twoFactor, s.log).
		Bind(api.Group("/auth"), requireAuth, appmiddleware.RateLimit(s.limiter, s.log))
	userhandler.NewUserHandler(s.users, s.log).
		Bind(api.Group("/users"), requireAuth, s.auth)

	return e
}

func (s *Server) healthHandler(c echo.Context) error {
	stats := s.db.Health(c.Request().Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, stats)
}

// instrument records request count and latency per route template.
func (s *Server) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request().Method
		s.metrics.RequestCount.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return nil
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Log(requestLogLevel(v.Status), "request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	})
}

// requestLogLevel keys off the written status. Handler errors are rendered
// by instrument before the logger runs, so the status is the only signal.
func requestLogLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
