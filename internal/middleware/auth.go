package middleware

import (
	"context"
	"strings"

	"darna/internal/auth/domain"
	"darna/internal/httputil"
	"darna/pkg/token"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const identityKey = "identity"

type ctxKey struct{}

// Identity is the authenticated caller attached to each request.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
	Claims *token.Claims
}

func (i *Identity) HasRole(roles ...domain.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

type TokenValidator interface {
	ValidateAccessToken(ctx context.Context, accessToken string) (*token.Claims, error)
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, tok, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

func identityFromClaims(claims *token.Claims) (*Identity, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return &Identity{
		UserID: userID,
		Email:  claims.Email,
		Role:   domain.Role(claims.Role),
		Claims: claims,
	}, nil
}

func attach(c echo.Context, id *Identity) {
	c.Set(identityKey, id)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), ctxKey{}, id)))
}

// BearerAuth rejects requests without a valid, non-revoked access token.
func BearerAuth(v TokenValidator, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tok := BearerToken(c)
			if tok == "" {
				return httputil.Error(c, log, domain.ErrTokenMissing)
			}

			claims, err := v.ValidateAccessToken(c.Request().Context(), tok)
			if err != nil {
				return httputil.Error(c, log, err)
			}

			id, err := identityFromClaims(claims)
			if err != nil {
				return httputil.Error(c, log, err)
			}

			attach(c, id)
			return next(c)
		}
	}
}

// OptionalAuth attaches an identity when a valid token is present and never rejects.
func OptionalAuth(v TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tok := BearerToken(c); tok != "" {
				if claims, err := v.ValidateAccessToken(c.Request().Context(), tok); err == nil {
					if id, err := identityFromClaims(claims); err == nil {
						attach(c, id)
					}
				}
			}
			return next(c)
		}
	}
}

func IdentityFrom(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(identityKey).(*Identity)
	return id, ok && id != nil
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*Identity)
	return id, ok && id != nil
}
