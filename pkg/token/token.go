// Package token mints and verifies the signed access and refresh tokens.
//
// Access and refresh tokens are signed with different secrets and carry a
// tokenType claim, so a token minted for one purpose never verifies as the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

var (
	ErrInvalid = errors.New("token invalid")
	ErrExpired = errors.New("token expired")
)

type Identity struct {
	UserID string
	Email  string
	Role   string
}

type Claims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType Type   `json:"tokenType"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

type Issuer struct {
	cfg Config
	now func() time.Time
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg, now: time.Now}
}

// WithClock replaces the time source used for issuing and verifying.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) AccessTTL() time.Duration  { return i.cfg.AccessTTL }
func (i *Issuer) RefreshTTL() time.Duration { return i.cfg.RefreshTTL }

func (i *Issuer) MintAccessToken(id Identity) (string, *Claims, error) {
	return i.mint(id, TypeAccess)
}

func (i *Issuer) MintRefreshToken(id Identity) (string, *Claims, error) {
	return i.mint(id, TypeRefresh)
}

func (i *Issuer) mint(id Identity, typ Type) (string, *Claims, error) {
	secret, ttl := i.keyFor(typ)
	now := i.now()

	claims := &Claims{
		UserID:    id.UserID,
		Email:     id.Email,
		Role:      id.Role,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.cfg.Issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, claims, nil
}

// Verify returns nil for any token that is malformed, badly signed, expired,
// or of a different type than expected.
func (i *Issuer) Verify(tokenString string, expected Type) *Claims {
	claims, err := i.Inspect(tokenString, expected)
	if err != nil {
		return nil
	}
	return claims
}

// Inspect is Verify with the failure reason. On ErrExpired the claims are
// still returned: the signature and type were valid, only the lifetime ran out.
func (i *Issuer) Inspect(tokenString string, expected Type) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalid
	}

	secret, _ := i.keyFor(expected)
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	}
	if i.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.cfg.Issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)

	switch {
	case err == nil && parsed.Valid:
	case errors.Is(err, jwt.ErrTokenExpired) && !errors.Is(err, jwt.ErrTokenSignatureInvalid):
		if claims.TokenType != expected {
			return nil, ErrInvalid
		}
		return claims, ErrExpired
	default:
		return nil, ErrInvalid
	}

	if claims.TokenType != expected || claims.UserID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}

func (i *Issuer) keyFor(typ Type) ([]byte, time.Duration) {
	if typ == TypeRefresh {
		return i.cfg.RefreshSecret, i.cfg.RefreshTTL
	}
	return i.cfg.AccessSecret, i.cfg.AccessTTL
}
