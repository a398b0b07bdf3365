package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(now time.Time) *Issuer {
	return NewIssuer(Config{
		AccessSecret:  []byte("access-secret-access-secret-0001"),
		RefreshSecret: []byte("refresh-secret-refresh-secret-01"),
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Issuer:        "darna-test",
	}).WithClock(func() time.Time { return now })
}

var identity = Identity{UserID: "8a6f1f52-3c0b-4f5e-9d1c-2f1c8d1e0b11", Email: "a@b.com", Role: "visitor"}

func TestMintAndVerify(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(now)

	access, accessClaims, err := issuer.MintAccessToken(identity)
	require.NoError(t, err)
	refresh, refreshClaims, err := issuer.MintRefreshToken(identity)
	require.NoError(t, err)

	assert.NotEqual(t, access, refresh)
	assert.Equal(t, TypeAccess, accessClaims.TokenType)
	assert.Equal(t, TypeRefresh, refreshClaims.TokenType)
	assert.Equal(t, now.Add(15*time.Minute).Unix(), accessClaims.ExpiresAt.Unix())
	assert.Equal(t, now.Add(7*24*time.Hour).Unix(), refreshClaims.ExpiresAt.Unix())

	got := issuer.Verify(access, TypeAccess)
	require.NotNil(t, got)
	assert.Equal(t, identity, got.Identity())
	assert.Equal(t, accessClaims.ID, got.ID)

	got = issuer.Verify(refresh, TypeRefresh)
	require.NotNil(t, got)
	assert.Equal(t, identity, got.Identity())
}

func TestVerifyRejectsCrossUse(t *testing.T) {
	issuer := newTestIssuer(time.Now())

	access, _, err := issuer.MintAccessToken(identity)
	require.NoError(t, err)
	refresh, _, err := issuer.MintRefreshToken(identity)
	require.NoError(t, err)

	assert.Nil(t, issuer.Verify(access, TypeRefresh))
	assert.Nil(t, issuer.Verify(refresh, TypeAccess))
}

func TestVerifyRejectsTypeClaimWithWrongKey(t *testing.T) {
	issuer := newTestIssuer(time.Now())

	// a refresh-typed payload signed with the access secret must not pass as a refresh token
	claims := &Claims{
		UserID:    identity.UserID,
		TokenType: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "darna-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret-access-secret-0001"))
	require.NoError(t, err)

	assert.Nil(t, issuer.Verify(forged, TypeRefresh))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := newTestIssuer(time.Now())

	for _, tok := range []string{"", "abc", "a.b.c"} {
		assert.Nil(t, issuer.Verify(tok, TypeAccess))
	}
}

func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	issuer := newTestIssuer(time.Now())

	claims := &Claims{
		UserID:    identity.UserID,
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "darna-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Nil(t, issuer.Verify(unsigned, TypeAccess))
}

func TestInspectExpired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	refresh, minted, err := newTestIssuer(issued).MintRefreshToken(identity)
	require.NoError(t, err)

	later := newTestIssuer(issued.Add(8 * 24 * time.Hour))

	assert.Nil(t, later.Verify(refresh, TypeRefresh))

	claims, err := later.Inspect(refresh, TypeRefresh)
	assert.ErrorIs(t, err, ErrExpired)
	require.NotNil(t, claims)
	assert.Equal(t, minted.ID, claims.ID)

	_, err = later.Inspect(refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMintedTokensAreUnique(t *testing.T) {
	issuer := newTestIssuer(time.Now())

	first, _, err := issuer.MintRefreshToken(identity)
	require.NoError(t, err)
	second, _, err := issuer.MintRefreshToken(identity)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
