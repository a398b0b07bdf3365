//go:build integration

package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/auth/repository"
	"darna/internal/database/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string) *domain.User {
	return &domain.User{
		Email:            email,
		PasswordHash:     "$2a$12$hash",
		Name:             "Jane Doe",
		Role:             domain.RoleIndividual,
		SubscriptionTier: domain.SubscriptionFree,
		IsActive:         true,
	}
}

func newRecord(userID uuid.UUID, token string, now time.Time, ttl time.Duration) *domain.RefreshTokenRecord {
	return &domain.RefreshTokenRecord{
		UserID:     userID,
		TokenHash:  domain.HashToken(token),
		DeviceInfo: domain.DeviceInfo{UserAgent: "go-test", IPAddress: "127.0.0.1"},
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

func TestUserStoreIntegration(t *testing.T) {
	store := repository.NewUserStore(dbtest.Start(t))
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	created, err := store.CreateUser(ctx, newUser("jane@darna.ma"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	t.Run("email is unique regardless of case", func(t *testing.T) {
		_, err := store.CreateUser(ctx, newUser("JANE@darna.ma"))
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

		exists, err := store.UserExistsByEmail(ctx, "Jane@Darna.ma")
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := store.GetUserByEmail(ctx, "JANE@DARNA.MA")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, domain.RoleIndividual, got.Role)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := store.GetUserByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("last login", func(t *testing.T) {
		require.NoError(t, store.UpdateLastLogin(ctx, created.ID, now))
		got, err := store.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
		assert.True(t, now.Equal(*got.LastLoginAt))
	})

	t.Run("refresh token rotation has one winner", func(t *testing.T) {
		old := newRecord(created.ID, "old-token", now, time.Hour)
		require.NoError(t, store.CreateRefreshToken(ctx, old))

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				next := newRecord(created.ID, "next-token-"+uuid.NewString(), now, time.Hour)
				errs[i] = store.RotateRefreshToken(ctx, created.ID, old.TokenHash, next)
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errs {
			if err == nil {
				wins++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrTokenRevoked)
		}
		assert.Equal(t, 1, wins)

		rec, err := store.FindRefreshToken(ctx, created.ID, old.TokenHash)
		require.NoError(t, err)
		assert.True(t, rec.IsRevoked)
		assert.NotNil(t, rec.RevokedAt)
	})

	t.Run("list revoke all and purge", func(t *testing.T) {
		require.NoError(t, store.CreateRefreshToken(ctx, newRecord(created.ID, "live", now, time.Hour)))
		require.NoError(t, store.CreateRefreshToken(ctx, newRecord(created.ID, "stale", now.Add(-48*time.Hour), time.Hour)))

		active, err := store.ListActiveRefreshTokens(ctx, created.ID, now)
		require.NoError(t, err)
		assert.Len(t, active, 2, "rotated replacement and live")

		_, err = store.FindRefreshToken(ctx, created.ID, domain.HashToken("missing"))
		assert.ErrorIs(t, err, domain.ErrRefreshTokenNotFound)

		purged, err := store.PurgeRefreshTokens(ctx, now.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.EqualValues(t, 1, purged)

		n, err := store.RevokeAllRefreshTokens(ctx, created.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		active, err = store.ListActiveRefreshTokens(ctx, created.ID, now)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("two factor lifecycle", func(t *testing.T) {
		assert.ErrorIs(t, store.EnableTwoFactor(ctx, created.ID, []string{"h1"}), domain.ErrTwoFactorNotConfigured)
		assert.ErrorIs(t, store.DisableTwoFactor(ctx, created.ID), domain.ErrTwoFactorNotEnabled)

		require.NoError(t, store.SetTwoFactorSecret(ctx, created.ID, "sealed"))
		require.NoError(t, store.EnableTwoFactor(ctx, created.ID, []string{"h1", "h2"}))
		assert.ErrorIs(t, store.SetTwoFactorSecret(ctx, created.ID, "other"), domain.ErrTwoFactorAlreadyEnabled)

		ok, err := store.ConsumeRecoveryCode(ctx, created.ID, "h1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.ConsumeRecoveryCode(ctx, created.ID, "h1")
		require.NoError(t, err)
		assert.False(t, ok, "recovery codes are single use")

		got, err := store.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, got.TwoFactor.Enabled)
		assert.Equal(t, "sealed", got.TwoFactor.Secret)
		assert.Equal(t, []string{"h2"}, got.TwoFactor.RecoveryCodeHashes)

		require.NoError(t, store.DisableTwoFactor(ctx, created.ID))
		got, err = store.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, got.TwoFactor.Enabled)
		assert.Empty(t, got.TwoFactor.Secret)
		assert.Empty(t, got.TwoFactor.RecoveryCodeHashes)
	})
}
