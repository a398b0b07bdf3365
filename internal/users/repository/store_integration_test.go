//go:build integration

package repository_test

import (
	"context"
	"testing"

	authdomain "darna/internal/auth/domain"
	authrepo "darna/internal/auth/repository"
	"darna/internal/database/dbtest"
	"darna/internal/users/domain"
	"darna/internal/users/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestUserStoreIntegration(t *testing.T) {
	db := dbtest.Start(t)
	ctx := context.Background()

	created, err := authrepo.NewUserStore(db).CreateUser(ctx, &authdomain.User{
		Email:            "seller@darna.ma",
		PasswordHash:     "$2a$12$hash",
		Name:             "Sara Seller",
		Role:             authdomain.RoleBusiness,
		SubscriptionTier: authdomain.SubscriptionFree,
		CompanyName:      "Darna Immo",
		IsActive:         true,
	})
	require.NoError(t, err)

	store := repository.NewUserStore(db)

	t.Run("partial profile update", func(t *testing.T) {
		got, err := store.UpdateProfile(ctx, created.ID, domain.ProfileUpdate{
			Phone:        ptr("+212600000000"),
			CompanySiret: ptr("12345678901234"),
		})
		require.NoError(t, err)
		assert.Equal(t, "+212600000000", got.Phone)
		assert.Equal(t, "12345678901234", got.CompanyInfo.Siret)
		assert.Equal(t, "Sara Seller", got.Name)
		assert.Equal(t, "Darna Immo", got.CompanyName)

		_, err = store.UpdateProfile(ctx, created.ID, domain.ProfileUpdate{})
		assert.ErrorIs(t, err, domain.ErrNothingToUpdate)

		_, err = store.UpdateProfile(ctx, uuid.New(), domain.ProfileUpdate{Name: ptr("Ghost")})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("password and avatar", func(t *testing.T) {
		require.NoError(t, store.UpdatePassword(ctx, created.ID, "$2a$12$other"))
		require.NoError(t, store.UpdateAvatar(ctx, created.ID, "http://minio.local/darna/avatars/a.png"))

		got, err := store.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "$2a$12$other", got.PasswordHash)
		assert.Equal(t, "http://minio.local/darna/avatars/a.png", got.Avatar)

		assert.ErrorIs(t, store.UpdatePassword(ctx, uuid.New(), "x"), domain.ErrUserNotFound)
		assert.ErrorIs(t, store.UpdateAvatar(ctx, uuid.New(), "x"), domain.ErrUserNotFound)
	})

	t.Run("admin updates", func(t *testing.T) {
		got, err := store.SetActive(ctx, created.ID, false)
		require.NoError(t, err)
		assert.False(t, got.IsActive)

		got, err = store.SetSubscription(ctx, created.ID, authdomain.SubscriptionPremium)
		require.NoError(t, err)
		assert.Equal(t, authdomain.SubscriptionPremium, got.SubscriptionTier)

		_, err = store.SetActive(ctx, uuid.New(), true)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
