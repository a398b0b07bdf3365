package repository

import (
	"context"

	authdomain "darna/internal/auth/domain"
	"darna/internal/users/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_user_repository.go -package=test darna/internal/users/repository UserRepository
type UserRepository interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) (*domain.User, error)
	SetSubscription(ctx context.Context, userID uuid.UUID, tier authdomain.SubscriptionTier) (*domain.User, error)
}
