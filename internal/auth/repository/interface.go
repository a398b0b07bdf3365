package repository

import (
	"context"
	"time"

	"darna/internal/auth/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_user_repository.go -package=test darna/internal/auth/repository UserRepository
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UserExistsByEmail(ctx context.Context, email string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error

	CreateRefreshToken(ctx context.Context, record *domain.RefreshTokenRecord) error
	FindRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) (*domain.RefreshTokenRecord, error)
	RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error)
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash string, next *domain.RefreshTokenRecord) error
	ListActiveRefreshTokens(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.RefreshTokenRecord, error)
	PurgeRefreshTokens(ctx context.Context, before time.Time) (int64, error)

	SetTwoFactorSecret(ctx context.Context, userID uuid.UUID, sealedSecret string) error
	EnableTwoFactor(ctx context.Context, userID uuid.UUID, recoveryCodeHashes []string) error
	DisableTwoFactor(ctx context.Context, userID uuid.UUID) error
	ConsumeRecoveryCode(ctx context.Context, userID uuid.UUID, codeHash string) (bool, error)
}
