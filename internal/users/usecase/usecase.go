package usecase

import (
	"context"
	"mime/multipart"

	authdomain "darna/internal/auth/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_user_usecase.go -package=test darna/internal/users/usecase UserUsecase
type UserUsecase interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfileResponse, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserProfileResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, fileHeader *multipart.FileHeader) (string, error)
	GetContact(ctx context.Context, userID uuid.UUID) (*ContactResponse, error)
	SetStatus(ctx context.Context, userID uuid.UUID, active bool) (*UserProfileResponse, error)
	SetSubscription(ctx context.Context, userID uuid.UUID, tier authdomain.SubscriptionTier) (*UserProfileResponse, error)
}

// SessionRevoker ends every refresh session of a user.
type SessionRevoker interface {
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error)
}

type AvatarStore interface {
	Upload(ctx context.Context, header *multipart.FileHeader, folder string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}
