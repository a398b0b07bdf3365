package usecase

import (
	"context"
	"time"

	"darna/internal/auth/domain"
	"darna/pkg/token"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../test/mock_usecase.go -package=test darna/internal/auth/usecase AuthUsecase,TwoFactorUsecase
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput, device domain.DeviceInfo) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput, device domain.DeviceInfo) (*AuthResult, error)
	LoginWithRecoveryCode(ctx context.Context, input RecoveryLoginInput, device domain.DeviceInfo) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string, device domain.DeviceInfo) (*TokenPair, error)
	Logout(ctx context.Context, input LogoutInput) error
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error)
	ListActiveRefreshTokens(ctx context.Context, userID uuid.UUID) ([]RefreshTokenInfo, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*UserInfo, error)
	GetUserByEmail(ctx context.Context, email string) (*UserInfo, error)
	ValidateAccessToken(ctx context.Context, accessToken string) (*token.Claims, error)
}

type TwoFactorUsecase interface {
	Setup(ctx context.Context, userID uuid.UUID) (*TwoFactorSetupOutput, error)
	Confirm(ctx context.Context, userID uuid.UUID, code string) (*TwoFactorConfirmOutput, error)
	Verify(ctx context.Context, userID uuid.UUID, code string) (bool, error)
	Disable(ctx context.Context, userID uuid.UUID) error
	VerifyRecoveryCode(ctx context.Context, userID uuid.UUID, code string) (bool, error)
}

// TokenIssuer is satisfied by *token.Issuer.
type TokenIssuer interface {
	MintAccessToken(id token.Identity) (string, *token.Claims, error)
	MintRefreshToken(id token.Identity) (string, *token.Claims, error)
	Inspect(tok string, expected token.Type) (*token.Claims, error)
	RefreshTTL() time.Duration
}

// SecretSealer is satisfied by *crypto.SecretCipher.
type SecretSealer interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
