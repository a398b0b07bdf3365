package usecase

import (
	"time"

	"darna/internal/auth/domain"
	"darna/pkg/token"
)

type CompanyInfoInput struct {
	Siret   string `json:"siret" form:"siret" validate:"omitempty,len=14,numeric"`
	Address string `json:"address" form:"address" validate:"omitempty,max=200"`
}

type RegisterInput struct {
	Email       string            `json:"email" form:"email" validate:"required,email"`
	Password    string            `json:"password" form:"password" validate:"required,strongpassword"`
	Name        string            `json:"name" form:"name" validate:"required,min=2,max=50"`
	Phone       string            `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Role        string            `json:"role" form:"role" validate:"omitempty,oneof=visitor individual business"`
	CompanyName string            `json:"companyName" form:"companyName" validate:"omitempty,max=100"`
	CompanyInfo *CompanyInfoInput `json:"companyInfo" form:"companyInfo" validate:"omitempty"`
}

type LoginInput struct {
	Email          string `json:"email" form:"email" validate:"required,email"`
	Password       string `json:"password" form:"password" validate:"required"`
	TwoFactorToken string `json:"twoFactorToken" form:"twoFactorToken" validate:"omitempty,len=6,numeric"`
}

type RecoveryLoginInput struct {
	Email        string `json:"email" form:"email" validate:"required,email"`
	RecoveryCode string `json:"recoveryCode" form:"recoveryCode" validate:"required,alphanum,len=8"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken" validate:"required"`
}

type LogoutInput struct {
	AccessClaims *token.Claims `json:"-" form:"-"`
	RefreshToken string        `json:"refreshToken" form:"refreshToken"`
}

type TwoFactorCodeInput struct {
	Token string `json:"token" form:"token" validate:"required,len=6,numeric"`
}

type UserInfo struct {
	ID               string                  `json:"id"`
	Email            string                  `json:"email"`
	Name             string                  `json:"name"`
	Phone            string                  `json:"phone,omitempty"`
	Avatar           string                  `json:"avatar,omitempty"`
	Role             domain.Role             `json:"role"`
	SubscriptionType domain.SubscriptionTier `json:"subscriptionType"`
	CompanyName      string                  `json:"companyName,omitempty"`
	CompanyInfo      *domain.CompanyInfo     `json:"companyInfo,omitempty"`
	IsActive         bool                    `json:"isActive"`
	IsVerified       bool                    `json:"isVerified"`
	IsKYCVerified    bool                    `json:"isKYCVerified"`
	TwoFactorEnabled bool                    `json:"twoFactorEnabled"`
	LastLogin        *time.Time              `json:"lastLogin,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
}

// NewUserInfo is the sanitized view of a user. It never carries secrets.
func NewUserInfo(u *domain.User) *UserInfo {
	info := &UserInfo{
		ID:               u.ID.String(),
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		Avatar:           u.Avatar,
		Role:             u.Role,
		SubscriptionType: u.SubscriptionTier,
		CompanyName:      u.CompanyName,
		IsActive:         u.IsActive,
		IsVerified:       u.IsVerified,
		IsKYCVerified:    u.IsKYCVerified,
		TwoFactorEnabled: u.TwoFactor.Enabled,
		LastLogin:        u.LastLoginAt,
		CreatedAt:        u.CreatedAt,
	}
	if u.CompanyInfo != (domain.CompanyInfo{}) {
		ci := u.CompanyInfo
		info.CompanyInfo = &ci
	}
	return info
}

type TokenPair struct {
	AccessToken           string    `json:"accessToken"`
	RefreshToken          string    `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// AuthResult carries either a full session or, when RequiresTwoFactor is
// set, nothing but the signal that a TOTP code must be supplied.
type AuthResult struct {
	User              *UserInfo
	Tokens            *TokenPair
	RequiresTwoFactor bool
}

type RefreshTokenInfo struct {
	ID         string            `json:"id"`
	CreatedAt  time.Time         `json:"createdAt"`
	ExpiresAt  time.Time         `json:"expiresAt"`
	DeviceInfo domain.DeviceInfo `json:"deviceInfo"`
}

type TwoFactorSetupOutput struct {
	Secret         string `json:"secret"`
	ManualEntryKey string `json:"manualEntryKey"`
	OTPAuthURL     string `json:"otpauthUrl"`
	QRCode         string `json:"qrCode"`
}

type TwoFactorConfirmOutput struct {
	RecoveryCodes []string `json:"recoveryCodes"`
}
