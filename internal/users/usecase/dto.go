package usecase

import (
	"time"

	authdomain "darna/internal/auth/domain"
	"darna/internal/users/domain"
)

type UserProfileResponse struct {
	ID               string                      `json:"id"`
	Email            string                      `json:"email"`
	Name             string                      `json:"name"`
	Phone            string                      `json:"phone,omitempty"`
	Avatar           string                      `json:"avatar,omitempty"`
	Role             authdomain.Role             `json:"role"`
	SubscriptionType authdomain.SubscriptionTier `json:"subscriptionType"`
	CompanyName      string                      `json:"companyName,omitempty"`
	CompanyInfo      *authdomain.CompanyInfo     `json:"companyInfo,omitempty"`
	IsActive         bool                        `json:"isActive"`
	IsVerified       bool                        `json:"isVerified"`
	IsKYCVerified    bool                        `json:"isKYCVerified"`
	TwoFactorEnabled bool                        `json:"twoFactorEnabled"`
	LastLogin        *time.Time                  `json:"lastLogin,omitempty"`
	CreatedAt        time.Time                   `json:"createdAt"`
}

// ContactResponse is what a paying subscriber sees of a seller.
type ContactResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
}

type CompanyInfoRequest struct {
	Siret   *string `json:"siret,omitempty" form:"siret" validate:"omitempty,len=14,numeric"`
	Address *string `json:"address,omitempty" form:"address" validate:"omitempty,max=200"`
}

type UpdateUserRequest struct {
	Name        *string             `json:"name,omitempty" form:"name" validate:"omitempty,min=2,max=50"`
	Phone       *string             `json:"phone,omitempty" form:"phone" validate:"omitempty,max=20"`
	CompanyName *string             `json:"companyName,omitempty" form:"companyName" validate:"omitempty,max=100"`
	CompanyInfo *CompanyInfoRequest `json:"companyInfo,omitempty" form:"companyInfo" validate:"omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" form:"newPassword" validate:"required,strongpassword"`
}

type SetStatusRequest struct {
	IsActive *bool `json:"isActive" form:"isActive" validate:"required"`
}

type SetSubscriptionRequest struct {
	SubscriptionType string `json:"subscriptionType" form:"subscriptionType" validate:"required,oneof=free pro premium"`
}

func (r UpdateUserRequest) toUpdate() domain.ProfileUpdate {
	update := domain.ProfileUpdate{
		Name:        r.Name,
		Phone:       r.Phone,
		CompanyName: r.CompanyName,
	}
	if r.CompanyInfo != nil {
		update.CompanySiret = r.CompanyInfo.Siret
		update.CompanyAddress = r.CompanyInfo.Address
	}
	return update
}

func ToUserProfileResponse(user *domain.User) *UserProfileResponse {
	resp := &UserProfileResponse{
		ID:               user.ID.String(),
		Email:            user.Email,
		Name:             user.Name,
		Phone:            user.Phone,
		Avatar:           user.Avatar,
		Role:             user.Role,
		SubscriptionType: user.SubscriptionTier,
		CompanyName:      user.CompanyName,
		IsActive:         user.IsActive,
		IsVerified:       user.IsVerified,
		IsKYCVerified:    user.IsKYCVerified,
		TwoFactorEnabled: user.TwoFactorEnabled,
		LastLogin:        user.LastLoginAt,
		CreatedAt:        user.CreatedAt,
	}
	if user.CompanyInfo != (authdomain.CompanyInfo{}) {
		info := user.CompanyInfo
		resp.CompanyInfo = &info
	}
	return resp
}

func toContactResponse(user *domain.User) *ContactResponse {
	return &ContactResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		CompanyName: user.CompanyName,
	}
}
