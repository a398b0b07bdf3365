package domain

import (
	"strings"
	"time"

	authdomain "darna/internal/auth/domain"

	"github.com/google/uuid"
)

// User is the account as the profile module sees it.
type User struct {
	ID               uuid.UUID
	Email            string
	PasswordHash     string
	Name             string
	Phone            string
	Avatar           string
	Role             authdomain.Role
	SubscriptionTier authdomain.SubscriptionTier
	CompanyName      string
	CompanyInfo      authdomain.CompanyInfo
	IsActive         bool
	IsVerified       bool
	IsKYCVerified    bool
	TwoFactorEnabled bool
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ProfileUpdate holds the self-editable fields. Nil means unchanged.
type ProfileUpdate struct {
	Name           *string
	Phone          *string
	CompanyName    *string
	CompanySiret   *string
	CompanyAddress *string
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.CompanyName == nil && p.CompanySiret == nil && p.CompanyAddress == nil
}

// Normalize trims every set field in place.
func (p *ProfileUpdate) Normalize() {
	for _, f := range []*string{p.Name, p.Phone, p.CompanyName, p.CompanySiret, p.CompanyAddress} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

func (p ProfileUpdate) Validate() error {
	if p.IsEmpty() {
		return ErrNothingToUpdate
	}
	if p.Name != nil {
		if n := len([]rune(*p.Name)); n < authdomain.MinNameLength || n > authdomain.MaxNameLength {
			return authdomain.ErrInvalidName
		}
	}
	if p.CompanyName != nil && len([]rune(*p.CompanyName)) > authdomain.MaxCompanyNameLength {
		return authdomain.ErrInvalidCompanyInfo
	}
	if p.CompanySiret != nil && *p.CompanySiret != "" && len(*p.CompanySiret) != authdomain.SiretLength {
		return authdomain.ErrInvalidCompanyInfo
	}
	if p.CompanyAddress != nil && len([]rune(*p.CompanyAddress)) > authdomain.MaxAddressLength {
		return authdomain.ErrInvalidCompanyInfo
	}
	return nil
}
