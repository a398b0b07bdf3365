package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CompanyInfo struct {
	Siret   string `json:"siret,omitempty"`
	Address string `json:"address,omitempty"`
}

type User struct {
	ID               uuid.UUID
	Email            string
	PasswordHash     string
	Name             string
	Phone            string
	Avatar           string
	Role             Role
	SubscriptionTier SubscriptionTier
	CompanyName      string
	CompanyInfo      CompanyInfo
	IsActive         bool
	IsVerified       bool
	IsKYCVerified    bool
	TwoFactor        TwoFactorState
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func (u *User) Validate() error {
	if u.Email == "" || u.PasswordHash == "" || u.Name == "" {
		return ErrRequiredFieldsMissing
	}

	if !IsValidEmail(u.Email) {
		return ErrInvalidEmailFormat
	}

	// the 2 character minimum is enforced on the HTTP request, not here
	if n := len([]rune(strings.TrimSpace(u.Name))); n == 0 || n > MaxNameLength {
		return ErrInvalidName
	}

	if !u.Role.IsValid() {
		return ErrInvalidRole
	}

	if !u.SubscriptionTier.IsValid() {
		return ErrInvalidSubscription
	}

	if len([]rune(u.CompanyName)) > MaxCompanyNameLength {
		return ErrInvalidCompanyInfo
	}

	if u.CompanyInfo.Siret != "" && len(u.CompanyInfo.Siret) != SiretLength {
		return ErrInvalidCompanyInfo
	}

	if len([]rune(u.CompanyInfo.Address)) > MaxAddressLength {
		return ErrInvalidCompanyInfo
	}

	return nil
}

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func GenerateAvatar(name string) string {
	fields := strings.Fields(name)
	initials := ""
	for _, f := range fields {
		initials += strings.ToUpper(string([]rune(f)[0]))
		if len(initials) == 2 {
			break
		}
	}
	if initials == "" {
		initials = "D"
	}
	return "https://api.dicebear.com/6.x/initials/svg?seed=" + initials
}
