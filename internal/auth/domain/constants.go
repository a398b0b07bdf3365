package domain

import (
	"regexp"
	"time"
)

const (
	MinNameLength        = 2
	MaxNameLength        = 50
	MaxCompanyNameLength = 100
	MaxAddressLength     = 200
	SiretLength          = 14

	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour

	RecoveryCodeCount  = 10
	RecoveryCodeLength = 8
	TOTPSkew           = 2
	TOTPPeriod         = 30
	TOTPDigits         = 6
)

type Role string

const (
	RoleVisitor    Role = "visitor"
	RoleIndividual Role = "individual"
	RoleBusiness   Role = "business"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleVisitor, RoleIndividual, RoleBusiness, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsSelfAssignable reports whether a role may be chosen at registration.
func (r Role) IsSelfAssignable() bool {
	return r.IsValid() && r != RoleAdmin
}

type SubscriptionTier string

const (
	SubscriptionFree    SubscriptionTier = "free"
	SubscriptionPro     SubscriptionTier = "pro"
	SubscriptionPremium SubscriptionTier = "premium"
)

func (t SubscriptionTier) IsValid() bool {
	switch t {
	case SubscriptionFree, SubscriptionPro, SubscriptionPremium:
		return true
	default:
		return false
	}
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)
