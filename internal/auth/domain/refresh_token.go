package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type DeviceInfo struct {
	UserAgent string `json:"userAgent,omitempty"`
	IPAddress string `json:"ipAddress,omitempty"`
}

// RefreshTokenRecord is one ledger entry. Records are revoked, never deleted,
// until the purge job removes revoked or expired ones past retention.
type RefreshTokenRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	DeviceInfo DeviceInfo
	CreatedAt  time.Time
	ExpiresAt  time.Time
	IsRevoked  bool
	RevokedAt  *time.Time
}

func (r *RefreshTokenRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

func (r *RefreshTokenRecord) IsActive(now time.Time) bool {
	return !r.IsRevoked && !r.IsExpired(now)
}

// HashToken is the ledger lookup key for a signed refresh token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
