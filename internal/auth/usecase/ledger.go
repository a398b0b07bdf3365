package usecase

import (
	"context"
	"errors"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/auth/repository"

	"github.com/google/uuid"
)

// Ledger tracks issued refresh tokens per user. Only token hashes are persisted.
type Ledger struct {
	repo repository.UserRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewLedger(repo repository.UserRepository, ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = domain.DefaultRefreshTokenTTL
	}
	return &Ledger{repo: repo, ttl: ttl, now: time.Now}
}

func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

func (l *Ledger) newRecord(userID uuid.UUID, token string, device domain.DeviceInfo) *domain.RefreshTokenRecord {
	now := l.now()
	return &domain.RefreshTokenRecord{
		UserID:     userID,
		TokenHash:  domain.HashToken(token),
		DeviceInfo: device,
		CreatedAt:  now,
		ExpiresAt:  now.Add(l.ttl),
	}
}

func (l *Ledger) Store(ctx context.Context, userID uuid.UUID, token string, device domain.DeviceInfo) (*domain.RefreshTokenRecord, error) {
	rec := l.newRecord(userID, token, device)
	if err := l.repo.CreateRefreshToken(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Find returns the non-revoked record for token, or nil when there is none.
func (l *Ledger) Find(ctx context.Context, userID uuid.UUID, token string) (*domain.RefreshTokenRecord, error) {
	rec, err := l.lookup(ctx, userID, token)
	if err != nil || rec == nil || rec.IsRevoked {
		return nil, err
	}
	return rec, nil
}

func (l *Ledger) lookup(ctx context.Context, userID uuid.UUID, token string) (*domain.RefreshTokenRecord, error) {
	rec, err := l.repo.FindRefreshToken(ctx, userID, domain.HashToken(token))
	if errors.Is(err, domain.ErrRefreshTokenNotFound) {
		return nil, nil
	}
	return rec, err
}

// Revoke is idempotent: revoking an unknown or revoked token is not an error.
func (l *Ledger) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	return l.repo.RevokeRefreshToken(ctx, userID, domain.HashToken(token))
}

func (l *Ledger) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	return l.repo.RevokeAllRefreshTokens(ctx, userID)
}

func (l *Ledger) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.RefreshTokenRecord, error) {
	return l.repo.ListActiveRefreshTokens(ctx, userID, l.now())
}

// Rotate retires oldToken and stores newToken atomically.
func (l *Ledger) Rotate(ctx context.Context, userID uuid.UUID, oldToken, newToken string, device domain.DeviceInfo) (*domain.RefreshTokenRecord, error) {
	next := l.newRecord(userID, newToken, device)
	if err := l.repo.RotateRefreshToken(ctx, userID, domain.HashToken(oldToken), next); err != nil {
		return nil, err
	}
	return next, nil
}

// Purge deletes records that expired or were revoked more than retention ago.
func (l *Ledger) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	return l.repo.PurgeRefreshTokens(ctx, l.now().Add(-retention))
}
