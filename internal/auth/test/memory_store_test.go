package test

import (
	"context"
	"strings"
	"sync"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/auth/repository"

	"github.com/google/uuid"
)

// memoryStore is an in-process UserRepository with the same atomicity
// guarantees as the SQL store, used for multi-step flows.
type memoryStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*domain.User
	tokens map[string]*domain.RefreshTokenRecord
	now    func() time.Time
}

var _ repository.UserRepository = (*memoryStore)(nil)

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		users:  map[uuid.UUID]*domain.User{},
		tokens: map[string]*domain.RefreshTokenRecord{},
		now:    now,
	}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.TwoFactor.RecoveryCodeHashes = append([]string(nil), u.TwoFactor.RecoveryCodeHashes...)
	return &c
}

func (s *memoryStore) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = cloneUser(user)
	return user, nil
}

func (s *memoryStore) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetUserByEmail(ctx, email)
	if err == domain.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

func (s *memoryStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memoryStore) GetUserByID(_ context.Context, userID uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *memoryStore) UpdateLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (s *memoryStore) setActive(userID uuid.UUID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID].IsActive = active
}

func (s *memoryStore) CreateRefreshToken(_ context.Context, record *domain.RefreshTokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = uuid.New()
	c := *record
	s.tokens[record.TokenHash] = &c
	return nil
}

func (s *memoryStore) FindRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string) (*domain.RefreshTokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tokens[tokenHash]
	if !ok || rec.UserID != userID {
		return nil, domain.ErrRefreshTokenNotFound
	}
	c := *rec
	return &c, nil
}

func (s *memoryStore) revokeLocked(rec *domain.RefreshTokenRecord) bool {
	if rec.IsRevoked {
		return false
	}
	now := s.now()
	rec.IsRevoked = true
	rec.RevokedAt = &now
	return true
}

func (s *memoryStore) RevokeRefreshToken(_ context.Context, userID uuid.UUID, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.tokens[tokenHash]; ok && rec.UserID == userID {
		s.revokeLocked(rec)
	}
	return nil
}

func (s *memoryStore) RevokeAllRefreshTokens(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, rec := range s.tokens {
		if rec.UserID == userID && s.revokeLocked(rec) {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) RotateRefreshToken(_ context.Context, userID uuid.UUID, oldHash string, next *domain.RefreshTokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.tokens[oldHash]
	if !ok || rec.UserID != userID || !s.revokeLocked(rec) {
		return domain.ErrTokenRevoked
	}
	next.ID = uuid.New()
	c := *next
	s.tokens[next.TokenHash] = &c
	return nil
}

func (s *memoryStore) ListActiveRefreshTokens(_ context.Context, userID uuid.UUID, now time.Time) ([]*domain.RefreshTokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []*domain.RefreshTokenRecord{}
	for _, rec := range s.tokens {
		if rec.UserID == userID && rec.IsActive(now) {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (s *memoryStore) PurgeRefreshTokens(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for h, rec := range s.tokens {
		if rec.ExpiresAt.Before(before) || (rec.IsRevoked && rec.RevokedAt.Before(before)) {
			delete(s.tokens, h)
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) SetTwoFactorSecret(_ context.Context, userID uuid.UUID, sealedSecret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[userID]
	if u.TwoFactor.Enabled {
		return domain.ErrTwoFactorAlreadyEnabled
	}
	u.TwoFactor.Secret = sealedSecret
	return nil
}

func (s *memoryStore) EnableTwoFactor(_ context.Context, userID uuid.UUID, recoveryCodeHashes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[userID]
	if u.TwoFactor.Enabled || u.TwoFactor.Secret == "" {
		return domain.ErrTwoFactorNotConfigured
	}
	u.TwoFactor.Enabled = true
	u.TwoFactor.RecoveryCodeHashes = append([]string(nil), recoveryCodeHashes...)
	return nil
}

func (s *memoryStore) DisableTwoFactor(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[userID]
	if !u.TwoFactor.Enabled {
		return domain.ErrTwoFactorNotEnabled
	}
	u.TwoFactor = domain.TwoFactorState{}
	return nil
}

func (s *memoryStore) ConsumeRecoveryCode(_ context.Context, userID uuid.UUID, codeHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.users[userID]
	if !u.TwoFactor.Enabled {
		return false, nil
	}
	for i, h := range u.TwoFactor.RecoveryCodeHashes {
		if h == codeHash {
			u.TwoFactor.RecoveryCodeHashes = append(u.TwoFactor.RecoveryCodeHashes[:i], u.TwoFactor.RecoveryCodeHashes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
