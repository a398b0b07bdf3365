package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/auth/repository"
	"darna/internal/metrics"
	"darna/pkg/mailer"
	"darna/pkg/password"
	"darna/pkg/token"
	"darna/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resultTwoFactorRequired = "two_factor_required"

type Dependencies struct {
	Repo      repository.UserRepository
	Hasher    password.Hasher
	Issuer    TokenIssuer
	TwoFactor TwoFactorUsecase
	Denylist  TokenDenylist
	Mailer    mailer.Mailer
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

type AuthService struct {
	repo      repository.UserRepository
	hasher    password.Hasher
	issuer    TokenIssuer
	ledger    *Ledger
	twoFactor TwoFactorUsecase
	denylist  TokenDenylist
	mailer    mailer.Mailer
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

func NewAuthService(d Dependencies) *AuthService {
	return &AuthService{
		repo:      d.Repo,
		hasher:    d.Hasher,
		issuer:    d.Issuer,
		ledger:    NewLedger(d.Repo, d.Issuer.RefreshTTL()),
		twoFactor: d.TwoFactor,
		denylist:  d.Denylist,
		mailer:    d.Mailer,
		metrics:   d.Metrics,
		log:       d.Logger,
		now:       time.Now,
	}
}

// WithClock sets the time source for the service and its ledger.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	s.ledger.WithClock(now)
	return s
}

func (s *AuthService) Ledger() *Ledger {
	return s.ledger
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput, device domain.DeviceInfo) (*AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	if email == "" || input.Password == "" || name == "" {
		return nil, domain.ErrRequiredFieldsMissing
	}
	if !domain.IsValidEmail(email) {
		return nil, domain.ErrInvalidEmailFormat
	}
	if !validator.IsStrongPassword(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	role := domain.RoleVisitor
	if input.Role != "" {
		role = domain.Role(input.Role)
		if !role.IsSelfAssignable() {
			return nil, domain.ErrInvalidRole
		}
	}

	exists, err := s.repo.UserExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := s.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:            email,
		PasswordHash:     hash,
		Name:             name,
		Phone:            strings.TrimSpace(input.Phone),
		Avatar:           domain.GenerateAvatar(name),
		Role:             role,
		SubscriptionTier: domain.SubscriptionFree,
		CompanyName:      strings.TrimSpace(input.CompanyName),
		IsActive:         true,
	}
	if input.CompanyInfo != nil {
		user.CompanyInfo = domain.CompanyInfo{
			Siret:   strings.TrimSpace(input.CompanyInfo.Siret),
			Address: strings.TrimSpace(input.CompanyInfo.Address),
		}
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, created, device)
	if err != nil {
		return nil, err
	}

	s.metrics.Registrations.Inc()
	s.mailer.SendMailAsync(created.Email, mailer.TemplateWelcome, map[string]any{
		"NAME": created.Name,
		"MAIL": created.Email,
	}, "welcome")
	s.log.Info("user registered", zap.String("user_id", created.ID.String()), zap.String("role", string(created.Role)))

	return &AuthResult{User: NewUserInfo(created), Tokens: tokens}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput, device domain.DeviceInfo) (result *AuthResult, err error) {
	defer func() {
		label := metrics.Result(err)
		if err == nil && result.RequiresTwoFactor {
			label = resultTwoFactorRequired
		}
		s.metrics.Logins.WithLabelValues(label).Inc()
	}()

	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrRequiredFieldsMissing
	}
	if !domain.IsValidEmail(email) {
		return nil, domain.ErrInvalidEmailFormat
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn("login failed", zap.String("email", email), zap.String("reason", "unknown email"))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	match, err := s.hasher.ComparePassword(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		s.log.Warn("login failed", zap.String("email", email), zap.String("reason", "wrong password"))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	if user.TwoFactor.Enabled {
		if input.TwoFactorToken == "" {
			return &AuthResult{RequiresTwoFactor: true}, nil
		}
		ok, err := s.twoFactor.Verify(ctx, user.ID, input.TwoFactorToken)
		if err != nil {
			return nil, err
		}
		if !ok {
			s.log.Warn("login failed", zap.String("email", email), zap.String("reason", "invalid two-factor code"))
			return nil, domain.ErrInvalidTwoFactorCode
		}
	}

	return s.openSession(ctx, user, device)
}

func (s *AuthService) LoginWithRecoveryCode(ctx context.Context, input RecoveryLoginInput, device domain.DeviceInfo) (*AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.RecoveryCode == "" {
		return nil, domain.ErrRequiredFieldsMissing
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidRecoveryCode
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	ok, err := s.twoFactor.VerifyRecoveryCode(ctx, user.ID, input.RecoveryCode)
	if err != nil {
		if errors.Is(err, domain.ErrTwoFactorNotEnabled) {
			return nil, domain.ErrInvalidRecoveryCode
		}
		return nil, err
	}
	if !ok {
		s.log.Warn("recovery login failed", zap.String("email", email))
		return nil, domain.ErrInvalidRecoveryCode
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	s.log.Info("recovery code used", zap.String("user_id", user.ID.String()))
	return s.openSession(ctx, user, device)
}

func (s *AuthService) openSession(ctx context.Context, user *domain.User, device domain.DeviceInfo) (*AuthResult, error) {
	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Error("failed to update last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	} else {
		user.LastLoginAt = &now
	}

	tokens, err := s.issueTokens(ctx, user, device)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: NewUserInfo(user), Tokens: tokens}, nil
}

func identityOf(user *domain.User) token.Identity {
	return token.Identity{UserID: user.ID.String(), Email: user.Email, Role: string(user.Role)}
}

func (s *AuthService) mintPair(user *domain.User) (*TokenPair, error) {
	access, accessClaims, err := s.issuer.MintAccessToken(identityOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, refreshClaims, err := s.issuer.MintRefreshToken(identityOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to mint refresh token: %w", err)
	}
	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessClaims.ExpiresAt.Time,
		RefreshTokenExpiresAt: refreshClaims.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User, device domain.DeviceInfo) (*TokenPair, error) {
	pair, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.Store(ctx, user.ID, pair.RefreshToken, device); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return pair, nil
}

// Refresh rotates a refresh token: the presented token is retired and a new
// pair is issued. Expired tokens are revoked on the way out.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, device domain.DeviceInfo) (pair *TokenPair, err error) {
	defer func() { s.metrics.Refreshes.WithLabelValues(metrics.Result(err)).Inc() }()

	if refreshToken == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := s.issuer.Inspect(refreshToken, token.TypeRefresh)
	if err != nil {
		if errors.Is(err, token.ErrExpired) && claims != nil {
			if userID, perr := uuid.Parse(claims.UserID); perr == nil {
				s.revokeQuietly(ctx, userID, refreshToken)
			}
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}

	rec, err := s.ledger.lookup(ctx, userID, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	switch {
	case rec == nil:
		return nil, domain.ErrTokenInvalid
	case rec.IsRevoked:
		s.log.Warn("revoked refresh token presented", zap.String("user_id", userID.String()))
		return nil, domain.ErrTokenRevoked
	case rec.IsExpired(s.now()):
		s.revokeQuietly(ctx, userID, refreshToken)
		return nil, domain.ErrTokenExpired
	}

	pair, err = s.mintPair(user)
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.Rotate(ctx, userID, refreshToken, pair.RefreshToken, device); err != nil {
		if errors.Is(err, domain.ErrTokenRevoked) {
			return nil, domain.ErrTokenRevoked
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return pair, nil
}

func (s *AuthService) revokeQuietly(ctx context.Context, userID uuid.UUID, refreshToken string) {
	if err := s.ledger.Revoke(ctx, userID, refreshToken); err != nil {
		s.log.Error("failed to revoke refresh token", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

// Logout denylists the presented access token and revokes the refresh token
// supplied with it, if any.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessClaims == nil {
		return domain.ErrTokenMissing
	}

	if input.AccessClaims.ExpiresAt != nil {
		s.denylist.Revoke(input.AccessClaims.ID, input.AccessClaims.ExpiresAt.Time)
	}

	if input.RefreshToken == "" {
		return nil
	}

	userID, err := uuid.Parse(input.AccessClaims.UserID)
	if err != nil {
		return domain.ErrTokenInvalid
	}
	if err := s.ledger.Revoke(ctx, userID, input.RefreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.ledger.RevokeAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.log.Info("refresh tokens revoked", zap.String("user_id", userID.String()), zap.Int64("count", n))
	return n, nil
}

func (s *AuthService) ListActiveRefreshTokens(ctx context.Context, userID uuid.UUID) ([]RefreshTokenInfo, error) {
	records, err := s.ledger.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list refresh tokens: %w", err)
	}

	out := make([]RefreshTokenInfo, 0, len(records))
	for _, r := range records {
		out = append(out, RefreshTokenInfo{
			ID:         r.ID.String(),
			CreatedAt:  r.CreatedAt,
			ExpiresAt:  r.ExpiresAt,
			DeviceInfo: r.DeviceInfo,
		})
	}
	return out, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewUserInfo(user), nil
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*UserInfo, error) {
	user, err := s.repo.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return NewUserInfo(user), nil
}

func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*token.Claims, error) {
	if accessToken == "" {
		return nil, domain.ErrTokenMissing
	}

	claims, err := s.issuer.Inspect(accessToken, token.TypeAccess)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if s.denylist.IsRevoked(claims.ID) {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}
