package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/auth/repository"
	"darna/internal/metrics"
	"darna/pkg/mailer"

	"github.com/google/uuid"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"go.uber.org/zap"
)

const (
	totpSecretSize = 20
	qrCodeSize     = 200
)

var totpOpts = totp.ValidateOpts{
	Period:    domain.TOTPPeriod,
	Skew:      domain.TOTPSkew,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type TwoFactorService struct {
	repo    repository.UserRepository
	sealer  SecretSealer
	mailer  mailer.Mailer
	metrics *metrics.Metrics
	log     *zap.Logger
	issuer  string
	now     func() time.Time
}

func NewTwoFactorService(repo repository.UserRepository, sealer SecretSealer, m mailer.Mailer, mt *metrics.Metrics, log *zap.Logger, issuer string) *TwoFactorService {
	if issuer == "" {
		issuer = "Darna"
	}
	return &TwoFactorService{
		repo:    repo,
		sealer:  sealer,
		mailer:  m,
		metrics: mt,
		log:     log,
		issuer:  issuer,
		now:     time.Now,
	}
}

func (s *TwoFactorService) WithClock(now func() time.Time) *TwoFactorService {
	s.now = now
	return s
}

func (s *TwoFactorService) record(action string, err error) {
	s.metrics.TwoFactor.WithLabelValues(action, metrics.Result(err)).Inc()
}

func (s *TwoFactorService) Setup(ctx context.Context, userID uuid.UUID) (out *TwoFactorSetupOutput, err error) {
	defer func() { s.record("setup", err) }()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TwoFactor.Enabled {
		return nil, domain.ErrTwoFactorAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: user.Email,
		Period:      domain.TOTPPeriod,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("generate totp secret: %w", err)
	}

	sealed, err := s.sealer.Encrypt(key.Secret())
	if err != nil {
		return nil, fmt.Errorf("seal totp secret: %w", err)
	}

	if err := s.repo.SetTwoFactorSecret(ctx, user.ID, sealed); err != nil {
		return nil, err
	}

	qr, err := qrDataURL(key)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}

	return &TwoFactorSetupOutput{
		Secret:         key.Secret(),
		ManualEntryKey: key.Secret(),
		OTPAuthURL:     key.URL(),
		QRCode:         qr,
	}, nil
}

func qrDataURL(key *otp.Key) (string, error) {
	img, err := key.Image(qrCodeSize, qrCodeSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (s *TwoFactorService) Confirm(ctx context.Context, userID uuid.UUID, code string) (out *TwoFactorConfirmOutput, err error) {
	defer func() { s.record("confirm", err) }()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TwoFactor.Enabled {
		return nil, domain.ErrTwoFactorAlreadyEnabled
	}
	if user.TwoFactor.Secret == "" {
		return nil, domain.ErrTwoFactorNotConfigured
	}

	ok, err := s.validateCode(user.TwoFactor.Secret, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidTwoFactorCode
	}

	codes, err := domain.GenerateRecoveryCodes()
	if err != nil {
		return nil, fmt.Errorf("generate recovery codes: %w", err)
	}

	if err := s.repo.EnableTwoFactor(ctx, user.ID, domain.HashRecoveryCodes(codes)); err != nil {
		return nil, err
	}

	s.mailer.SendMailAsync(user.Email, mailer.TemplateTwoFactorEnabled, map[string]any{"NAME": user.Name}, "two-factor enabled")
	s.log.Info("two-factor enabled", zap.String("user_id", user.ID.String()))

	return &TwoFactorConfirmOutput{RecoveryCodes: codes}, nil
}

func (s *TwoFactorService) Verify(ctx context.Context, userID uuid.UUID, code string) (ok bool, err error) {
	defer func() {
		result := err
		if result == nil && !ok {
			result = domain.ErrInvalidTwoFactorCode
		}
		s.record("verify", result)
	}()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !user.TwoFactor.Enabled || user.TwoFactor.Secret == "" {
		return false, domain.ErrTwoFactorNotEnabled
	}

	return s.validateCode(user.TwoFactor.Secret, code)
}

func (s *TwoFactorService) Disable(ctx context.Context, userID uuid.UUID) (err error) {
	defer func() { s.record("disable", err) }()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TwoFactor.Enabled {
		return domain.ErrTwoFactorNotEnabled
	}

	if err := s.repo.DisableTwoFactor(ctx, user.ID); err != nil {
		return err
	}

	s.mailer.SendMailAsync(user.Email, mailer.TemplateTwoFactorDisabled, map[string]any{"NAME": user.Name}, "two-factor disabled")
	s.log.Info("two-factor disabled", zap.String("user_id", user.ID.String()))
	return nil
}

// VerifyRecoveryCode spends a matching code. The caller decides whether to open a session.
func (s *TwoFactorService) VerifyRecoveryCode(ctx context.Context, userID uuid.UUID, code string) (ok bool, err error) {
	defer func() {
		result := err
		if result == nil && !ok {
			result = domain.ErrInvalidRecoveryCode
		}
		s.record("recovery", result)
	}()

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !user.TwoFactor.Enabled {
		return false, domain.ErrTwoFactorNotEnabled
	}

	normalized := domain.NormalizeRecoveryCode(code)
	if len(normalized) != domain.RecoveryCodeLength {
		return false, nil
	}

	return s.repo.ConsumeRecoveryCode(ctx, user.ID, domain.HashRecoveryCode(normalized))
}

// validateCode checks code against the sealed secret within the allowed skew.
// A malformed code is a mismatch, not an error.
func (s *TwoFactorService) validateCode(sealed, code string) (bool, error) {
	secret, err := s.sealer.Decrypt(sealed)
	if err != nil {
		return false, fmt.Errorf("open totp secret: %w", err)
	}

	ok, err := totp.ValidateCustom(code, secret, s.now().UTC(), totpOpts)
	if err != nil {
		return false, nil
	}
	return ok, nil
}
