package usecase

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	authdomain "darna/internal/auth/domain"
	"darna/internal/users/domain"
	"darna/internal/users/repository"
	"darna/pkg/mailer"
	"darna/pkg/password"
	"darna/pkg/uploadfiles"
	"darna/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const avatarFolder = "avatars"

type userUsecase struct {
	userRepo repository.UserRepository
	hasher   password.Hasher
	sessions SessionRevoker
	avatars  AvatarStore
	mailer   mailer.Mailer
	log      *zap.Logger
}

func NewUserUsecase(userRepo repository.UserRepository, hasher password.Hasher, sessions SessionRevoker, avatars AvatarStore, m mailer.Mailer, log *zap.Logger) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
		avatars:  avatars,
		mailer:   m,
		log:      log,
	}
}

func (u *userUsecase) GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfileResponse, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserProfileResponse(user), nil
}

func (u *userUsecase) UpdateUserProfile(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserProfileResponse, error) {
	update := req.toUpdate()
	update.Normalize()
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := u.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			u.log.Error("failed to update profile", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return nil, err
	}

	return ToUserProfileResponse(user), nil
}

// ChangePassword replaces the password and signs the user out everywhere.
func (u *userUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	match, err := u.hasher.ComparePassword(user.PasswordHash, req.CurrentPassword)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return domain.ErrIncorrectPassword
	}

	if !validator.IsStrongPassword(req.NewPassword) {
		return domain.ErrWeakPassword
	}
	if req.NewPassword == req.CurrentPassword {
		return domain.ErrSamePassword
	}

	hash, err := u.hasher.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if _, err := u.sessions.RevokeAllRefreshTokens(ctx, userID); err != nil {
		u.log.Error("failed to revoke sessions after password change", zap.String("user_id", userID.String()), zap.Error(err))
	}

	u.mailer.SendMailAsync(user.Email, mailer.TemplatePasswordChanged, map[string]any{"NAME": user.Name}, "password changed")
	u.log.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}

func (u *userUsecase) UploadAvatar(ctx context.Context, userID uuid.UUID, fileHeader *multipart.FileHeader) (string, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	url, err := u.avatars.Upload(ctx, fileHeader, avatarFolder+"/"+userID.String())
	if err != nil {
		return "", err
	}

	if err := u.userRepo.UpdateAvatar(ctx, userID, url); err != nil {
		if derr := u.avatars.Delete(ctx, url); derr != nil {
			u.log.Warn("failed to clean up orphaned avatar", zap.String("url", url), zap.Error(derr))
		}
		return "", err
	}

	// generated avatars live outside our bucket
	if user.Avatar != "" {
		if err := u.avatars.Delete(ctx, user.Avatar); err != nil && !errors.Is(err, uploadfiles.ErrForeignURL) {
			u.log.Warn("failed to delete previous avatar", zap.String("url", user.Avatar), zap.Error(err))
		}
	}

	return url, nil
}

func (u *userUsecase) GetContact(ctx context.Context, userID uuid.UUID) (*ContactResponse, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return toContactResponse(user), nil
}

// SetStatus activates or deactivates an account. Deactivation ends all sessions.
func (u *userUsecase) SetStatus(ctx context.Context, userID uuid.UUID, active bool) (*UserProfileResponse, error) {
	user, err := u.userRepo.SetActive(ctx, userID, active)
	if err != nil {
		return nil, err
	}

	if !active {
		n, err := u.sessions.RevokeAllRefreshTokens(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to revoke sessions: %w", err)
		}
		u.log.Info("account deactivated", zap.String("user_id", userID.String()), zap.Int64("revoked", n))
	}

	return ToUserProfileResponse(user), nil
}

func (u *userUsecase) SetSubscription(ctx context.Context, userID uuid.UUID, tier authdomain.SubscriptionTier) (*UserProfileResponse, error) {
	if !tier.IsValid() {
		return nil, authdomain.ErrInvalidSubscription
	}

	user, err := u.userRepo.SetSubscription(ctx, userID, tier)
	if err != nil {
		return nil, err
	}

	u.log.Info("subscription changed", zap.String("user_id", userID.String()), zap.String("tier", string(tier)))
	return ToUserProfileResponse(user), nil
}
