package repository

import (
	"context"
	"errors"

	authdomain "darna/internal/auth/domain"
	"darna/internal/database"
	"darna/internal/users/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const returningUser = "RETURNING id, email, password_hash, name, phone, avatar, role, subscription_tier, " +
	"company_name, company_siret, company_address, is_active, is_verified, is_kyc_verified, " +
	"two_factor_enabled, last_login_at, created_at, updated_at"

type UserStore struct {
	db database.Service
}

func NewUserStore(db database.Service) UserRepository {
	return &UserStore{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Phone,
		&user.Avatar,
		&user.Role,
		&user.SubscriptionTier,
		&user.CompanyName,
		&user.CompanyInfo.Siret,
		&user.CompanyInfo.Address,
		&user.IsActive,
		&user.IsVerified,
		&user.IsKYCVerified,
		&user.TwoFactorEnabled,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, name, phone, avatar, role, subscription_tier,
		       company_name, company_siret, company_address, is_active, is_verified, is_kyc_verified,
		       two_factor_enabled, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1`

	return scanUser(s.db.Pool().QueryRow(ctx, query, userID))
}

// UpdateProfile writes only the fields set on update.
func (s *UserStore) UpdateProfile(ctx context.Context, userID uuid.UUID, update domain.ProfileUpdate) (*domain.User, error) {
	set := map[string]any{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.CompanyName != nil {
		set["company_name"] = *update.CompanyName
	}
	if update.CompanySiret != nil {
		set["company_siret"] = *update.CompanySiret
	}
	if update.CompanyAddress != nil {
		set["company_address"] = *update.CompanyAddress
	}
	if len(set) == 0 {
		return nil, domain.ErrNothingToUpdate
	}

	sqlStr, args, err := psql.Update("users").
		SetMap(set).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": userID}).
		Suffix(returningUser).
		ToSql()
	if err != nil {
		return nil, err
	}

	return scanUser(s.db.Pool().QueryRow(ctx, sqlStr, args...))
}

func (s *UserStore) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *UserStore) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	query := `UPDATE users SET avatar = $2, updated_at = NOW() WHERE id = $1`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, avatarURL)
	if err != nil {
		return err
	}

	if commandTag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

func (s *UserStore) SetActive(ctx context.Context, userID uuid.UUID, active bool) (*domain.User, error) {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1 ` + returningUser

	return scanUser(s.db.Pool().QueryRow(ctx, query, userID, active))
}

func (s *UserStore) SetSubscription(ctx context.Context, userID uuid.UUID, tier authdomain.SubscriptionTier) (*domain.User, error) {
	query := `UPDATE users SET subscription_tier = $2, updated_at = NOW() WHERE id = $1 ` + returningUser

	return scanUser(s.db.Pool().QueryRow(ctx, query, userID, tier))
}
