package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"darna/internal/auth/domain"
	"darna/internal/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var userColumns = []string{
	"id", "email", "password_hash", "name", "phone", "avatar", "role", "subscription_tier",
	"company_name", "company_siret", "company_address", "is_active", "is_verified", "is_kyc_verified",
	"two_factor_enabled", "two_factor_secret", "two_factor_recovery_codes",
	"last_login_at", "created_at", "updated_at",
}

var refreshColumns = []string{
	"id", "user_id", "token_hash", "user_agent", "ip_address", "created_at", "expires_at", "is_revoked", "revoked_at",
}

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
		&user.TwoFactor.Enabled,
		&user.TwoFactor.Secret,
		&user.TwoFactor.RecoveryCodeHashes,
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

func scanRefreshToken(row pgx.Row) (*domain.RefreshTokenRecord, error) {
	rec := &domain.RefreshTokenRecord{}
	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.TokenHash,
		&rec.DeviceInfo.UserAgent,
		&rec.DeviceInfo.IPAddress,
		&rec.CreatedAt,
		&rec.ExpiresAt,
		&rec.IsRevoked,
		&rec.RevokedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *UserStore) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := psql.Insert("users").
		Columns("email", "password_hash", "name", "phone", "avatar", "role", "subscription_tier",
			"company_name", "company_siret", "company_address", "is_active", "is_verified", "is_kyc_verified").
		Values(user.Email, user.PasswordHash, user.Name, user.Phone, user.Avatar, user.Role, user.SubscriptionTier,
			user.CompanyName, user.CompanyInfo.Siret, user.CompanyInfo.Address, user.IsActive, user.IsVerified, user.IsKYCVerified).
		Suffix("RETURNING id, created_at, updated_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	err = s.db.Pool().QueryRow(ctx, sqlStr, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

func (s *UserStore) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	var exists bool
	if err := s.db.Pool().QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	sqlStr, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Expr("LOWER(email) = LOWER(?)", email)).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(s.db.Pool().QueryRow(ctx, sqlStr, args...))
}

func (s *UserStore) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	sqlStr, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(s.db.Pool().QueryRow(ctx, sqlStr, args...))
}

func (s *UserStore) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2, updated_at = NOW() WHERE id = $1`

	_, err := s.db.Pool().Exec(ctx, query, userID, at)
	return err
}

func (s *UserStore) CreateRefreshToken(ctx context.Context, record *domain.RefreshTokenRecord) error {
	return insertRefreshToken(ctx, s.db.Pool(), record)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertRefreshToken(ctx context.Context, q rowQuerier, record *domain.RefreshTokenRecord) error {
	sqlStr, args, err := psql.Insert("refresh_tokens").
		Columns("user_id", "token_hash", "user_agent", "ip_address", "created_at", "expires_at").
		Values(record.UserID, record.TokenHash, record.DeviceInfo.UserAgent, record.DeviceInfo.IPAddress, record.CreatedAt, record.ExpiresAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return q.QueryRow(ctx, sqlStr, args...).Scan(&record.ID)
}

func (s *UserStore) FindRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) (*domain.RefreshTokenRecord, error) {
	sqlStr, args, err := psql.Select(refreshColumns...).
		From("refresh_tokens").
		Where(sq.Eq{"user_id": userID, "token_hash": tokenHash}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rec, err := scanRefreshToken(s.db.Pool().QueryRow(ctx, sqlStr, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRefreshTokenNotFound
	}
	return rec, err
}

func (s *UserStore) RevokeRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	query := `UPDATE refresh_tokens SET is_revoked = TRUE, revoked_at = NOW()
			  WHERE user_id = $1 AND token_hash = $2 AND is_revoked = FALSE`

	_, err := s.db.Pool().Exec(ctx, query, userID, tokenHash)
	return err
}

func (s *UserStore) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE refresh_tokens SET is_revoked = TRUE, revoked_at = NOW()
			  WHERE user_id = $1 AND is_revoked = FALSE`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

// RotateRefreshToken revokes the old record only if it is still live and
// stores the replacement in the same transaction. A concurrent rotation of
// the same token finds zero rows to revoke and gets ErrTokenRevoked.
func (s *UserStore) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash string, next *domain.RefreshTokenRecord) error {
	tx, err := s.db.Pool().Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	commandTag, err := tx.Exec(ctx, `UPDATE refresh_tokens SET is_revoked = TRUE, revoked_at = NOW()
			  WHERE user_id = $1 AND token_hash = $2 AND is_revoked = FALSE`, userID, oldHash)
	if err != nil {
		return fmt.Errorf("revoke rotated token: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return domain.ErrTokenRevoked
	}

	if err := insertRefreshToken(ctx, tx, next); err != nil {
		return fmt.Errorf("store rotated token: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *UserStore) ListActiveRefreshTokens(ctx context.Context, userID uuid.UUID, now time.Time) ([]*domain.RefreshTokenRecord, error) {
	sqlStr, args, err := psql.Select(refreshColumns...).
		From("refresh_tokens").
		Where(sq.Eq{"user_id": userID, "is_revoked": false}).
		Where(sq.Gt{"expires_at": now}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool().Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.RefreshTokenRecord{}
	for rows.Next() {
		rec, err := scanRefreshToken(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *UserStore) PurgeRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	sqlStr, args, err := psql.Delete("refresh_tokens").
		Where(sq.Or{
			sq.Lt{"expires_at": before},
			sq.And{sq.Eq{"is_revoked": true}, sq.Lt{"revoked_at": before}},
		}).
		ToSql()
	if err != nil {
		return 0, err
	}

	commandTag, err := s.db.Pool().Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

// Two Factor methods

func (s *UserStore) SetTwoFactorSecret(ctx context.Context, userID uuid.UUID, sealedSecret string) error {
	query := `UPDATE users SET two_factor_secret = $2, updated_at = NOW()
			  WHERE id = $1 AND two_factor_enabled = FALSE`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, sealedSecret)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return domain.ErrTwoFactorAlreadyEnabled
	}
	return nil
}

func (s *UserStore) EnableTwoFactor(ctx context.Context, userID uuid.UUID, recoveryCodeHashes []string) error {
	query := `UPDATE users SET two_factor_enabled = TRUE, two_factor_recovery_codes = $2, updated_at = NOW()
			  WHERE id = $1 AND two_factor_enabled = FALSE AND two_factor_secret <> ''`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, recoveryCodeHashes)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return domain.ErrTwoFactorNotConfigured
	}
	return nil
}

func (s *UserStore) DisableTwoFactor(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET two_factor_enabled = FALSE, two_factor_secret = '', two_factor_recovery_codes = '{}', updated_at = NOW()
			  WHERE id = $1 AND two_factor_enabled = TRUE`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return domain.ErrTwoFactorNotEnabled
	}
	return nil
}

// ConsumeRecoveryCode removes the code in one statement so it can be spent once.
func (s *UserStore) ConsumeRecoveryCode(ctx context.Context, userID uuid.UUID, codeHash string) (bool, error) {
	query := `UPDATE users SET two_factor_recovery_codes = array_remove(two_factor_recovery_codes, $2), updated_at = NOW()
			  WHERE id = $1 AND two_factor_enabled = TRUE AND $2 = ANY(two_factor_recovery_codes)`

	commandTag, err := s.db.Pool().Exec(ctx, query, userID, codeHash)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}
