package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
)

// PasswordResetTokenRepository handles database operations for password
// reset tokens
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// Create persists a password reset token for a user
func (r *PasswordResetTokenRepository) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := squirrel.Insert("password_reset_tokens").
		Columns("user_id", "token", "expires_at").
		Values(userID, token, expiresAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}

	return nil
}

// GetByToken retrieves a password reset token record by token value
func (r *PasswordResetTokenRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	query := squirrel.Select("id", "user_id", "token", "expires_at", "used", "created_at").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token": token}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var prt models.PasswordResetToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&prt.ID, &prt.UserID, &prt.Token, &prt.ExpiresAt, &prt.Used, &prt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, fmt.Errorf("error getting password reset token: %w", err)
	}

	return &prt, nil
}

// MarkUsed flags a reset token as consumed
func (r *PasswordResetTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	query := squirrel.Update("password_reset_tokens").
		Set("used", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error marking password reset token used: %w", err)
	}

	return nil
}

// InvalidateForUser consumes every outstanding reset token of a user,
// so only the newest requested link works
func (r *PasswordResetTokenRepository) InvalidateForUser(ctx context.Context, userID int64) error {
	query := squirrel.Update("password_reset_tokens").
		Set("used", true).
		Where(squirrel.Eq{"user_id": userID, "used": false}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error invalidating password reset tokens: %w", err)
	}

	return nil
}
