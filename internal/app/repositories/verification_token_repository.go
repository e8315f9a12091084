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

// VerificationTokenRepository handles database operations for email
// verification tokens
type VerificationTokenRepository struct {
	db *pgxpool.Pool
}

// NewVerificationTokenRepository creates a new VerificationTokenRepository
func NewVerificationTokenRepository(db *pgxpool.Pool) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// Create persists a verification token for a user
func (r *VerificationTokenRepository) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := squirrel.Insert("verification_tokens").
		Columns("user_id", "token", "expires_at").
		Values(userID, token, expiresAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error creating verification token: %w", err)
	}

	return nil
}

// GetByToken retrieves a verification token record by token value
func (r *VerificationTokenRepository) GetByToken(ctx context.Context, token string) (*models.VerificationToken, error) {
	query := squirrel.Select("id", "user_id", "token", "expires_at", "used", "created_at").
		From("verification_tokens").
		Where(squirrel.Eq{"token": token}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var vt models.VerificationToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&vt.ID, &vt.UserID, &vt.Token, &vt.ExpiresAt, &vt.Used, &vt.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidEmailToken
		}
		return nil, fmt.Errorf("error getting verification token: %w", err)
	}

	return &vt, nil
}

// MarkUsed flags a verification token as consumed
func (r *VerificationTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	query := squirrel.Update("verification_tokens").
		Set("used", true).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error marking verification token used: %w", err)
	}

	return nil
}

// DeleteForUser removes all verification tokens of a user before issuing
// a fresh one
func (r *VerificationTokenRepository) DeleteForUser(ctx context.Context, userID int64) error {
	query := squirrel.Delete("verification_tokens").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error deleting verification tokens: %w", err)
	}

	return nil
}
