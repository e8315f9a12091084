package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MeTooRepository handles database operations for report confirmations.
// The unique constraint on (report_id, user_id) makes both insert and
// delete safe under concurrent toggles.
type MeTooRepository struct {
	db *pgxpool.Pool
}

// NewMeTooRepository creates a new MeTooRepository
func NewMeTooRepository(db *pgxpool.Pool) *MeTooRepository {
	return &MeTooRepository{db: db}
}

// Insert adds a confirmation for a (report, user) pair. Returns false
// when the pair already exists, without error.
func (r *MeTooRepository) Insert(ctx context.Context, reportID, userID int64) (bool, error) {
	query := squirrel.Insert("me_too").
		Columns("report_id", "user_id").
		Values(reportID, userID).
		Suffix("ON CONFLICT ON CONSTRAINT me_too_report_user_key DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error inserting confirmation: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a confirmation for a (report, user) pair. Returns false
// when no row existed.
func (r *MeTooRepository) Delete(ctx context.Context, reportID, userID int64) (bool, error) {
	query := squirrel.Delete("me_too").
		Where(squirrel.Eq{"report_id": reportID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting confirmation: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Exists checks whether a user has confirmed a report
func (r *MeTooRepository) Exists(ctx context.Context, reportID, userID int64) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("me_too").
		Where(squirrel.Eq{"report_id": reportID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking confirmation: %w", err)
	}

	return count > 0, nil
}

// CountByReport returns the confirmation total of a report
func (r *MeTooRepository) CountByReport(ctx context.Context, reportID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("me_too").
		Where(squirrel.Eq{"report_id": reportID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting confirmations: %w", err)
	}

	return count, nil
}
