package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/db"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
)

// CommentRepository handles database operations for report comments
type CommentRepository struct {
	db *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment and sets the generated ID on the model
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := squirrel.Insert("comments").
		Columns("report_id", "user_id", "body", "status").
		Values(comment.ReportID, comment.UserID, comment.Body, comment.Status).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}

	return nil
}

// GetByID retrieves a comment with its author
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := squirrel.Select(
		"c.id", "c.report_id", "c.user_id", "c.body", "c.status",
		"c.created_at", "c.updated_at", "u.first_name", "u.last_name").
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	comment, err := scanComment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("error getting comment: %w", err)
	}

	return comment, nil
}

// ListByReport retrieves comments of a report with pagination.
// An empty status lists all statuses.
func (r *CommentRepository) ListByReport(ctx context.Context, reportID int64, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error) {
	base := squirrel.Select(
		"c.id", "c.report_id", "c.user_id", "c.body", "c.status",
		"c.created_at", "c.updated_at", "u.first_name", "u.last_name",
		"COUNT(*) OVER() AS total_count").
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.report_id": reportID}).
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		base = base.Where(squirrel.Eq{"c.status": status})
	}

	return r.list(ctx, base.OrderBy("c.created_at ASC").Offset(offset).Limit(uint64(limit)))
}

// ListByStatus retrieves comments across all reports in a given status,
// newest first. Used by the moderation queue.
func (r *CommentRepository) ListByStatus(ctx context.Context, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error) {
	query := squirrel.Select(
		"c.id", "c.report_id", "c.user_id", "c.body", "c.status",
		"c.created_at", "c.updated_at", "u.first_name", "u.last_name",
		"COUNT(*) OVER() AS total_count").
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.status": status}).
		OrderBy("c.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	return r.list(ctx, query)
}

func (r *CommentRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Comment, int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	var total int64
	for rows.Next() {
		var c models.Comment
		var firstName, lastName string
		err := rows.Scan(
			&c.ID, &c.ReportID, &c.UserID, &c.Body, &c.Status,
			&c.CreatedAt, &c.UpdatedAt, &firstName, &lastName, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning comment row: %w", err)
		}
		c.Author = &models.User{ID: c.UserID, FirstName: firstName, LastName: lastName}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating comment rows: %w", err)
	}

	return comments, total, nil
}

// UpdateStatus moves a single comment to a new moderation status
func (r *CommentRepository) UpdateStatus(ctx context.Context, id int64, status models.CommentStatus) error {
	query := squirrel.Update("comments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating comment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}

// BulkUpdateStatus moves a batch of comments to a new status in one
// transaction. All of the IDs must exist or nothing changes.
func (r *CommentRepository) BulkUpdateStatus(ctx context.Context, ids []int64, status models.CommentStatus) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := squirrel.Update("comments").
			Set("status", status).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": ids}).
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating comment statuses: %w", err)
		}
		if tag.RowsAffected() != int64(len(ids)) {
			return apperrors.ErrCommentNotFound
		}

		return nil
	})
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("comments").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCommentNotFound
	}

	return nil
}

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	var firstName, lastName string
	err := row.Scan(
		&c.ID, &c.ReportID, &c.UserID, &c.Body, &c.Status,
		&c.CreatedAt, &c.UpdatedAt, &firstName, &lastName,
	)
	if err != nil {
		return nil, err
	}
	c.Author = &models.User{ID: c.UserID, FirstName: firstName, LastName: lastName}
	return &c, nil
}
