package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/dberrors"
)

var contentColumns = []string{
	"id", "title", "slug", "content_type", "body", "status",
	"author_id", "created_at", "updated_at",
}

// ContentRepository handles database operations for CMS records
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

// Create inserts a new CMS record and sets the generated ID on the model
func (r *ContentRepository) Create(ctx context.Context, content *models.Content) error {
	query := squirrel.Insert("content").
		Columns("title", "slug", "content_type", "body", "status", "author_id").
		Values(content.Title, content.Slug, content.ContentType, content.Body,
			content.Status, content.AuthorID).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "content_slug_key") {
			return apperrors.ErrSlugAlreadyTaken
		}
		return fmt.Errorf("error creating content: %w", err)
	}

	return nil
}

// GetByID retrieves a CMS record by ID
func (r *ContentRepository) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetBySlug retrieves a published CMS record by slug
func (r *ContentRepository) GetBySlug(ctx context.Context, slug string) (*models.Content, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug, "status": models.ContentStatusPublished})
}

func (r *ContentRepository) getOne(ctx context.Context, pred interface{}) (*models.Content, error) {
	query := squirrel.Select(contentColumns...).
		From("content").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var c models.Content
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.Title, &c.Slug, &c.ContentType, &c.Body, &c.Status,
		&c.AuthorID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		return nil, fmt.Errorf("error getting content: %w", err)
	}

	return &c, nil
}

// List retrieves CMS records with optional type and status filters
func (r *ContentRepository) List(ctx context.Context, contentType, status string, offset uint64, limit int) ([]models.Content, int64, error) {
	base := squirrel.Select(append(append([]string{}, contentColumns...), "COUNT(*) OVER() AS total_count")...).
		From("content").
		PlaceholderFormat(squirrel.Dollar)

	if contentType != "" {
		base = base.Where(squirrel.Eq{"content_type": contentType})
	}
	if status != "" {
		base = base.Where(squirrel.Eq{"status": status})
	}

	query := base.OrderBy("updated_at DESC").Offset(offset).Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing content: %w", err)
	}
	defer rows.Close()

	records := []models.Content{}
	var total int64
	for rows.Next() {
		var c models.Content
		err := rows.Scan(
			&c.ID, &c.Title, &c.Slug, &c.ContentType, &c.Body, &c.Status,
			&c.AuthorID, &c.CreatedAt, &c.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning content row: %w", err)
		}
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating content rows: %w", err)
	}

	return records, total, nil
}

// Update rewrites a CMS record
func (r *ContentRepository) Update(ctx context.Context, content *models.Content) error {
	query := squirrel.Update("content").
		Set("title", content.Title).
		Set("slug", content.Slug).
		Set("content_type", content.ContentType).
		Set("body", content.Body).
		Set("status", content.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": content.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "content_slug_key") {
			return apperrors.ErrSlugAlreadyTaken
		}
		return fmt.Errorf("error updating content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContentNotFound
	}

	return nil
}

// Delete removes a CMS record
func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("content").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrContentNotFound
	}

	return nil
}
