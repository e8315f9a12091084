package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for user notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	query := squirrel.Insert("notifications").
		Columns("user_id", "type", "message", "related_id").
		Values(n.UserID, n.Type, n.Message, n.RelatedID).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, offset uint64, limit int) ([]models.Notification, int64, error) {
	query := squirrel.Select("id", "user_id", "type", "message", "related_id",
		"is_read", "created_at", "COUNT(*) OVER() AS total_count").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	var total int64
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.RelatedID,
			&n.IsRead, &n.CreatedAt, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, total, nil
}

// UnreadCount returns how many unread notifications a user has
func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flags one notification as read. The user filter keeps
// callers from touching other accounts' notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	query := squirrel.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead flags every unread notification of a user as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	query := squirrel.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error marking notifications read: %w", err)
	}

	return nil
}
