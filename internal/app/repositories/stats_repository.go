package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/scamwatch/backend/internal/app/models"
)

// CategoryTotal pairs a category with its report count
type CategoryTotal struct {
	Category string
	Count    int64
}

// StatusTotal pairs a moderation status with its report count
type StatusTotal struct {
	Status string
	Count  int64
}

// MonthTotal pairs a calendar month (YYYY-MM) with its submission count
type MonthTotal struct {
	Month string
	Count int64
}

// StatsRepository runs the aggregate queries behind the dashboards
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// CountReports returns the total number of reports, optionally filtered
// by status
func (r *StatsRepository) CountReports(ctx context.Context, status models.ReportStatus) (int64, error) {
	base := squirrel.Select("COUNT(*)").
		From("scam_reports").
		PlaceholderFormat(squirrel.Dollar)
	if status != "" {
		base = base.Where(squirrel.Eq{"status": status})
	}
	return r.countOne(ctx, base, "reports")
}

// CountUsers returns the total number of registered accounts
func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.countOne(ctx, squirrel.Select("COUNT(*)").From("users").PlaceholderFormat(squirrel.Dollar), "users")
}

// CountComments returns the total number of comments, optionally filtered
// by status
func (r *StatsRepository) CountComments(ctx context.Context, status models.CommentStatus) (int64, error) {
	base := squirrel.Select("COUNT(*)").
		From("comments").
		PlaceholderFormat(squirrel.Dollar)
	if status != "" {
		base = base.Where(squirrel.Eq{"status": status})
	}
	return r.countOne(ctx, base, "comments")
}

// CountMeToos returns the total number of confirmations
func (r *StatsRepository) CountMeToos(ctx context.Context) (int64, error) {
	return r.countOne(ctx, squirrel.Select("COUNT(*)").From("me_too").PlaceholderFormat(squirrel.Dollar), "confirmations")
}

// CountActiveAds returns the number of currently active advertisements
func (r *StatsRepository) CountActiveAds(ctx context.Context) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("advertisements").
		Where(squirrel.Eq{"is_active": true}).
		PlaceholderFormat(squirrel.Dollar)
	return r.countOne(ctx, query, "active advertisements")
}

// SumAmountLost totals the reported monetary damage
func (r *StatsRepository) SumAmountLost(ctx context.Context) (decimal.Decimal, error) {
	query := squirrel.Select("COALESCE(SUM(amount_lost), 0)").
		From("scam_reports").
		Where(squirrel.Eq{"money_involved": true}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("error building SQL: %w", err)
	}

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error summing amount lost: %w", err)
	}

	return total, nil
}

// ReportsByCategory groups report counts by category, largest first
func (r *StatsRepository) ReportsByCategory(ctx context.Context, limit int) ([]CategoryTotal, error) {
	query := squirrel.Select("category", "COUNT(*) AS cnt").
		From("scam_reports").
		GroupBy("category").
		OrderBy("cnt DESC").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping reports by category: %w", err)
	}
	defer rows.Close()

	totals := []CategoryTotal{}
	for rows.Next() {
		var t CategoryTotal
		if err := rows.Scan(&t.Category, &t.Count); err != nil {
			return nil, fmt.Errorf("error scanning category row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return totals, nil
}

// ReportsByStatus groups report counts by moderation status
func (r *StatsRepository) ReportsByStatus(ctx context.Context) ([]StatusTotal, error) {
	query := squirrel.Select("status", "COUNT(*) AS cnt").
		From("scam_reports").
		GroupBy("status").
		OrderBy("cnt DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping reports by status: %w", err)
	}
	defer rows.Close()

	totals := []StatusTotal{}
	for rows.Next() {
		var t StatusTotal
		if err := rows.Scan(&t.Status, &t.Count); err != nil {
			return nil, fmt.Errorf("error scanning status row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status rows: %w", err)
	}

	return totals, nil
}

// ReportsByMonth groups submission counts by calendar month for the last
// twelve months
func (r *StatsRepository) ReportsByMonth(ctx context.Context) ([]MonthTotal, error) {
	sql := `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*)
		FROM scam_reports
		WHERE created_at >= date_trunc('month', NOW()) - INTERVAL '11 months'
		GROUP BY 1
		ORDER BY 1
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("error grouping reports by month: %w", err)
	}
	defer rows.Close()

	totals := []MonthTotal{}
	for rows.Next() {
		var t MonthTotal
		if err := rows.Scan(&t.Month, &t.Count); err != nil {
			return nil, fmt.Errorf("error scanning month row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month rows: %w", err)
	}

	return totals, nil
}

func (r *StatsRepository) countOne(ctx context.Context, query squirrel.SelectBuilder, what string) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting %s: %w", what, err)
	}

	return count, nil
}
