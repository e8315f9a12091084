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
)

// ReportWithCounts bundles a report with its aggregate counters
type ReportWithCounts struct {
	Report       models.ScamReport
	MeTooCount   int64
	CommentCount int64
}

// ReportFilter narrows report listings
type ReportFilter struct {
	Category string
	Status   string
	Search   string
	SortBy   string // newest | oldest | most-confirmed
	UserID   *int64
}

// ReportCandidate is the trimmed projection handed to the similarity helper
type ReportCandidate struct {
	ID          int64
	Title       string
	Description string
}

// ReportRepository handles database operations for scam reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

const (
	meTooCountExpr   = "(SELECT COUNT(*) FROM me_too mt WHERE mt.report_id = sr.id) AS me_too_count"
	commentCountExpr = "(SELECT COUNT(*) FROM comments c WHERE c.report_id = sr.id AND c.status = 'APPROVED') AS comment_count"
)

var reportColumns = []string{
	"sr.id", "sr.user_id", "sr.category", "sr.title", "sr.description",
	"sr.scammer_name", "sr.incident_date", "sr.location", "sr.money_involved",
	"sr.amount_lost", "sr.evidence_url", "sr.anonymous", "sr.comments_allowed",
	"sr.status", "sr.created_at", "sr.updated_at",
	"u.first_name", "u.last_name",
}

// Create inserts a new scam report and sets the generated ID on the model
func (r *ReportRepository) Create(ctx context.Context, report *models.ScamReport) error {
	query := squirrel.Insert("scam_reports").
		Columns("user_id", "category", "title", "description", "scammer_name",
			"incident_date", "location", "money_involved", "amount_lost",
			"evidence_url", "anonymous", "comments_allowed", "status").
		Values(report.UserID, report.Category, report.Title, report.Description,
			report.ScammerName, report.IncidentDate, report.Location,
			report.MoneyInvolved, report.AmountLost, report.EvidenceURL,
			report.Anonymous, report.CommentsAllowed, report.Status).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating report: %w", err)
	}

	return nil
}

// GetByID retrieves a report with its owner and aggregate counters
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*ReportWithCounts, error) {
	cols := append(append([]string{}, reportColumns...), meTooCountExpr, commentCountExpr)
	query := squirrel.Select(cols...).
		From("scam_reports sr").
		LeftJoin("users u ON u.id = sr.user_id").
		Where(squirrel.Eq{"sr.id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	row := r.db.QueryRow(ctx, sql, args...)
	rc, err := scanReportWithCounts(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("error getting report: %w", err)
	}

	return rc, nil
}

// List retrieves reports with filtering, search, sorting and pagination
func (r *ReportRepository) List(ctx context.Context, filter ReportFilter, offset uint64, limit int) ([]ReportWithCounts, int64, error) {
	cols := append(append([]string{}, reportColumns...),
		meTooCountExpr, commentCountExpr, "COUNT(*) OVER() AS total_count")
	base := squirrel.Select(cols...).
		From("scam_reports sr").
		LeftJoin("users u ON u.id = sr.user_id").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Category != "" {
		base = base.Where(squirrel.Eq{"sr.category": filter.Category})
	}
	if filter.Status != "" {
		base = base.Where(squirrel.Eq{"sr.status": filter.Status})
	}
	if filter.UserID != nil {
		base = base.Where(squirrel.Eq{"sr.user_id": *filter.UserID})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"sr.title": pattern},
			squirrel.ILike{"sr.description": pattern},
			squirrel.ILike{"sr.scammer_name": pattern},
		})
	}

	switch filter.SortBy {
	case "oldest":
		base = base.OrderBy("sr.created_at ASC")
	case "most-confirmed":
		base = base.OrderBy("me_too_count DESC", "sr.created_at DESC")
	default:
		base = base.OrderBy("sr.created_at DESC")
	}

	query := base.Offset(offset).Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing reports: %w", err)
	}
	defer rows.Close()

	reports := []ReportWithCounts{}
	var total int64
	for rows.Next() {
		rc, t, err := scanReportRowWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning report row: %w", err)
		}
		total = t
		reports = append(reports, *rc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, total, nil
}

// Update rewrites the mutable fields of a report
func (r *ReportRepository) Update(ctx context.Context, report *models.ScamReport) error {
	query := squirrel.Update("scam_reports").
		Set("category", report.Category).
		Set("title", report.Title).
		Set("description", report.Description).
		Set("scammer_name", report.ScammerName).
		Set("incident_date", report.IncidentDate).
		Set("location", report.Location).
		Set("money_involved", report.MoneyInvolved).
		Set("amount_lost", report.AmountLost).
		Set("evidence_url", report.EvidenceURL).
		Set("anonymous", report.Anonymous).
		Set("comments_allowed", report.CommentsAllowed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": report.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}

	return nil
}

// UpdateStatus moves a report to a new moderation status
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status models.ReportStatus) error {
	query := squirrel.Update("scam_reports").
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
		return fmt.Errorf("error updating report status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}

	return nil
}

// Delete removes a report. Comments and me-too rows cascade at the
// database level.
func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("scam_reports").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrReportNotFound
	}

	return nil
}

// ListCandidates retrieves recent reports in the same category for the
// similarity helper, excluding the report under inspection.
func (r *ReportRepository) ListCandidates(ctx context.Context, category string, excludeID int64, limit int) ([]ReportCandidate, error) {
	query := squirrel.Select("id", "title", "description").
		From("scam_reports").
		Where(squirrel.Eq{"category": category}).
		Where(squirrel.NotEq{"id": excludeID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing candidate reports: %w", err)
	}
	defer rows.Close()

	candidates := []ReportCandidate{}
	for rows.Next() {
		var c ReportCandidate
		if err := rows.Scan(&c.ID, &c.Title, &c.Description); err != nil {
			return nil, fmt.Errorf("error scanning candidate row: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}

	return candidates, nil
}

// GetManyByIDs retrieves reports with counters for a fixed ID set
func (r *ReportRepository) GetManyByIDs(ctx context.Context, ids []int64) ([]ReportWithCounts, error) {
	if len(ids) == 0 {
		return []ReportWithCounts{}, nil
	}

	cols := append(append([]string{}, reportColumns...), meTooCountExpr, commentCountExpr)
	query := squirrel.Select(cols...).
		From("scam_reports sr").
		LeftJoin("users u ON u.id = sr.user_id").
		Where(squirrel.Eq{"sr.id": ids}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error getting reports by IDs: %w", err)
	}
	defer rows.Close()

	reports := []ReportWithCounts{}
	for rows.Next() {
		rc, err := scanReportWithCounts(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning report row: %w", err)
		}
		reports = append(reports, *rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}

func scanReportWithCounts(row pgx.Row) (*ReportWithCounts, error) {
	var rc ReportWithCounts
	var firstName, lastName *string
	err := row.Scan(
		&rc.Report.ID, &rc.Report.UserID, &rc.Report.Category, &rc.Report.Title,
		&rc.Report.Description, &rc.Report.ScammerName, &rc.Report.IncidentDate,
		&rc.Report.Location, &rc.Report.MoneyInvolved, &rc.Report.AmountLost,
		&rc.Report.EvidenceURL, &rc.Report.Anonymous, &rc.Report.CommentsAllowed,
		&rc.Report.Status, &rc.Report.CreatedAt, &rc.Report.UpdatedAt,
		&firstName, &lastName,
		&rc.MeTooCount, &rc.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	attachOwner(&rc.Report, firstName, lastName)
	return &rc, nil
}

func scanReportRowWithTotal(rows pgx.Rows) (*ReportWithCounts, int64, error) {
	var rc ReportWithCounts
	var firstName, lastName *string
	var total int64
	err := rows.Scan(
		&rc.Report.ID, &rc.Report.UserID, &rc.Report.Category, &rc.Report.Title,
		&rc.Report.Description, &rc.Report.ScammerName, &rc.Report.IncidentDate,
		&rc.Report.Location, &rc.Report.MoneyInvolved, &rc.Report.AmountLost,
		&rc.Report.EvidenceURL, &rc.Report.Anonymous, &rc.Report.CommentsAllowed,
		&rc.Report.Status, &rc.Report.CreatedAt, &rc.Report.UpdatedAt,
		&firstName, &lastName,
		&rc.MeTooCount, &rc.CommentCount, &total,
	)
	if err != nil {
		return nil, 0, err
	}
	attachOwner(&rc.Report, firstName, lastName)
	return &rc, total, nil
}

func attachOwner(report *models.ScamReport, firstName, lastName *string) {
	if report.UserID != nil && firstName != nil && lastName != nil {
		report.Owner = &models.User{
			ID:        *report.UserID,
			FirstName: *firstName,
			LastName:  *lastName,
		}
	}
}
