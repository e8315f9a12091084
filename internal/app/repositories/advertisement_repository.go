package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
)

var advertisementColumns = []string{
	"id", "title", "description", "sponsor_name", "sponsor_email",
	"cta_text", "cta_link", "package_months", "price", "start_date",
	"end_date", "is_active", "reminder_30_sent", "reminder_15_sent",
	"created_at", "updated_at",
}

// AdvertisementRepository handles database operations for sponsor ads
type AdvertisementRepository struct {
	db *pgxpool.Pool
}

// NewAdvertisementRepository creates a new AdvertisementRepository
func NewAdvertisementRepository(db *pgxpool.Pool) *AdvertisementRepository {
	return &AdvertisementRepository{db: db}
}

// Create inserts a new advertisement and sets the generated ID on the model
func (r *AdvertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	query := squirrel.Insert("advertisements").
		Columns("title", "description", "sponsor_name", "sponsor_email",
			"cta_text", "cta_link", "package_months", "price",
			"start_date", "end_date", "is_active").
		Values(ad.Title, ad.Description, ad.SponsorName, ad.SponsorEmail,
			ad.CTAText, ad.CTALink, ad.PackageMonths, ad.Price,
			ad.StartDate, ad.EndDate, ad.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating advertisement: %w", err)
	}

	return nil
}

// GetByID retrieves an advertisement by ID
func (r *AdvertisementRepository) GetByID(ctx context.Context, id int64) (*models.Advertisement, error) {
	query := squirrel.Select(advertisementColumns...).
		From("advertisements").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	ad, err := scanAdvertisement(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdvertisementNotFound
		}
		return nil, fmt.Errorf("error getting advertisement: %w", err)
	}

	return ad, nil
}

// List retrieves all advertisements for the admin panel with pagination
func (r *AdvertisementRepository) List(ctx context.Context, offset uint64, limit int) ([]models.Advertisement, int64, error) {
	query := squirrel.Select(append(append([]string{}, advertisementColumns...), "COUNT(*) OVER() AS total_count")...).
		From("advertisements").
		OrderBy("end_date ASC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing advertisements: %w", err)
	}
	defer rows.Close()

	ads := []models.Advertisement{}
	var total int64
	for rows.Next() {
		var ad models.Advertisement
		err := rows.Scan(
			&ad.ID, &ad.Title, &ad.Description, &ad.SponsorName, &ad.SponsorEmail,
			&ad.CTAText, &ad.CTALink, &ad.PackageMonths, &ad.Price, &ad.StartDate,
			&ad.EndDate, &ad.IsActive, &ad.Reminder30Sent, &ad.Reminder15Sent,
			&ad.CreatedAt, &ad.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning advertisement row: %w", err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating advertisement rows: %w", err)
	}

	return ads, total, nil
}

// ListVisible retrieves advertisements currently shown to visitors
func (r *AdvertisementRepository) ListVisible(ctx context.Context, now time.Time) ([]models.Advertisement, error) {
	query := squirrel.Select(advertisementColumns...).
		From("advertisements").
		Where(squirrel.Eq{"is_active": true}).
		Where("start_date <= ?", now).
		Where("end_date >= ?", now).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	return r.listPlain(ctx, query)
}

// Update rewrites the mutable fields of an advertisement
func (r *AdvertisementRepository) Update(ctx context.Context, ad *models.Advertisement) error {
	query := squirrel.Update("advertisements").
		Set("title", ad.Title).
		Set("description", ad.Description).
		Set("sponsor_name", ad.SponsorName).
		Set("sponsor_email", ad.SponsorEmail).
		Set("cta_text", ad.CTAText).
		Set("cta_link", ad.CTALink).
		Set("is_active", ad.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ad.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating advertisement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdvertisementNotFound
	}

	return nil
}

// Delete removes an advertisement
func (r *AdvertisementRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("advertisements").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting advertisement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdvertisementNotFound
	}

	return nil
}

// DeactivateExpired turns off every active advertisement whose end date
// has passed and returns the affected rows.
func (r *AdvertisementRepository) DeactivateExpired(ctx context.Context, now time.Time) ([]models.Advertisement, error) {
	query := squirrel.Update("advertisements").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"is_active": true}).
		Where("end_date < ?", now).
		Suffix("RETURNING " + strings.Join(advertisementColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error deactivating expired advertisements: %w", err)
	}
	defer rows.Close()

	ads := []models.Advertisement{}
	for rows.Next() {
		ad, err := scanAdvertisement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning advertisement row: %w", err)
		}
		ads = append(ads, *ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating advertisement rows: %w", err)
	}

	return ads, nil
}

// ListNeedingReminder retrieves active advertisements ending within the
// given number of days whose reminder flag is still unset.
func (r *AdvertisementRepository) ListNeedingReminder(ctx context.Context, now time.Time, days int) ([]models.Advertisement, error) {
	flagColumn := reminderFlagColumn(days)
	deadline := now.AddDate(0, 0, days)

	query := squirrel.Select(advertisementColumns...).
		From("advertisements").
		Where(squirrel.Eq{"is_active": true, flagColumn: false}).
		Where("end_date >= ?", now).
		Where("end_date <= ?", deadline).
		PlaceholderFormat(squirrel.Dollar)

	return r.listPlain(ctx, query)
}

// MarkReminderSent sets the reminder flag after the email went out.
// Flags are set after sending, so a crash between send and flag can
// repeat an email but never skip one.
func (r *AdvertisementRepository) MarkReminderSent(ctx context.Context, id int64, days int) error {
	query := squirrel.Update("advertisements").
		Set(reminderFlagColumn(days), true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking reminder sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAdvertisementNotFound
	}

	return nil
}

func (r *AdvertisementRepository) listPlain(ctx context.Context, query squirrel.SelectBuilder) ([]models.Advertisement, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing advertisements: %w", err)
	}
	defer rows.Close()

	ads := []models.Advertisement{}
	for rows.Next() {
		ad, err := scanAdvertisement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning advertisement row: %w", err)
		}
		ads = append(ads, *ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating advertisement rows: %w", err)
	}

	return ads, nil
}

func scanAdvertisement(row pgx.Row) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := row.Scan(
		&ad.ID, &ad.Title, &ad.Description, &ad.SponsorName, &ad.SponsorEmail,
		&ad.CTAText, &ad.CTALink, &ad.PackageMonths, &ad.Price, &ad.StartDate,
		&ad.EndDate, &ad.IsActive, &ad.Reminder30Sent, &ad.Reminder15Sent,
		&ad.CreatedAt, &ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func reminderFlagColumn(days int) string {
	if days <= 15 {
		return "reminder_15_sent"
	}
	return "reminder_30_sent"
}
