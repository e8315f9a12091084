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

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role_type",
	"email_verified", "is_active", "last_login_at", "created_at", "updated_at",
}

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the model
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type", "email_verified", "is_active").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.EmailVerified, user.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, pred interface{}) (*models.User, error) {
	query := squirrel.Select(userColumns...).
		From("users").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.RoleType, &user.EmailVerified, &user.IsActive, &user.LastLoginAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return &user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return count > 0, nil
}

// UpdateProfile updates a user's name fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error {
	query := squirrel.Update("users").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execExpectingRow(ctx, query, apperrors.ErrUserNotFound, "error updating profile")
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	query := squirrel.Update("users").
		Set("password", hashedPassword).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execExpectingRow(ctx, query, apperrors.ErrUserNotFound, "error updating password")
}

// UpdateLastLogin stamps the user's last successful login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := squirrel.Update("users").
		Set("last_login_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execExpectingRow(ctx, query, apperrors.ErrUserNotFound, "error updating last login")
}

// SetEmailVerified marks a user's email address as verified
func (r *UserRepository) SetEmailVerified(ctx context.Context, userID int64) error {
	query := squirrel.Update("users").
		Set("email_verified", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execExpectingRow(ctx, query, apperrors.ErrUserNotFound, "error verifying email")
}

// SetActive toggles whether the account may log in
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	query := squirrel.Update("users").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	return r.execExpectingRow(ctx, query, apperrors.ErrUserNotFound, "error updating account state")
}

// List retrieves users for the admin panel with pagination
func (r *UserRepository) List(ctx context.Context, search string, offset uint64, limit int) ([]models.User, int64, error) {
	base := squirrel.Select(append(userColumns, "COUNT(*) OVER() AS total_count")...).
		From("users").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		base = base.Where(squirrel.Or{
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
		})
	}

	query := base.OrderBy("created_at DESC").Offset(offset).Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	var total int64
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
			&user.RoleType, &user.EmailVerified, &user.IsActive, &user.LastLoginAt,
			&user.CreatedAt, &user.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, total, nil
}

func (r *UserRepository) execExpectingRow(ctx context.Context, query squirrel.UpdateBuilder, notFound error, errMsg string) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", errMsg, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound
	}

	return nil
}
