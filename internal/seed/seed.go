// Package seed provisions the baseline data the application expects,
// currently the administrator account.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/config"
	"github.com/scamwatch/backend/internal/pkg/auth"
)

// EnsureAdmin creates the administrator account when it does not exist.
// Credentials come from the environment; with none configured the seed
// is skipped so a fresh deployment never ships a known login.
func EnsureAdmin(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, logger zerolog.Logger) error {
	email := cfg.Admin.Email
	password := cfg.Admin.Password

	if email == "" || password == "" {
		logger.Info().Msg("Admin credentials not configured, skipping admin seed")
		return nil
	}

	var exists bool
	err := pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO users (email, password, first_name, last_name, role_type, is_active, email_verified)
		VALUES ($1, $2, $3, $4, $5, TRUE, TRUE)`,
		email, hashed, "Site", "Admin", models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	logger.Info().Str("email", email).Msg("Seeded admin account")
	return nil
}
