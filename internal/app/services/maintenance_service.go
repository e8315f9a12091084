package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/config"
	"github.com/scamwatch/backend/internal/db"
	"github.com/scamwatch/backend/internal/seed"
)

// MaintenanceService resets demo deployments back to a clean state.
type MaintenanceService struct {
	pool   *pgxpool.Pool
	cfg    *config.Config
	logger zerolog.Logger
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(pool *pgxpool.Pool, cfg *config.Config, logger zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{
		pool:   pool,
		cfg:    cfg,
		logger: logger,
	}
}

// ResetDemoData wipes all user-generated rows and non-admin accounts,
// then reseeds the administrator. Content pages survive the reset.
func (s *MaintenanceService) ResetDemoData(ctx context.Context) error {
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			"TRUNCATE scam_reports, comments, me_too, notifications, advertisements RESTART IDENTITY CASCADE"); err != nil {
			return fmt.Errorf("failed to truncate demo tables: %w", err)
		}

		// Cascades drop the remaining tokens of removed accounts.
		if _, err := tx.Exec(ctx,
			"DELETE FROM users WHERE role_type <> 'ADMIN'"); err != nil {
			return fmt.Errorf("failed to remove demo accounts: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := seed.EnsureAdmin(ctx, s.pool, s.cfg, s.logger); err != nil {
		return err
	}

	s.logger.Info().Msg("Demo data reset")
	return nil
}
