package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
)

// StatsStore runs the aggregate queries behind the dashboards
type StatsStore interface {
	CountReports(ctx context.Context, status models.ReportStatus) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountComments(ctx context.Context, status models.CommentStatus) (int64, error)
	CountMeToos(ctx context.Context) (int64, error)
	CountActiveAds(ctx context.Context) (int64, error)
	SumAmountLost(ctx context.Context) (decimal.Decimal, error)
	ReportsByCategory(ctx context.Context, limit int) ([]repositories.CategoryTotal, error)
	ReportsByStatus(ctx context.Context) ([]repositories.StatusTotal, error)
	ReportsByMonth(ctx context.Context) ([]repositories.MonthTotal, error)
}

// StatsService assembles the public landing figures and the admin dashboard
type StatsService struct {
	statsRepo StatsStore
	logger    zerolog.Logger
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo StatsStore, logger zerolog.Logger) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		logger:    logger,
	}
}

// PublicStats returns the headline figures for the landing page
func (s *StatsService) PublicStats(ctx context.Context) (*dto.PublicStatsResponse, error) {
	total, err := s.statsRepo.CountReports(ctx, "")
	if err != nil {
		return nil, err
	}
	verified, err := s.statsRepo.CountReports(ctx, models.ReportStatusVerified)
	if err != nil {
		return nil, err
	}
	meToos, err := s.statsRepo.CountMeToos(ctx)
	if err != nil {
		return nil, err
	}
	amountLost, err := s.statsRepo.SumAmountLost(ctx)
	if err != nil {
		return nil, err
	}
	topCategories, err := s.statsRepo.ReportsByCategory(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &dto.PublicStatsResponse{
		TotalReports:    total,
		VerifiedReports: verified,
		TotalMeToos:     meToos,
		TotalAmountLost: amountLost.StringFixed(2),
		TopCategories:   categoryCounts(topCategories),
	}, nil
}

// AdminStats returns the full dashboard figure set
func (s *StatsService) AdminStats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	totalReports, err := s.statsRepo.CountReports(ctx, "")
	if err != nil {
		return nil, err
	}
	pendingReports, err := s.statsRepo.CountReports(ctx, models.ReportStatusPending)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.statsRepo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	totalComments, err := s.statsRepo.CountComments(ctx, "")
	if err != nil {
		return nil, err
	}
	pendingComments, err := s.statsRepo.CountComments(ctx, models.CommentStatusPending)
	if err != nil {
		return nil, err
	}
	meToos, err := s.statsRepo.CountMeToos(ctx)
	if err != nil {
		return nil, err
	}
	activeAds, err := s.statsRepo.CountActiveAds(ctx)
	if err != nil {
		return nil, err
	}
	amountLost, err := s.statsRepo.SumAmountLost(ctx)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.statsRepo.ReportsByCategory(ctx, 0)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.statsRepo.ReportsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byMonth, err := s.statsRepo.ReportsByMonth(ctx)
	if err != nil {
		return nil, err
	}

	statusCounts := make([]dto.StatusCount, 0, len(byStatus))
	for _, t := range byStatus {
		statusCounts = append(statusCounts, dto.StatusCount{Status: t.Status, Count: t.Count})
	}
	monthCounts := make([]dto.MonthlyCount, 0, len(byMonth))
	for _, t := range byMonth {
		monthCounts = append(monthCounts, dto.MonthlyCount{Month: t.Month, Count: t.Count})
	}

	return &dto.AdminStatsResponse{
		TotalReports:    totalReports,
		TotalUsers:      totalUsers,
		TotalComments:   totalComments,
		TotalMeToos:     meToos,
		PendingReports:  pendingReports,
		PendingComments: pendingComments,
		ActiveAds:       activeAds,
		TotalAmountLost: amountLost.StringFixed(2),
		ByCategory:      categoryCounts(byCategory),
		ByStatus:        statusCounts,
		ByMonth:         monthCounts,
	}, nil
}

func categoryCounts(totals []repositories.CategoryTotal) []dto.CategoryCount {
	out := make([]dto.CategoryCount, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryCount{Category: t.Category, Count: t.Count})
	}
	return out
}

var _ StatsStore = (*repositories.StatsRepository)(nil)
