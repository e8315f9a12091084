package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/pdf"
)

// Exports are capped rather than paginated, one document per request
const exportRowLimit = 500

// StatsProvider supplies the dashboard figures for the stats export
type StatsProvider interface {
	AdminStats(ctx context.Context) (*dto.AdminStatsResponse, error)
}

// ExportService renders report listings and dashboard figures as PDF
// documents
type ExportService struct {
	reportRepo   ReportStore
	statsService StatsProvider
	logger       zerolog.Logger
}

// NewExportService creates a new ExportService
func NewExportService(reportRepo ReportStore, statsService StatsProvider, logger zerolog.Logger) *ExportService {
	return &ExportService{
		reportRepo:   reportRepo,
		statsService: statsService,
		logger:       logger,
	}
}

// ExportReports renders the filtered report listing as a PDF and
// returns it base64 encoded
func (s *ExportService) ExportReports(ctx context.Context, filter dto.ReportFilterRequest) (*dto.ExportResponse, error) {
	reports, _, err := s.reportRepo.List(ctx, repositories.ReportFilter{
		Category: filter.Category,
		Status:   filter.Status,
		Search:   filter.Search,
		SortBy:   filter.SortBy,
	}, 0, exportRowLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	table := pdf.Table{
		Title:   fmt.Sprintf("Scam Reports - %s", now.Format("2006-01-02")),
		Headers: []string{"ID", "Category", "Title", "Scammer", "Status", "Confirmations", "Amount Lost", "Submitted"},
		Widths:  []float64{12, 30, 70, 45, 28, 26, 28, 28},
	}
	for i := range reports {
		r := &reports[i].Report
		amount := ""
		if r.AmountLost != nil {
			amount = r.AmountLost.StringFixed(2)
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.Category,
			r.Title,
			r.ScammerName,
			string(r.Status),
			fmt.Sprintf("%d", reports[i].MeTooCount),
			amount,
			r.CreatedAt.Format("2006-01-02"),
		})
	}

	data, err := pdf.Render(table)
	if err != nil {
		return nil, fmt.Errorf("error rendering PDF: %w", err)
	}

	s.logger.Info().Int("rows", len(table.Rows)).Msg("Report export generated")

	return &dto.ExportResponse{
		FileName:    fmt.Sprintf("scam-reports-%s.pdf", now.Format("2006-01-02")),
		ContentType: "application/pdf",
		Base64Data:  base64.StdEncoding.EncodeToString(data),
	}, nil
}

// ExportStats renders the admin dashboard figures as a PDF and returns
// it base64 encoded
func (s *ExportService) ExportStats(ctx context.Context) (*dto.ExportResponse, error) {
	stats, err := s.statsService.AdminStats(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	table := pdf.Table{
		Title:   fmt.Sprintf("Platform Statistics - %s", now.Format("2006-01-02")),
		Headers: []string{"Metric", "Value"},
		Widths:  []float64{120, 80},
		Rows: [][]string{
			{"Total reports", fmt.Sprintf("%d", stats.TotalReports)},
			{"Pending reports", fmt.Sprintf("%d", stats.PendingReports)},
			{"Total users", fmt.Sprintf("%d", stats.TotalUsers)},
			{"Total comments", fmt.Sprintf("%d", stats.TotalComments)},
			{"Pending comments", fmt.Sprintf("%d", stats.PendingComments)},
			{"Total confirmations", fmt.Sprintf("%d", stats.TotalMeToos)},
			{"Active advertisements", fmt.Sprintf("%d", stats.ActiveAds)},
			{"Total amount lost", stats.TotalAmountLost},
		},
	}
	for _, c := range stats.ByStatus {
		table.Rows = append(table.Rows, []string{fmt.Sprintf("Reports %s", c.Status), fmt.Sprintf("%d", c.Count)})
	}
	for _, c := range stats.ByCategory {
		table.Rows = append(table.Rows, []string{fmt.Sprintf("Category %s", c.Category), fmt.Sprintf("%d", c.Count)})
	}
	for _, c := range stats.ByMonth {
		table.Rows = append(table.Rows, []string{fmt.Sprintf("Reports in %s", c.Month), fmt.Sprintf("%d", c.Count)})
	}

	data, err := pdf.Render(table)
	if err != nil {
		return nil, fmt.Errorf("error rendering PDF: %w", err)
	}

	s.logger.Info().Int("rows", len(table.Rows)).Msg("Stats export generated")

	return &dto.ExportResponse{
		FileName:    fmt.Sprintf("platform-stats-%s.pdf", now.Format("2006-01-02")),
		ContentType: "application/pdf",
		Base64Data:  base64.StdEncoding.EncodeToString(data),
	}, nil
}

var _ StatsProvider = (*StatsService)(nil)
