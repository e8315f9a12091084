package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/helpers"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

// ReportStore is the persistence surface the report service needs
type ReportStore interface {
	Create(ctx context.Context, report *models.ScamReport) error
	GetByID(ctx context.Context, id int64) (*repositories.ReportWithCounts, error)
	List(ctx context.Context, filter repositories.ReportFilter, offset uint64, limit int) ([]repositories.ReportWithCounts, int64, error)
	Update(ctx context.Context, report *models.ScamReport) error
	UpdateStatus(ctx context.Context, id int64, status models.ReportStatus) error
	Delete(ctx context.Context, id int64) error
}

// NotificationStore creates notification rows for other services
type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
}

// EventBroadcaster pushes events to the live feed
type EventBroadcaster interface {
	Broadcast(name string, payload interface{})
	BroadcastAdmins(name string, payload interface{})
}

// ReportService handles scam report submission, listing and moderation
type ReportService struct {
	reportRepo       ReportStore
	notificationRepo NotificationStore
	broadcaster      EventBroadcaster
	logger           zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo ReportStore,
	notificationRepo NotificationStore,
	broadcaster EventBroadcaster,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:       reportRepo,
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// Create submits a new scam report. New reports always start PENDING.
func (s *ReportService) Create(ctx context.Context, userID int64, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if !models.IsValidReportCategory(req.Category) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown category: %s", req.Category))
	}
	if req.MoneyInvolved && req.AmountLost == nil {
		return nil, apperrors.NewBadRequestError("amountLost is required when moneyInvolved is set")
	}

	commentsAllowed := true
	if req.CommentsAllowed != nil {
		commentsAllowed = *req.CommentsAllowed
	}

	report := &models.ScamReport{
		UserID:          &userID,
		Category:        req.Category,
		Title:           req.Title,
		Description:     req.Description,
		ScammerName:     req.ScammerName,
		IncidentDate:    req.IncidentDate,
		Location:        req.Location,
		MoneyInvolved:   req.MoneyInvolved,
		AmountLost:      req.AmountLost,
		EvidenceURL:     req.EvidenceURL,
		Anonymous:       req.Anonymous,
		CommentsAllowed: commentsAllowed,
		Status:          models.ReportStatusPending,
	}
	if !report.MoneyInvolved {
		report.AmountLost = nil
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("reportID", report.ID).Int64("userID", userID).
		Str("category", report.Category).Msg("Report submitted")

	resp := dto.ReportToResponse(report, 0, 0)
	s.broadcaster.Broadcast(websocket.EventNewReport, map[string]interface{}{
		"reportId": report.ID,
		"category": report.Category,
		"title":    report.Title,
	})

	return &resp, nil
}

// GetByID returns a single report with its counters
func (s *ReportService) GetByID(ctx context.Context, id int64) (*dto.ReportResponse, error) {
	rc, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ReportToResponse(&rc.Report, rc.MeTooCount, rc.CommentCount)
	return &resp, nil
}

// List returns reports with filters, search, sorting and pagination
func (s *ReportService) List(ctx context.Context, filter dto.ReportFilterRequest, page, size int) (*dto.ReportListResponse, error) {
	if filter.Status != "" && !models.ReportStatus(filter.Status).IsValid() {
		return nil, apperrors.ErrInvalidReportStatus
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	reports, total, err := s.reportRepo.List(ctx, repositories.ReportFilter{
		Category: filter.Category,
		Status:   filter.Status,
		Search:   filter.Search,
		SortBy:   filter.SortBy,
	}, offset, limit)
	if err != nil {
		return nil, err
	}

	return buildReportList(reports, total, page, limit), nil
}

// ListByUser returns the caller's own reports
func (s *ReportService) ListByUser(ctx context.Context, userID int64, page, size int) (*dto.ReportListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	reports, total, err := s.reportRepo.List(ctx, repositories.ReportFilter{UserID: &userID}, offset, limit)
	if err != nil {
		return nil, err
	}
	return buildReportList(reports, total, page, limit), nil
}

// Update rewrites a report. Only the owner may edit, and only while the
// report is still pending review.
func (s *ReportService) Update(ctx context.Context, reportID, userID int64, isAdmin bool, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	rc, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	report := &rc.Report

	if !isAdmin {
		if report.UserID == nil || *report.UserID != userID {
			return nil, apperrors.NewForbiddenError("only the report owner can edit it")
		}
		if report.Status != models.ReportStatusPending {
			return nil, apperrors.NewForbiddenError("reports can no longer be edited after review started")
		}
	}

	if !models.IsValidReportCategory(req.Category) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown category: %s", req.Category))
	}
	if req.MoneyInvolved && req.AmountLost == nil {
		return nil, apperrors.NewBadRequestError("amountLost is required when moneyInvolved is set")
	}

	report.Category = req.Category
	report.Title = req.Title
	report.Description = req.Description
	report.ScammerName = req.ScammerName
	report.IncidentDate = req.IncidentDate
	report.Location = req.Location
	report.MoneyInvolved = req.MoneyInvolved
	report.AmountLost = req.AmountLost
	report.EvidenceURL = req.EvidenceURL
	report.Anonymous = req.Anonymous
	if req.CommentsAllowed != nil {
		report.CommentsAllowed = *req.CommentsAllowed
	}
	if !report.MoneyInvolved {
		report.AmountLost = nil
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, reportID)
}

// UpdateStatus moves a report through the moderation pipeline and
// notifies the owner
func (s *ReportService) UpdateStatus(ctx context.Context, reportID int64, status models.ReportStatus) (*dto.ReportResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidReportStatus
	}

	rc, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.UpdateStatus(ctx, reportID, status); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("reportID", reportID).
		Str("from", string(rc.Report.Status)).Str("to", string(status)).
		Msg("Report status changed")

	if rc.Report.UserID != nil {
		n := &models.Notification{
			UserID:    *rc.Report.UserID,
			Type:      models.NotificationReportStatusChanged,
			Message:   fmt.Sprintf("Your report %q is now %s", rc.Report.Title, status),
			RelatedID: &reportID,
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			s.logger.Warn().Err(err).Int64("reportID", reportID).Msg("Failed to create status notification")
		}
	}

	s.broadcaster.Broadcast(websocket.EventReportStatusChanged, map[string]interface{}{
		"reportId": reportID,
		"status":   string(status),
	})

	return s.GetByID(ctx, reportID)
}

// Delete removes a report. Owners may delete their own, admins any.
func (s *ReportService) Delete(ctx context.Context, reportID, userID int64, isAdmin bool) error {
	rc, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}
	if !isAdmin && (rc.Report.UserID == nil || *rc.Report.UserID != userID) {
		return apperrors.NewForbiddenError("only the report owner can delete it")
	}

	if err := s.reportRepo.Delete(ctx, reportID); err != nil {
		return err
	}

	s.logger.Info().Int64("reportID", reportID).Int64("userID", userID).Msg("Report deleted")
	return nil
}

func buildReportList(reports []repositories.ReportWithCounts, total int64, page, limit int) *dto.ReportListResponse {
	out := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, dto.ReportToResponse(&reports[i].Report, reports[i].MeTooCount, reports[i].CommentCount))
	}
	return &dto.ReportListResponse{
		Reports:    out,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
}

var _ ReportStore = (*repositories.ReportRepository)(nil)
var _ NotificationStore = (*repositories.NotificationRepository)(nil)
var _ EventBroadcaster = (*websocket.Hub)(nil)
