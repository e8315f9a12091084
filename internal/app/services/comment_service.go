package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/helpers"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

// CommentStore is the persistence surface the comment service needs
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByReport(ctx context.Context, reportID int64, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error)
	ListByStatus(ctx context.Context, status models.CommentStatus, offset uint64, limit int) ([]models.Comment, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.CommentStatus) error
	BulkUpdateStatus(ctx context.Context, ids []int64, status models.CommentStatus) error
	Delete(ctx context.Context, id int64) error
}

// CommentService handles comment submission and moderation
type CommentService struct {
	commentRepo      CommentStore
	reportRepo       ReportStore
	notificationRepo NotificationStore
	broadcaster      EventBroadcaster
	logger           zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(
	commentRepo CommentStore,
	reportRepo ReportStore,
	notificationRepo NotificationStore,
	broadcaster EventBroadcaster,
	logger zerolog.Logger,
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		reportRepo:       reportRepo,
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// Create submits a comment on a report. New comments start PENDING and
// stay invisible until approved.
func (s *CommentService) Create(ctx context.Context, reportID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	rc, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if !rc.Report.CommentsAllowed {
		return nil, apperrors.ErrCommentsNotAllowed
	}

	comment := &models.Comment{
		ReportID: reportID,
		UserID:   userID,
		Body:     req.Body,
		Status:   models.CommentStatusPending,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("commentID", comment.ID).Int64("reportID", reportID).
		Int64("userID", userID).Msg("Comment submitted")

	resp := dto.CommentToResponse(comment)
	return &resp, nil
}

// ListApproved returns the approved comments of a report
func (s *CommentService) ListApproved(ctx context.Context, reportID int64, page, size int) (*dto.CommentListResponse, error) {
	// Confirm the report exists so a bogus ID reads as 404, not an
	// empty list
	if _, err := s.reportRepo.GetByID(ctx, reportID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	comments, total, err := s.commentRepo.ListByReport(ctx, reportID, models.CommentStatusApproved, offset, limit)
	if err != nil {
		return nil, err
	}
	return buildCommentList(comments, total, page, limit), nil
}

// ListModerationQueue returns comments in a given status across all
// reports, for the admin panel
func (s *CommentService) ListModerationQueue(ctx context.Context, status models.CommentStatus, page, size int) (*dto.CommentListResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidCommentStatus
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	comments, total, err := s.commentRepo.ListByStatus(ctx, status, offset, limit)
	if err != nil {
		return nil, err
	}
	return buildCommentList(comments, total, page, limit), nil
}

// UpdateStatus moderates a single comment and notifies its author on
// approval
func (s *CommentService) UpdateStatus(ctx context.Context, commentID int64, status models.CommentStatus) (*dto.CommentResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidCommentStatus
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.commentRepo.UpdateStatus(ctx, commentID, status); err != nil {
		return nil, err
	}
	comment.Status = status

	s.afterModeration(ctx, []*models.Comment{comment}, status)

	resp := dto.CommentToResponse(comment)
	return &resp, nil
}

// BulkUpdateStatus moderates a batch of comments atomically
func (s *CommentService) BulkUpdateStatus(ctx context.Context, req *dto.BulkCommentStatusRequest) error {
	if !req.Status.IsValid() {
		return apperrors.ErrInvalidCommentStatus
	}

	// Load up front so approvals can notify authors afterwards
	comments := make([]*models.Comment, 0, len(req.CommentIDs))
	for _, id := range req.CommentIDs {
		comment, err := s.commentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		comments = append(comments, comment)
	}

	if err := s.commentRepo.BulkUpdateStatus(ctx, req.CommentIDs, req.Status); err != nil {
		return err
	}

	s.logger.Info().Int("count", len(req.CommentIDs)).Str("status", string(req.Status)).
		Msg("Comments moderated in bulk")

	s.afterModeration(ctx, comments, req.Status)
	return nil
}

// Delete removes a comment. Authors may delete their own, admins any.
func (s *CommentService) Delete(ctx context.Context, commentID, userID int64, isAdmin bool) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !isAdmin && comment.UserID != userID {
		return apperrors.NewForbiddenError("only the comment author can delete it")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	s.broadcaster.Broadcast(websocket.EventCommentsUpdated, map[string]interface{}{
		"reportId": comment.ReportID,
	})
	return nil
}

func (s *CommentService) afterModeration(ctx context.Context, comments []*models.Comment, status models.CommentStatus) {
	seenReports := map[int64]bool{}
	for _, comment := range comments {
		if status == models.CommentStatusApproved {
			n := &models.Notification{
				UserID:    comment.UserID,
				Type:      models.NotificationCommentApproved,
				Message:   "Your comment was approved",
				RelatedID: &comment.ReportID,
			}
			if err := s.notificationRepo.Create(ctx, n); err != nil {
				s.logger.Warn().Err(err).Int64("commentID", comment.ID).
					Msg("Failed to create approval notification")
			}
		}
		if !seenReports[comment.ReportID] {
			seenReports[comment.ReportID] = true
			s.broadcaster.Broadcast(websocket.EventCommentsUpdated, map[string]interface{}{
				"reportId": comment.ReportID,
			})
		}
	}
}

func buildCommentList(comments []models.Comment, total int64, page, limit int) *dto.CommentListResponse {
	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, dto.CommentToResponse(&comments[i]))
	}
	return &dto.CommentListResponse{
		Comments:   out,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}
}

var _ CommentStore = (*repositories.CommentRepository)(nil)
