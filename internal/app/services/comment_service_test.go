package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

func commentableReport(allowed bool) *repositories.ReportWithCounts {
	owner := int64(7)
	return &repositories.ReportWithCounts{
		Report: models.ScamReport{
			ID:              1,
			UserID:          &owner,
			Title:           "Fake bank SMS",
			Status:          models.ReportStatusVerified,
			CommentsAllowed: allowed,
		},
	}
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new comments start pending", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return commentableReport(true), nil
			},
		}
		var created *models.Comment
		comments := &mockCommentStore{
			createFunc: func(ctx context.Context, comment *models.Comment) error {
				comment.ID = 10
				created = comment
				return nil
			},
		}
		service := NewCommentService(comments, reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		resp, err := service.Create(ctx, 1, 42, &dto.CreateCommentRequest{Body: "Same scammer contacted me last week."})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, models.CommentStatusPending, created.Status)
		assert.Equal(t, int64(42), created.UserID)
		assert.Equal(t, models.CommentStatusPending, resp.Status)
	})

	t.Run("rejected when the report disables comments", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return commentableReport(false), nil
			},
		}
		service := NewCommentService(&mockCommentStore{}, reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.Create(ctx, 1, 42, &dto.CreateCommentRequest{Body: "Same here."})

		assert.ErrorIs(t, err, apperrors.ErrCommentsNotAllowed)
	})

	t.Run("unknown report surfaces not found", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return nil, apperrors.ErrReportNotFound
			},
		}
		service := NewCommentService(&mockCommentStore{}, reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.Create(ctx, 99, 42, &dto.CreateCommentRequest{Body: "Same here."})

		assert.ErrorIs(t, err, apperrors.ErrReportNotFound)
	})
}

func TestCommentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approval notifies the author and refreshes the thread", func(t *testing.T) {
		comments := &mockCommentStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.Comment, error) {
				return &models.Comment{ID: 10, ReportID: 1, UserID: 42, Status: models.CommentStatusPending}, nil
			},
			updateStatusFunc: func(ctx context.Context, id int64, status models.CommentStatus) error {
				return nil
			},
		}
		notifications := &mockNotificationStore{}
		broadcaster := &mockBroadcaster{}
		service := NewCommentService(comments, &mockReportStore{}, notifications, broadcaster, zerolog.Nop())

		resp, err := service.UpdateStatus(ctx, 10, models.CommentStatusApproved)

		require.NoError(t, err)
		assert.Equal(t, models.CommentStatusApproved, resp.Status)

		require.Len(t, notifications.created, 1)
		assert.Equal(t, int64(42), notifications.created[0].UserID)
		assert.Equal(t, models.NotificationCommentApproved, notifications.created[0].Type)

		assert.Len(t, broadcaster.named(websocket.EventCommentsUpdated), 1)
	})

	t.Run("rejection refreshes the thread without notifying", func(t *testing.T) {
		comments := &mockCommentStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.Comment, error) {
				return &models.Comment{ID: 10, ReportID: 1, UserID: 42, Status: models.CommentStatusPending}, nil
			},
			updateStatusFunc: func(ctx context.Context, id int64, status models.CommentStatus) error {
				return nil
			},
		}
		notifications := &mockNotificationStore{}
		broadcaster := &mockBroadcaster{}
		service := NewCommentService(comments, &mockReportStore{}, notifications, broadcaster, zerolog.Nop())

		_, err := service.UpdateStatus(ctx, 10, models.CommentStatusRejected)

		require.NoError(t, err)
		assert.Empty(t, notifications.created)
		assert.Len(t, broadcaster.named(websocket.EventCommentsUpdated), 1)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		service := NewCommentService(&mockCommentStore{}, &mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.UpdateStatus(ctx, 10, models.CommentStatus("BOGUS"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidCommentStatus)
	})
}

func TestCommentService_BulkUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("approves in one batch and broadcasts once per report", func(t *testing.T) {
		byID := map[int64]*models.Comment{
			10: {ID: 10, ReportID: 1, UserID: 42, Status: models.CommentStatusPending},
			11: {ID: 11, ReportID: 1, UserID: 43, Status: models.CommentStatusPending},
			12: {ID: 12, ReportID: 2, UserID: 44, Status: models.CommentStatusPending},
		}
		var bulkIDs []int64
		comments := &mockCommentStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.Comment, error) {
				c, ok := byID[id]
				if !ok {
					return nil, apperrors.ErrCommentNotFound
				}
				return c, nil
			},
			bulkUpdateStatusFunc: func(ctx context.Context, ids []int64, status models.CommentStatus) error {
				bulkIDs = ids
				return nil
			},
		}
		notifications := &mockNotificationStore{}
		broadcaster := &mockBroadcaster{}
		service := NewCommentService(comments, &mockReportStore{}, notifications, broadcaster, zerolog.Nop())

		err := service.BulkUpdateStatus(ctx, &dto.BulkCommentStatusRequest{
			CommentIDs: []int64{10, 11, 12},
			Status:     models.CommentStatusApproved,
		})

		require.NoError(t, err)
		assert.Equal(t, []int64{10, 11, 12}, bulkIDs)
		assert.Len(t, notifications.created, 3)

		// Comments 10 and 11 share a report, so two events total
		assert.Len(t, broadcaster.named(websocket.EventCommentsUpdated), 2)
	})

	t.Run("unknown status fails before touching the store", func(t *testing.T) {
		service := NewCommentService(&mockCommentStore{}, &mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		err := service.BulkUpdateStatus(ctx, &dto.BulkCommentStatusRequest{
			CommentIDs: []int64{10},
			Status:     models.CommentStatus("BOGUS"),
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCommentStatus)
	})

	t.Run("missing comment aborts the batch", func(t *testing.T) {
		comments := &mockCommentStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.Comment, error) {
				return nil, apperrors.ErrCommentNotFound
			},
		}
		service := NewCommentService(comments, &mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		err := service.BulkUpdateStatus(ctx, &dto.BulkCommentStatusRequest{
			CommentIDs: []int64{99},
			Status:     models.CommentStatusApproved,
		})

		assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)
	})
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()

	comments := &mockCommentStore{
		getByIDFunc: func(ctx context.Context, id int64) (*models.Comment, error) {
			return &models.Comment{ID: 10, ReportID: 1, UserID: 42}, nil
		},
		deleteFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}

	t.Run("author can delete and the thread refreshes", func(t *testing.T) {
		broadcaster := &mockBroadcaster{}
		service := NewCommentService(comments, &mockReportStore{}, &mockNotificationStore{}, broadcaster, zerolog.Nop())

		require.NoError(t, service.Delete(ctx, 10, 42, false))
		assert.Len(t, broadcaster.named(websocket.EventCommentsUpdated), 1)
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		service := NewCommentService(comments, &mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		assert.ErrorIs(t, service.Delete(ctx, 10, 99, false), apperrors.ErrPermissionDenied)
	})

	t.Run("admin can delete any", func(t *testing.T) {
		service := NewCommentService(comments, &mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		assert.NoError(t, service.Delete(ctx, 10, 99, true))
	})
}
