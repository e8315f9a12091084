package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

func validCreateReportRequest() *dto.CreateReportRequest {
	return &dto.CreateReportRequest{
		Category:    "phishing",
		Title:       "Fake bank SMS asking for card details",
		Description: "Received an SMS claiming my account was frozen and asking for card details.",
		ScammerName: "QuickCash",
	}
}

func TestReportService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("new reports start pending and broadcast", func(t *testing.T) {
		var created *models.ScamReport
		reports := &mockReportStore{
			createFunc: func(ctx context.Context, report *models.ScamReport) error {
				report.ID = 1
				created = report
				return nil
			},
		}
		broadcaster := &mockBroadcaster{}
		service := NewReportService(reports, &mockNotificationStore{}, broadcaster, zerolog.Nop())

		resp, err := service.Create(ctx, 42, validCreateReportRequest())

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, models.ReportStatusPending, created.Status)
		assert.True(t, created.CommentsAllowed, "comments default to allowed")
		assert.Equal(t, models.ReportStatusPending, resp.Status)
		assert.Len(t, broadcaster.named(websocket.EventNewReport), 1)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		service := NewReportService(&mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		req := validCreateReportRequest()
		req.Category = "not-a-category"
		_, err := service.Create(ctx, 42, req)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("money involved requires an amount", func(t *testing.T) {
		service := NewReportService(&mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		req := validCreateReportRequest()
		req.MoneyInvolved = true
		_, err := service.Create(ctx, 42, req)

		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("amount is dropped when no money was involved", func(t *testing.T) {
		var created *models.ScamReport
		reports := &mockReportStore{
			createFunc: func(ctx context.Context, report *models.ScamReport) error {
				created = report
				return nil
			},
		}
		service := NewReportService(reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		amount := decimal.NewFromInt(500)
		req := validCreateReportRequest()
		req.AmountLost = &amount
		_, err := service.Create(ctx, 42, req)

		require.NoError(t, err)
		assert.Nil(t, created.AmountLost)
	})
}

func TestReportService_Update(t *testing.T) {
	ctx := context.Background()

	pendingReport := func(owner int64) *repositories.ReportWithCounts {
		return &repositories.ReportWithCounts{
			Report: models.ScamReport{ID: 1, UserID: &owner, Status: models.ReportStatusPending},
		}
	}

	validUpdate := &dto.UpdateReportRequest{
		Category:    "phishing",
		Title:       "Updated title for the report",
		Description: "Updated description with enough detail to pass validation.",
		ScammerName: "QuickCash",
	}

	t.Run("non-owners cannot edit", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return pendingReport(7), nil
			},
		}
		service := NewReportService(reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.Update(ctx, 1, 42, false, validUpdate)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("owners cannot edit after review started", func(t *testing.T) {
		verified := pendingReport(42)
		verified.Report.Status = models.ReportStatusVerified
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return verified, nil
			},
		}
		service := NewReportService(reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.Update(ctx, 1, 42, false, validUpdate)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admins can edit regardless of status", func(t *testing.T) {
		verified := pendingReport(7)
		verified.Report.Status = models.ReportStatusVerified
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return verified, nil
			},
			updateFunc: func(ctx context.Context, report *models.ScamReport) error {
				return nil
			},
		}
		service := NewReportService(reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.Update(ctx, 1, 42, true, validUpdate)

		assert.NoError(t, err)
	})
}

func TestReportService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	owner := int64(7)

	t.Run("status change notifies the owner and broadcasts", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return &repositories.ReportWithCounts{
					Report: models.ScamReport{ID: 1, UserID: &owner, Title: "Fake SMS", Status: models.ReportStatusPending},
				}, nil
			},
			updateStatusFunc: func(ctx context.Context, id int64, status models.ReportStatus) error {
				return nil
			},
		}
		notifications := &mockNotificationStore{}
		broadcaster := &mockBroadcaster{}
		service := NewReportService(reports, notifications, broadcaster, zerolog.Nop())

		_, err := service.UpdateStatus(ctx, 1, models.ReportStatusVerified)

		require.NoError(t, err)
		require.Len(t, notifications.created, 1)
		assert.Equal(t, owner, notifications.created[0].UserID)
		assert.Equal(t, models.NotificationReportStatusChanged, notifications.created[0].Type)
		assert.Len(t, broadcaster.named(websocket.EventReportStatusChanged), 1)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		service := NewReportService(&mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.UpdateStatus(ctx, 1, models.ReportStatus("BOGUS"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidReportStatus)
	})
}

func TestReportService_Delete(t *testing.T) {
	ctx := context.Background()
	owner := int64(42)

	reports := &mockReportStore{
		getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
			return &repositories.ReportWithCounts{
				Report: models.ScamReport{ID: 1, UserID: &owner},
			}, nil
		},
		deleteFunc: func(ctx context.Context, id int64) error {
			return nil
		},
	}
	service := NewReportService(reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

	t.Run("owner can delete", func(t *testing.T) {
		assert.NoError(t, service.Delete(ctx, 1, 42, false))
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, service.Delete(ctx, 1, 99, false), apperrors.ErrPermissionDenied)
	})

	t.Run("admin can delete any", func(t *testing.T) {
		assert.NoError(t, service.Delete(ctx, 1, 99, true))
	})
}

func TestReportService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown status filter is rejected", func(t *testing.T) {
		service := NewReportService(&mockReportStore{}, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.List(ctx, dto.ReportFilterRequest{Status: "BOGUS"}, 1, 10)

		assert.ErrorIs(t, err, apperrors.ErrInvalidReportStatus)
	})

	t.Run("filters pass through to the store", func(t *testing.T) {
		var gotFilter repositories.ReportFilter
		reports := &mockReportStore{
			listFunc: func(ctx context.Context, filter repositories.ReportFilter, offset uint64, limit int) ([]repositories.ReportWithCounts, int64, error) {
				gotFilter = filter
				return nil, 0, nil
			},
		}
		service := NewReportService(reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		resp, err := service.List(ctx, dto.ReportFilterRequest{Category: "romance", Search: "wire", SortBy: "most-confirmed"}, 1, 10)

		require.NoError(t, err)
		assert.Equal(t, "romance", gotFilter.Category)
		assert.Equal(t, "wire", gotFilter.Search)
		assert.Equal(t, "most-confirmed", gotFilter.SortBy)
		assert.Empty(t, resp.Reports)
	})
}
