package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

func reportOwnedBy(userID int64) *repositories.ReportWithCounts {
	return &repositories.ReportWithCounts{
		Report: models.ScamReport{
			ID:     1,
			UserID: &userID,
			Title:  "Fake bank SMS",
			Status: models.ReportStatusVerified,
		},
	}
}

func TestMeTooService_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("first toggle confirms and notifies the owner", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return reportOwnedBy(7), nil
			},
		}
		meToos := &mockMeTooStore{
			insertFunc: func(ctx context.Context, reportID, userID int64) (bool, error) {
				return true, nil
			},
			countByReportFunc: func(ctx context.Context, reportID int64) (int64, error) {
				return 4, nil
			},
		}
		notifications := &mockNotificationStore{}
		broadcaster := &mockBroadcaster{}
		service := NewMeTooService(meToos, reports, notifications, broadcaster, zerolog.Nop())

		result, err := service.Toggle(ctx, 1, 42)

		require.NoError(t, err)
		assert.True(t, result.Confirmed)
		assert.Equal(t, int64(4), result.Count)

		require.Len(t, notifications.created, 1)
		assert.Equal(t, int64(7), notifications.created[0].UserID)
		assert.Equal(t, models.NotificationMeTooReceived, notifications.created[0].Type)

		assert.Len(t, broadcaster.named(websocket.EventMeTooUpdated), 1)
	})

	t.Run("second toggle removes the confirmation", func(t *testing.T) {
		deleted := false
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return reportOwnedBy(7), nil
			},
		}
		meToos := &mockMeTooStore{
			insertFunc: func(ctx context.Context, reportID, userID int64) (bool, error) {
				// Pair already exists, the unique constraint absorbed the insert
				return false, nil
			},
			deleteFunc: func(ctx context.Context, reportID, userID int64) (bool, error) {
				deleted = true
				return true, nil
			},
			countByReportFunc: func(ctx context.Context, reportID int64) (int64, error) {
				return 3, nil
			},
		}
		notifications := &mockNotificationStore{}
		service := NewMeTooService(meToos, reports, notifications, &mockBroadcaster{}, zerolog.Nop())

		result, err := service.Toggle(ctx, 1, 42)

		require.NoError(t, err)
		assert.False(t, result.Confirmed)
		assert.Equal(t, int64(3), result.Count)
		assert.True(t, deleted)
		assert.Empty(t, notifications.created, "removals must not notify")
	})

	t.Run("confirming your own report does not notify", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return reportOwnedBy(42), nil
			},
		}
		meToos := &mockMeTooStore{
			insertFunc: func(ctx context.Context, reportID, userID int64) (bool, error) {
				return true, nil
			},
			countByReportFunc: func(ctx context.Context, reportID int64) (int64, error) {
				return 1, nil
			},
		}
		notifications := &mockNotificationStore{}
		service := NewMeTooService(meToos, reports, notifications, &mockBroadcaster{}, zerolog.Nop())

		result, err := service.Toggle(ctx, 1, 42)

		require.NoError(t, err)
		assert.True(t, result.Confirmed)
		assert.Empty(t, notifications.created)
	})

	t.Run("unknown report surfaces not found", func(t *testing.T) {
		reports := &mockReportStore{
			getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
				return nil, apperrors.ErrReportNotFound
			},
		}
		service := NewMeTooService(&mockMeTooStore{}, reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

		_, err := service.Toggle(ctx, 99, 42)

		assert.ErrorIs(t, err, apperrors.ErrReportNotFound)
	})
}

func TestMeTooService_Status(t *testing.T) {
	ctx := context.Background()

	reports := &mockReportStore{
		getByIDFunc: func(ctx context.Context, id int64) (*repositories.ReportWithCounts, error) {
			return reportOwnedBy(7), nil
		},
	}
	meToos := &mockMeTooStore{
		existsFunc: func(ctx context.Context, reportID, userID int64) (bool, error) {
			return true, nil
		},
		countByReportFunc: func(ctx context.Context, reportID int64) (int64, error) {
			return 12, nil
		},
	}
	service := NewMeTooService(meToos, reports, &mockNotificationStore{}, &mockBroadcaster{}, zerolog.Nop())

	result, err := service.Status(ctx, 1, 42)

	require.NoError(t, err)
	assert.True(t, result.Confirmed)
	assert.Equal(t, int64(12), result.Count)
}
