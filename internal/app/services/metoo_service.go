package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

// MeTooStore is the persistence surface the confirmation service needs
type MeTooStore interface {
	Insert(ctx context.Context, reportID, userID int64) (bool, error)
	Delete(ctx context.Context, reportID, userID int64) (bool, error)
	Exists(ctx context.Context, reportID, userID int64) (bool, error)
	CountByReport(ctx context.Context, reportID int64) (int64, error)
}

// MeTooService handles "me too" confirmations on reports
type MeTooService struct {
	meTooRepo        MeTooStore
	reportRepo       ReportStore
	notificationRepo NotificationStore
	broadcaster      EventBroadcaster
	logger           zerolog.Logger
}

// NewMeTooService creates a new MeTooService
func NewMeTooService(
	meTooRepo MeTooStore,
	reportRepo ReportStore,
	notificationRepo NotificationStore,
	broadcaster EventBroadcaster,
	logger zerolog.Logger,
) *MeTooService {
	return &MeTooService{
		meTooRepo:        meTooRepo,
		reportRepo:       reportRepo,
		notificationRepo: notificationRepo,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// Toggle flips the caller's confirmation on a report. The insert relies
// on the unique pair constraint, so two concurrent toggles cannot
// produce duplicate rows.
func (s *MeTooService) Toggle(ctx context.Context, reportID, userID int64) (*dto.MeTooResponse, error) {
	rc, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	inserted, err := s.meTooRepo.Insert(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}

	confirmed := inserted
	if !inserted {
		// Pair already existed, the toggle removes it
		if _, err := s.meTooRepo.Delete(ctx, reportID, userID); err != nil {
			return nil, err
		}
	}

	count, err := s.meTooRepo.CountByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	// Self-confirmations happen, they just don't notify
	if confirmed && rc.Report.UserID != nil && *rc.Report.UserID != userID {
		n := &models.Notification{
			UserID:    *rc.Report.UserID,
			Type:      models.NotificationMeTooReceived,
			Message:   fmt.Sprintf("Someone confirmed your report %q", rc.Report.Title),
			RelatedID: &reportID,
		}
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			s.logger.Warn().Err(err).Int64("reportID", reportID).
				Msg("Failed to create confirmation notification")
		}
	}

	s.broadcaster.Broadcast(websocket.EventMeTooUpdated, map[string]interface{}{
		"reportId": reportID,
		"count":    count,
	})

	return &dto.MeTooResponse{
		ReportID:  reportID,
		Confirmed: confirmed,
		Count:     count,
	}, nil
}

// Status reports whether the caller confirmed a report and the current total
func (s *MeTooService) Status(ctx context.Context, reportID, userID int64) (*dto.MeTooResponse, error) {
	if _, err := s.reportRepo.GetByID(ctx, reportID); err != nil {
		return nil, err
	}

	confirmed, err := s.meTooRepo.Exists(ctx, reportID, userID)
	if err != nil {
		return nil, err
	}
	count, err := s.meTooRepo.CountByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	return &dto.MeTooResponse{
		ReportID:  reportID,
		Confirmed: confirmed,
		Count:     count,
	}, nil
}

var _ MeTooStore = (*repositories.MeTooRepository)(nil)
