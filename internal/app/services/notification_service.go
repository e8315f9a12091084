package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/helpers"
)

// NotificationReader is the persistence surface the notification
// service needs
type NotificationReader interface {
	ListByUser(ctx context.Context, userID int64, offset uint64, limit int) ([]models.Notification, int64, error)
	UnreadCount(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// NotificationService lists and acknowledges user notifications
type NotificationService struct {
	notificationRepo NotificationReader
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo NotificationReader, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List returns the caller's notifications with the unread total
func (s *NotificationService) List(ctx context.Context, userID int64, page, size int) (*dto.NotificationListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, dto.NotificationToResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Notifications: out,
		UnreadCount:   unread,
		Pagination:    helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// MarkRead acknowledges a single notification of the caller
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead acknowledges every unread notification of the caller
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

var _ NotificationReader = (*repositories.NotificationRepository)(nil)
