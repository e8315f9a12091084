package dto

import (
	"time"

	"github.com/scamwatch/backend/internal/app/models"
)

// NotificationResponse is the projection of a user notification
type NotificationResponse struct {
	ID        int64                   `json:"id" example:"1"`
	Type      models.NotificationType `json:"type" example:"COMMENT_APPROVED"`
	Message   string                  `json:"message"`
	RelatedID *int64                  `json:"relatedId,omitempty"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
}

// NotificationToResponse maps a notification model to its projection
func NotificationToResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationListResponse is a paginated notification listing with the
// caller's unread total
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount" example:"3"`
	Pagination    PaginationInfo         `json:"pagination"`
}
