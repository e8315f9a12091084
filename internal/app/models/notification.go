package models

import (
	"time"
)

// Notification defines the notification model based on the 'notifications' table
type Notification struct {
	ID        int64            `json:"id" db:"id"`
	UserID    int64            `json:"userId" db:"user_id"`
	Type      NotificationType `json:"type" db:"type" example:"COMMENT_APPROVED"`
	Message   string           `json:"message" db:"message"`
	RelatedID *int64           `json:"relatedId,omitempty" db:"related_id"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}
