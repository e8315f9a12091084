package models

import (
	"time"
)

// Comment defines the comment model based on the 'comments' table
type Comment struct {
	ID        int64         `json:"id" db:"id" example:"1"`
	ReportID  int64         `json:"reportId" db:"report_id" example:"42"`
	UserID    int64         `json:"userId" db:"user_id" example:"7"`
	Body      string        `json:"body" db:"body" example:"The same number contacted me last week."`
	Status    CommentStatus `json:"status" db:"status" example:"PENDING"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at"`

	Author *User `json:"author,omitempty"` // relation, no db tag
}
