package models

import (
	"time"
)

// MeToo defines a user's confirmation of a scam report, one row per
// (report, user) pair enforced by a unique constraint.
type MeToo struct {
	ID        int64     `json:"id" db:"id"`
	ReportID  int64     `json:"reportId" db:"report_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
