package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScamReport defines the scam report model based on the 'scam_reports' table
type ScamReport struct {
	ID              int64            `json:"id" db:"id" example:"1"`
	UserID          *int64           `json:"userId,omitempty" db:"user_id"` // nullable: reports survive account removal
	Category        string           `json:"category" db:"category" example:"phishing"`
	Title           string           `json:"title" db:"title" example:"Fake bank SMS asking for card details"`
	Description     string           `json:"description" db:"description"`
	ScammerName     string           `json:"scammerName" db:"scammer_name" example:"QuickCash Loans"`
	IncidentDate    *time.Time       `json:"incidentDate,omitempty" db:"incident_date"`
	Location        string           `json:"location" db:"location" example:"Istanbul"`
	MoneyInvolved   bool             `json:"moneyInvolved" db:"money_involved" example:"true"`
	AmountLost      *decimal.Decimal `json:"amountLost,omitempty" db:"amount_lost"`
	EvidenceURL     *string          `json:"evidenceUrl,omitempty" db:"evidence_url"`
	Anonymous       bool             `json:"anonymous" db:"anonymous" example:"false"`
	CommentsAllowed bool             `json:"commentsAllowed" db:"comments_allowed" example:"true"`
	Status          ReportStatus     `json:"status" db:"status" example:"PENDING"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`

	Owner *User `json:"owner,omitempty"` // relation, no db tag
}

// ReportCategories is the accepted category set for submissions
var ReportCategories = []string{
	"phishing",
	"investment",
	"romance",
	"online-shopping",
	"identity-theft",
	"employment",
	"lottery",
	"tech-support",
	"other",
}

// IsValidReportCategory reports whether the category is accepted
func IsValidReportCategory(category string) bool {
	for _, c := range ReportCategories {
		if c == category {
			return true
		}
	}
	return false
}
