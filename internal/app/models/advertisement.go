package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdPackageMonths is the accepted billing tier set for advertisements
var AdPackageMonths = []int{3, 6, 9, 12}

// IsValidAdPackage reports whether the package duration is a known tier
func IsValidAdPackage(months int) bool {
	for _, m := range AdPackageMonths {
		if m == months {
			return true
		}
	}
	return false
}

// Advertisement defines the sponsor advertisement model based on the
// 'advertisements' table
type Advertisement struct {
	ID             int64           `json:"id" db:"id" example:"1"`
	Title          string          `json:"title" db:"title" example:"Secure Wallet Pro"`
	Description    string          `json:"description" db:"description"`
	SponsorName    string          `json:"sponsorName" db:"sponsor_name" example:"Acme Security Ltd."`
	SponsorEmail   string          `json:"sponsorEmail" db:"sponsor_email" example:"ads@acme.example"`
	CTAText        string          `json:"ctaText" db:"cta_text" example:"Get protected"`
	CTALink        string          `json:"ctaLink" db:"cta_link" example:"https://acme.example"`
	PackageMonths  int             `json:"packageMonths" db:"package_months" example:"6"`
	Price          decimal.Decimal `json:"price" db:"price"`
	StartDate      time.Time       `json:"startDate" db:"start_date"`
	EndDate        time.Time       `json:"endDate" db:"end_date"`
	IsActive       bool            `json:"isActive" db:"is_active" example:"true"`
	Reminder30Sent bool            `json:"reminder30Sent" db:"reminder_30_sent"`
	Reminder15Sent bool            `json:"reminder15Sent" db:"reminder_15_sent"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// CurrentlyVisible reports whether the advertisement should appear in the
// public listing at the given instant.
func (a *Advertisement) CurrentlyVisible(now time.Time) bool {
	return a.IsActive && !now.Before(a.StartDate) && !now.After(a.EndDate)
}
