package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/scamwatch/backend/internal/app/models"
)

// CreateAdvertisementRequest represents the sponsor ad creation payload.
// The price and end date are derived server side from the package tier.
type CreateAdvertisementRequest struct {
	Title         string    `json:"title" binding:"required,min=3,max=200" example:"Secure Wallet Pro"`
	Description   string    `json:"description" binding:"required,min=10,max=2000"`
	SponsorName   string    `json:"sponsorName" binding:"required,min=2,max=200" example:"Acme Security Ltd."`
	SponsorEmail  string    `json:"sponsorEmail" binding:"required,email" example:"ads@acme.example"`
	CTAText       string    `json:"ctaText" binding:"required,max=50" example:"Get protected"`
	CTALink       string    `json:"ctaLink" binding:"required,url" example:"https://acme.example"`
	PackageMonths int       `json:"packageMonths" binding:"required" example:"6"`
	StartDate     time.Time `json:"startDate" binding:"required"`
}

// UpdateAdvertisementRequest updates mutable ad fields
type UpdateAdvertisementRequest struct {
	Title        string `json:"title" binding:"required,min=3,max=200"`
	Description  string `json:"description" binding:"required,min=10,max=2000"`
	SponsorName  string `json:"sponsorName" binding:"required,min=2,max=200"`
	SponsorEmail string `json:"sponsorEmail" binding:"required,email"`
	CTAText      string `json:"ctaText" binding:"required,max=50"`
	CTALink      string `json:"ctaLink" binding:"required,url"`
	IsActive     *bool  `json:"isActive,omitempty"`
}

// AdvertisementResponse is the admin projection of an advertisement
type AdvertisementResponse struct {
	ID             int64           `json:"id" example:"1"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	SponsorName    string          `json:"sponsorName"`
	SponsorEmail   string          `json:"sponsorEmail"`
	CTAText        string          `json:"ctaText"`
	CTALink        string          `json:"ctaLink"`
	PackageMonths  int             `json:"packageMonths" example:"6"`
	Price          decimal.Decimal `json:"price"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	IsActive       bool            `json:"isActive"`
	Reminder30Sent bool            `json:"reminder30Sent"`
	Reminder15Sent bool            `json:"reminder15Sent"`
	DaysRemaining  int             `json:"daysRemaining" example:"45"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// PublicAdvertisementResponse is the trimmed projection shown to visitors
type PublicAdvertisementResponse struct {
	ID          int64  `json:"id" example:"1"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SponsorName string `json:"sponsorName"`
	CTAText     string `json:"ctaText"`
	CTALink     string `json:"ctaLink"`
}

// AdvertisementToResponse maps an ad model to its admin projection
func AdvertisementToResponse(a *models.Advertisement, now time.Time) AdvertisementResponse {
	days := int(a.EndDate.Sub(now).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return AdvertisementResponse{
		ID:             a.ID,
		Title:          a.Title,
		Description:    a.Description,
		SponsorName:    a.SponsorName,
		SponsorEmail:   a.SponsorEmail,
		CTAText:        a.CTAText,
		CTALink:        a.CTALink,
		PackageMonths:  a.PackageMonths,
		Price:          a.Price,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		IsActive:       a.IsActive,
		Reminder30Sent: a.Reminder30Sent,
		Reminder15Sent: a.Reminder15Sent,
		DaysRemaining:  days,
		CreatedAt:      a.CreatedAt,
	}
}

// AdvertisementToPublicResponse maps an ad model to its visitor projection
func AdvertisementToPublicResponse(a *models.Advertisement) PublicAdvertisementResponse {
	return PublicAdvertisementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		SponsorName: a.SponsorName,
		CTAText:     a.CTAText,
		CTALink:     a.CTALink,
	}
}

// AdvertisementListResponse is a paginated ad listing for the admin panel
type AdvertisementListResponse struct {
	Advertisements []AdvertisementResponse `json:"advertisements"`
	Pagination     PaginationInfo          `json:"pagination"`
}

// SweepResultResponse summarizes one expiry sweep run
type SweepResultResponse struct {
	Deactivated   int `json:"deactivated" example:"2"`
	Reminders30   int `json:"reminders30" example:"1"`
	Reminders15   int `json:"reminders15" example:"0"`
	EmailFailures int `json:"emailFailures" example:"0"`
}
