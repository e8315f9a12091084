package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/scamwatch/backend/internal/app/models"
)

// CreateReportRequest represents the scam report submission payload
type CreateReportRequest struct {
	Category        string           `json:"category" binding:"required" example:"phishing"`
	Title           string           `json:"title" binding:"required,min=5,max=200" example:"Fake bank SMS asking for card details"`
	Description     string           `json:"description" binding:"required,min=20,max=10000"`
	ScammerName     string           `json:"scammerName" binding:"required,min=2,max=200" example:"QuickCash Loans"`
	IncidentDate    *time.Time       `json:"incidentDate,omitempty"`
	Location        string           `json:"location" binding:"omitempty,max=200" example:"Istanbul"`
	MoneyInvolved   bool             `json:"moneyInvolved" example:"true"`
	AmountLost      *decimal.Decimal `json:"amountLost,omitempty"`
	EvidenceURL     *string          `json:"evidenceUrl,omitempty" binding:"omitempty,url"`
	Anonymous       bool             `json:"anonymous" example:"false"`
	CommentsAllowed *bool            `json:"commentsAllowed,omitempty"` // defaults to true when omitted
}

// UpdateReportRequest updates an existing report owned by the caller
type UpdateReportRequest struct {
	Category        string           `json:"category" binding:"required" example:"phishing"`
	Title           string           `json:"title" binding:"required,min=5,max=200"`
	Description     string           `json:"description" binding:"required,min=20,max=10000"`
	ScammerName     string           `json:"scammerName" binding:"required,min=2,max=200"`
	IncidentDate    *time.Time       `json:"incidentDate,omitempty"`
	Location        string           `json:"location" binding:"omitempty,max=200"`
	MoneyInvolved   bool             `json:"moneyInvolved"`
	AmountLost      *decimal.Decimal `json:"amountLost,omitempty"`
	EvidenceURL     *string          `json:"evidenceUrl,omitempty" binding:"omitempty,url"`
	Anonymous       bool             `json:"anonymous"`
	CommentsAllowed *bool            `json:"commentsAllowed,omitempty"`
}

// UpdateReportStatusRequest moves a report through the moderation pipeline
type UpdateReportStatusRequest struct {
	Status models.ReportStatus `json:"status" binding:"required" example:"VERIFIED"`
}

// ReportFilterRequest carries the listing filters from the query string
type ReportFilterRequest struct {
	Category string `form:"category" example:"phishing"`
	Status   string `form:"status" example:"VERIFIED"`
	Search   string `form:"search" example:"crypto"`
	SortBy   string `form:"sortBy" example:"newest"` // newest | oldest | most-confirmed
}

// ReportResponse is the public projection of a scam report
type ReportResponse struct {
	ID              int64               `json:"id" example:"1"`
	Category        string              `json:"category" example:"phishing"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	ScammerName     string              `json:"scammerName"`
	IncidentDate    *time.Time          `json:"incidentDate,omitempty"`
	Location        string              `json:"location,omitempty"`
	MoneyInvolved   bool                `json:"moneyInvolved"`
	AmountLost      *decimal.Decimal    `json:"amountLost,omitempty"`
	EvidenceURL     *string             `json:"evidenceUrl,omitempty"`
	Anonymous       bool                `json:"anonymous"`
	CommentsAllowed bool                `json:"commentsAllowed"`
	Status          models.ReportStatus `json:"status" example:"VERIFIED"`
	MeTooCount      int64               `json:"meTooCount" example:"12"`
	CommentCount    int64               `json:"commentCount" example:"4"`
	ReporterName    string              `json:"reporterName,omitempty" example:"John D."`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ReportToResponse maps a report model to its public projection. The
// reporter name is withheld for anonymous reports and reports whose
// owner account no longer exists.
func ReportToResponse(r *models.ScamReport, meTooCount, commentCount int64) ReportResponse {
	resp := ReportResponse{
		ID:              r.ID,
		Category:        r.Category,
		Title:           r.Title,
		Description:     r.Description,
		ScammerName:     r.ScammerName,
		IncidentDate:    r.IncidentDate,
		Location:        r.Location,
		MoneyInvolved:   r.MoneyInvolved,
		AmountLost:      r.AmountLost,
		EvidenceURL:     r.EvidenceURL,
		Anonymous:       r.Anonymous,
		CommentsAllowed: r.CommentsAllowed,
		Status:          r.Status,
		MeTooCount:      meTooCount,
		CommentCount:    commentCount,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if !r.Anonymous && r.Owner != nil {
		resp.ReporterName = r.Owner.FullName()
	}
	return resp
}

// ReportListResponse is a paginated report listing
type ReportListResponse struct {
	Reports    []ReportResponse `json:"reports"`
	Pagination PaginationInfo   `json:"pagination"`
}
