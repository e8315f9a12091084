package dto

// CategoryCount pairs a report category with its report total
type CategoryCount struct {
	Category string `json:"category" example:"phishing"`
	Count    int64  `json:"count" example:"128"`
}

// StatusCount pairs a moderation status with its report total
type StatusCount struct {
	Status string `json:"status" example:"VERIFIED"`
	Count  int64  `json:"count" example:"54"`
}

// MonthlyCount pairs a calendar month with its submission total
type MonthlyCount struct {
	Month string `json:"month" example:"2025-04"`
	Count int64  `json:"count" example:"37"`
}

// PublicStatsResponse is the headline figure set shown on the landing page
type PublicStatsResponse struct {
	TotalReports    int64           `json:"totalReports" example:"1342"`
	VerifiedReports int64           `json:"verifiedReports" example:"890"`
	TotalMeToos     int64           `json:"totalMeToos" example:"5210"`
	TotalAmountLost string          `json:"totalAmountLost" example:"1284500.50"`
	TopCategories   []CategoryCount `json:"topCategories"`
}

// AdminStatsResponse is the full dashboard figure set
type AdminStatsResponse struct {
	TotalReports    int64           `json:"totalReports"`
	TotalUsers      int64           `json:"totalUsers"`
	TotalComments   int64           `json:"totalComments"`
	TotalMeToos     int64           `json:"totalMeToos"`
	PendingReports  int64           `json:"pendingReports"`
	PendingComments int64           `json:"pendingComments"`
	ActiveAds       int64           `json:"activeAds"`
	TotalAmountLost string          `json:"totalAmountLost" example:"1284500.50"`
	ByCategory      []CategoryCount `json:"byCategory"`
	ByStatus        []StatusCount   `json:"byStatus"`
	ByMonth         []MonthlyCount  `json:"byMonth"` // last 12 months
}
