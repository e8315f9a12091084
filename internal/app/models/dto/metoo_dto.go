package dto

// MeTooResponse reflects the state of the caller's confirmation after a toggle
type MeTooResponse struct {
	ReportID  int64 `json:"reportId" example:"42"`
	Confirmed bool  `json:"confirmed" example:"true"`
	Count     int64 `json:"count" example:"13"`
}
