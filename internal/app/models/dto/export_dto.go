package dto

// ExportResponse wraps a generated PDF document for JSON transport
type ExportResponse struct {
	FileName    string `json:"fileName" example:"scam-reports-2025-04-23.pdf"`
	ContentType string `json:"contentType" example:"application/pdf"`
	Base64Data  string `json:"base64Data"`
}
