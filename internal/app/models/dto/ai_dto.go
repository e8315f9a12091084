package dto

// SentimentRequest asks for a sentiment classification of free text
type SentimentRequest struct {
	Text string `json:"text" binding:"required,min=10,max=10000"`
}

// SentimentResponse carries the classification result
type SentimentResponse struct {
	Label string  `json:"label" example:"negative"` // positive | neutral | negative
	Score float64 `json:"score" example:"0.92"`
}

// PhishingCheckRequest asks for a phishing risk assessment of a message or URL
type PhishingCheckRequest struct {
	Text string `json:"text" binding:"required,min=10,max=10000"`
}

// PhishingCheckResponse carries the risk assessment
type PhishingCheckResponse struct {
	RiskLevel string   `json:"riskLevel" example:"high"` // low | medium | high
	Reasons   []string `json:"reasons"`
}

// SimilarReportsResponse lists reports resembling the one inspected
type SimilarReportsResponse struct {
	ReportID int64            `json:"reportId" example:"42"`
	Matches  []ReportResponse `json:"matches"`
}
