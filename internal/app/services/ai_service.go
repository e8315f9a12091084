package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/ai"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
)

const similarityCandidateLimit = 25

// AIAnalyzer is the LLM surface behind the assistance endpoints
type AIAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (*ai.SentimentResult, error)
	AssessPhishingRisk(ctx context.Context, text string) (*ai.PhishingResult, error)
	FindSimilarReports(ctx context.Context, description string, candidates []ai.ReportCandidate) (*ai.SimilarityResult, error)
}

// ReportCandidateStore fetches reports for the duplicate matcher
type ReportCandidateStore interface {
	GetByID(ctx context.Context, id int64) (*repositories.ReportWithCounts, error)
	ListCandidates(ctx context.Context, category string, excludeID int64, limit int) ([]repositories.ReportCandidate, error)
	GetManyByIDs(ctx context.Context, ids []int64) ([]repositories.ReportWithCounts, error)
}

// AIService fronts the LLM helpers. Upstream failures surface as 502s,
// never as broken report flows.
type AIService struct {
	analyzer   AIAnalyzer
	reportRepo ReportCandidateStore
	logger     zerolog.Logger
}

// NewAIService creates a new AIService
func NewAIService(analyzer AIAnalyzer, reportRepo ReportCandidateStore, logger zerolog.Logger) *AIService {
	return &AIService{
		analyzer:   analyzer,
		reportRepo: reportRepo,
		logger:     logger,
	}
}

// AnalyzeSentiment classifies free text as positive, neutral or negative
func (s *AIService) AnalyzeSentiment(ctx context.Context, text string) (*dto.SentimentResponse, error) {
	result, err := s.analyzer.AnalyzeSentiment(ctx, text)
	if err != nil {
		s.logger.Error().Err(err).Msg("Sentiment analysis failed")
		return nil, apperrors.NewExternalServiceError("sentiment analysis unavailable")
	}
	return &dto.SentimentResponse{Label: result.Label, Score: result.Score}, nil
}

// CheckPhishing assesses the phishing risk of a message or URL
func (s *AIService) CheckPhishing(ctx context.Context, text string) (*dto.PhishingCheckResponse, error) {
	result, err := s.analyzer.AssessPhishingRisk(ctx, text)
	if err != nil {
		s.logger.Error().Err(err).Msg("Phishing assessment failed")
		return nil, apperrors.NewExternalServiceError("phishing assessment unavailable")
	}
	return &dto.PhishingCheckResponse{RiskLevel: result.RiskLevel, Reasons: result.Reasons}, nil
}

// FindSimilar looks for reports resembling the given one within the
// same category
func (s *AIService) FindSimilar(ctx context.Context, reportID int64) (*dto.SimilarReportsResponse, error) {
	rc, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.reportRepo.ListCandidates(ctx, rc.Report.Category, reportID, similarityCandidateLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.SimilarReportsResponse{ReportID: reportID, Matches: []dto.ReportResponse{}}
	if len(candidates) == 0 {
		return resp, nil
	}

	aiCandidates := make([]ai.ReportCandidate, 0, len(candidates))
	for _, c := range candidates {
		aiCandidates = append(aiCandidates, ai.ReportCandidate{ID: c.ID, Title: c.Title})
	}

	result, err := s.analyzer.FindSimilarReports(ctx, rc.Report.Description, aiCandidates)
	if err != nil {
		s.logger.Error().Err(err).Int64("reportID", reportID).Msg("Similarity matching failed")
		return nil, apperrors.NewExternalServiceError("similarity matching unavailable")
	}
	if len(result.MatchIDs) == 0 {
		return resp, nil
	}

	// The model only ranks IDs it was given, anything else is dropped
	offered := map[int64]bool{}
	for _, c := range candidates {
		offered[c.ID] = true
	}
	matchIDs := make([]int64, 0, len(result.MatchIDs))
	for _, id := range result.MatchIDs {
		if offered[id] {
			matchIDs = append(matchIDs, id)
		}
	}

	matches, err := s.reportRepo.GetManyByIDs(ctx, matchIDs)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		resp.Matches = append(resp.Matches, dto.ReportToResponse(&matches[i].Report, matches[i].MeTooCount, matches[i].CommentCount))
	}

	return resp, nil
}

var _ AIAnalyzer = (*ai.Client)(nil)
var _ ReportCandidateStore = (*repositories.ReportRepository)(nil)
