package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/rs/zerolog"
)

// SentimentResult is the parsed outcome of a sentiment analysis call
type SentimentResult struct {
	Label string  `json:"label"` // positive, neutral, negative
	Score float64 `json:"score"` // 0..1 confidence
}

// PhishingResult is the parsed outcome of a URL risk assessment call
type PhishingResult struct {
	RiskLevel string   `json:"riskLevel"` // low, medium, high
	Reasons   []string `json:"reasons"`
}

// ReportCandidate is a report summary offered to the duplicate matcher
type ReportCandidate struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// SimilarityResult lists candidate report IDs considered duplicates
type SimilarityResult struct {
	MatchIDs []int64 `json:"matchIds"`
}

// Client wraps the LLM API used by the assistance endpoints. Each helper is a
// single chat-completion call with no retries or caching; failures surface to
// the caller as errors.
type Client struct {
	api    *openai.Client
	model  string
	logger zerolog.Logger
}

// NewClient creates a new AI client
func NewClient(apiKey, model string, logger zerolog.Logger) *Client {
	return &Client{
		api:    openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}
}

// AnalyzeSentiment classifies the sentiment of a comment text
func (c *Client) AnalyzeSentiment(ctx context.Context, text string) (*SentimentResult, error) {
	prompt := fmt.Sprintf(
		`Classify the sentiment of the following user comment from a scam-reporting site.
Respond with JSON only, in the form {"label": "positive|neutral|negative", "score": 0.0-1.0}.

Comment:
%s`, text)

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result SentimentResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse sentiment response: %w", err)
	}

	return &result, nil
}

// AssessPhishingRisk estimates how likely a URL is a phishing site
func (c *Client) AssessPhishingRisk(ctx context.Context, url string) (*PhishingResult, error) {
	prompt := fmt.Sprintf(
		`Assess how likely the following URL is a phishing or scam site based on its structure
(domain, path, use of lookalike characters, suspicious keywords). Do not fetch the URL.
Respond with JSON only, in the form {"riskLevel": "low|medium|high", "reasons": ["..."]}.

URL: %s`, url)

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result PhishingResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse phishing response: %w", err)
	}

	return &result, nil
}

// FindSimilarReports matches a new description against recent report titles
func (c *Client) FindSimilarReports(ctx context.Context, description string, candidates []ReportCandidate) (*SimilarityResult, error) {
	list, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to encode candidates: %w", err)
	}

	prompt := fmt.Sprintf(
		`A user is about to submit a scam report with the description below. Given the list of
existing reports (id and title), return the ids describing the same scam, if any.
Respond with JSON only, in the form {"matchIds": [1, 2]}. Return an empty list when nothing matches.

Description:
%s

Existing reports:
%s`, description, string(list))

	raw, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result SimilarityResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse similarity response: %w", err)
	}

	return &result, nil
}

// complete performs one chat-completion call
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a strict JSON API. Respond with a single JSON object and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0,
	})
	if err != nil {
		c.logger.Error().Err(err).Msg("LLM completion failed")
		return "", fmt.Errorf("LLM completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// extractJSON strips markdown code fences that some models wrap around JSON
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
