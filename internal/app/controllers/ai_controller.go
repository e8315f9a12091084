package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
)

// AIController handles the model-assisted analysis endpoints
type AIController struct {
	aiService *services.AIService
	logger    zerolog.Logger
}

// NewAIController creates a new AIController
func NewAIController(aiService *services.AIService, logger zerolog.Logger) *AIController {
	return &AIController{
		aiService: aiService,
		logger:    logger,
	}
}

// AnalyzeSentiment classifies the emotional tone of a text
// @Summary Analyze text sentiment
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.SentimentRequest true "Text to analyze"
// @Success 200 {object} dto.APIResponse{data=dto.SentimentResponse}
// @Failure 502 {object} dto.ErrorResponse "Analysis backend unavailable"
// @Security BearerAuth
// @Router /ai/sentiment [post]
func (c *AIController) AnalyzeSentiment(ctx *gin.Context) {
	var req dto.SentimentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.aiService.AnalyzeSentiment(ctx.Request.Context(), req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// CheckPhishing estimates how likely a message is a phishing attempt
// @Summary Assess phishing risk
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.PhishingCheckRequest true "Message to assess"
// @Success 200 {object} dto.APIResponse{data=dto.PhishingCheckResponse}
// @Failure 502 {object} dto.ErrorResponse "Analysis backend unavailable"
// @Security BearerAuth
// @Router /ai/phishing-check [post]
func (c *AIController) CheckPhishing(ctx *gin.Context) {
	var req dto.PhishingCheckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.aiService.CheckPhishing(ctx.Request.Context(), req.Text)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// FindSimilar lists reports resembling the given one
// @Summary Find similar reports
// @Tags ai
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.SimilarReportsResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse "Analysis backend unavailable"
// @Security BearerAuth
// @Router /ai/reports/{id}/similar [get]
func (c *AIController) FindSimilar(ctx *gin.Context) {
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.aiService.FindSimilar(ctx.Request.Context(), reportID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
