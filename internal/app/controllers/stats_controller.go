package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
)

// StatsController handles aggregate statistics endpoints
type StatsController struct {
	statsService *services.StatsService
	logger       zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService, logger zerolog.Logger) *StatsController {
	return &StatsController{
		statsService: statsService,
		logger:       logger,
	}
}

// Public returns the counters shown on the landing page
// @Summary Public statistics
// @Tags stats
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.PublicStatsResponse}
// @Router /stats [get]
func (c *StatsController) Public(ctx *gin.Context) {
	stats, err := c.statsService.PublicStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// Admin returns the full dashboard breakdown
// @Summary Admin statistics
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AdminStatsResponse}
// @Security BearerAuth
// @Router /admin/stats [get]
func (c *StatsController) Admin(ctx *gin.Context) {
	stats, err := c.statsService.AdminStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
