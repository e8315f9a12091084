package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
)

// ExportController handles report export endpoints
type ExportController struct {
	exportService *services.ExportService
	logger        zerolog.Logger
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService, logger zerolog.Logger) *ExportController {
	return &ExportController{
		exportService: exportService,
		logger:        logger,
	}
}

// ExportReports renders the filtered report list as a PDF
// @Summary Export reports as PDF
// @Description Applies the same filters as the report listing and returns the document base64-encoded
// @Tags admin
// @Produce json
// @Param category query string false "Category filter"
// @Param status query string false "Moderation status filter"
// @Param search query string false "Match against title, description or scammer name"
// @Success 200 {object} dto.APIResponse{data=dto.ExportResponse}
// @Security BearerAuth
// @Router /admin/reports/export [get]
func (c *ExportController) ExportReports(ctx *gin.Context) {
	var filter dto.ReportFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	result, err := c.exportService.ExportReports(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// ExportStats renders the admin dashboard figures as a PDF
// @Summary Export statistics as PDF
// @Description Returns the dashboard figures as a base64-encoded document
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.ExportResponse}
// @Security BearerAuth
// @Router /admin/stats/export [get]
func (c *ExportController) ExportStats(ctx *gin.Context) {
	result, err := c.exportService.ExportStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
