package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/pkg/helpers"
)

// ReportController handles scam report endpoints
type ReportController struct {
	reportService *services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// Create submits a new scam report
// @Summary Submit a scam report
// @Description New reports start in PENDING and are reviewed before being verified
// @Tags reports
// @Accept json
// @Produce json
// @Param request body dto.CreateReportRequest true "Report details"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports [post]
func (c *ReportController) Create(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	report, err := c.reportService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(report))
}

// Get returns a single report
// @Summary Get a report
// @Tags reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /reports/{id} [get]
func (c *ReportController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	report, err := c.reportService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// List returns reports with filtering, search and sorting
// @Summary Browse reports
// @Tags reports
// @Produce json
// @Param category query string false "Category filter"
// @Param status query string false "Moderation status filter"
// @Param search query string false "Match against title, description or scammer name"
// @Param sortBy query string false "newest, oldest or most-confirmed" default(newest)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ReportListResponse}
// @Router /reports [get]
func (c *ReportController) List(ctx *gin.Context) {
	var filter dto.ReportFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	reports, err := c.reportService.List(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports))
}

// ListMine returns the caller's own reports
// @Summary List own reports
// @Tags reports
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ReportListResponse}
// @Security BearerAuth
// @Router /reports/mine [get]
func (c *ReportController) ListMine(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	reports, err := c.reportService.ListByUser(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reports))
}

// Update rewrites a report
// @Summary Edit a report
// @Description Owners can edit while the report is still pending, admins at any time
// @Tags reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body dto.UpdateReportRequest true "Report details"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id} [put]
func (c *ReportController) Update(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	report, err := c.reportService.Update(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// UpdateStatus moves a report through the moderation pipeline
// @Summary Change a report's moderation status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body dto.UpdateReportStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.ReportResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/reports/{id}/status [put]
func (c *ReportController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateReportStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	report, err := c.reportService.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// Delete removes a report
// @Summary Delete a report
// @Description Owners can delete their own reports, admins any
// @Tags reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (c *ReportController) Delete(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.reportService.Delete(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Report deleted"))
}
