package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
)

// MeTooController handles report confirmation endpoints
type MeTooController struct {
	meTooService *services.MeTooService
	logger       zerolog.Logger
}

// NewMeTooController creates a new MeTooController
func NewMeTooController(meTooService *services.MeTooService, logger zerolog.Logger) *MeTooController {
	return &MeTooController{
		meTooService: meTooService,
		logger:       logger,
	}
}

// Toggle flips the caller's confirmation on a report
// @Summary Toggle a "me too" confirmation
// @Description Adds the confirmation when absent, removes it when present. Safe under concurrent requests.
// @Tags me-too
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.MeTooResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id}/me-too [post]
func (c *MeTooController) Toggle(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.meTooService.Toggle(ctx.Request.Context(), reportID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Status reports the caller's confirmation state on a report
// @Summary Get own confirmation state
// @Tags me-too
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} dto.APIResponse{data=dto.MeTooResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id}/me-too [get]
func (c *MeTooController) Status(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	result, err := c.meTooService.Status(ctx.Request.Context(), reportID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
