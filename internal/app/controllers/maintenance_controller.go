package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
)

// MaintenanceController handles the operational reset endpoint
type MaintenanceController struct {
	maintenanceService *services.MaintenanceService
	logger             zerolog.Logger
}

// NewMaintenanceController creates a new MaintenanceController
func NewMaintenanceController(maintenanceService *services.MaintenanceService, logger zerolog.Logger) *MaintenanceController {
	return &MaintenanceController{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

// ResetDemoData wipes user-generated rows and reseeds the admin account
// @Summary Reset demo data
// @Description Removes all reports, comments, confirmations, notifications, advertisements and non-admin accounts
// @Tags maintenance
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid maintenance secret"
// @Security BearerAuth
// @Router /admin/maintenance/reset-demo-data [post]
func (c *MaintenanceController) ResetDemoData(ctx *gin.Context) {
	if err := c.maintenanceService.ResetDemoData(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Demo data reset"))
}
