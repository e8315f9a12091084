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

// NotificationController handles in-app notification endpoints
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List returns the caller's notifications, newest first
// @Summary List own notifications
// @Tags notifications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse}
// @Security BearerAuth
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	notifications, err := c.notificationService.List(ctx.Request.Context(), userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notifications))
}

// MarkRead marks one of the caller's notifications as read
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Notification marked read"))
}

// MarkAllRead marks every unread notification of the caller as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Security BearerAuth
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.MarkAllRead(ctx.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("All notifications marked read"))
}
