package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/pkg/helpers"
)

// CommentController handles comment endpoints
type CommentController struct {
	commentService *services.CommentService
	logger         zerolog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, logger zerolog.Logger) *CommentController {
	return &CommentController{
		commentService: commentService,
		logger:         logger,
	}
}

// Create submits a comment on a report
// @Summary Comment on a report
// @Description Comments start in PENDING and appear publicly once approved
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param request body dto.CreateCommentRequest true "Comment body"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 403 {object} dto.ErrorResponse "Comments disabled for this report"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /reports/{id}/comments [post]
func (c *CommentController) Create(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comment, err := c.commentService.Create(ctx.Request.Context(), reportID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// ListApproved returns the approved comments of a report
// @Summary List a report's comments
// @Tags comments
// @Produce json
// @Param id path int true "Report ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CommentListResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /reports/{id}/comments [get]
func (c *CommentController) ListApproved(ctx *gin.Context) {
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	comments, err := c.commentService.ListApproved(ctx.Request.Context(), reportID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// ModerationQueue returns comments awaiting moderation
// @Summary List comments by moderation status
// @Tags admin
// @Produce json
// @Param status query string false "Comment status" default(PENDING)
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.CommentListResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Security BearerAuth
// @Router /admin/comments [get]
func (c *CommentController) ModerationQueue(ctx *gin.Context) {
	status := models.CommentStatus(ctx.DefaultQuery("status", string(models.CommentStatusPending)))

	page, size := helpers.ParsePaginationParams(ctx)
	comments, err := c.commentService.ListModerationQueue(ctx.Request.Context(), status, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// UpdateStatus moderates a single comment
// @Summary Change a comment's moderation status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body dto.UpdateCommentStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/comments/{id}/status [put]
func (c *CommentController) UpdateStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comment, err := c.commentService.UpdateStatus(ctx.Request.Context(), id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comment))
}

// BulkUpdateStatus moderates a batch of comments atomically
// @Summary Moderate comments in bulk
// @Description Either every listed comment moves to the new status or none do
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.BulkCommentStatusRequest true "Comment IDs and new status"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 404 {object} dto.ErrorResponse "One or more comments not found"
// @Security BearerAuth
// @Router /admin/comments/bulk-status [put]
func (c *CommentController) BulkUpdateStatus(ctx *gin.Context) {
	var req dto.BulkCommentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.commentService.BulkUpdateStatus(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Comments updated"))
}

// Delete removes a comment
// @Summary Delete a comment
// @Description Authors can delete their own comments, admins any
// @Tags comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.commentService.Delete(ctx.Request.Context(), id, userID, middleware.IsAdmin(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Comment deleted"))
}
