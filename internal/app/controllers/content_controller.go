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

// ContentController handles CMS content endpoints
type ContentController struct {
	contentService *services.ContentService
	logger         zerolog.Logger
}

// NewContentController creates a new ContentController
func NewContentController(contentService *services.ContentService, logger zerolog.Logger) *ContentController {
	return &ContentController{
		contentService: contentService,
		logger:         logger,
	}
}

// GetBySlug returns a published content entry by slug
// @Summary Get published content
// @Tags content
// @Produce json
// @Param slug path string true "Content slug"
// @Success 200 {object} dto.APIResponse{data=dto.ContentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /content/{slug} [get]
func (c *ContentController) GetBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	content, err := c.contentService.GetPublishedBySlug(ctx.Request.Context(), slug)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(content))
}

// ListPublished returns published content entries, optionally by type
// @Summary List published content
// @Tags content
// @Produce json
// @Param type query string false "Content type filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ContentListResponse}
// @Router /content [get]
func (c *ContentController) ListPublished(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	contents, err := c.contentService.List(ctx.Request.Context(), ctx.Query("type"), string(models.ContentStatusPublished), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(contents))
}

// Create adds a content entry
// @Summary Create content
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateContentRequest true "Content details"
// @Success 201 {object} dto.APIResponse{data=dto.ContentResponse}
// @Failure 409 {object} dto.ErrorResponse "Slug already taken"
// @Security BearerAuth
// @Router /admin/content [post]
func (c *ContentController) Create(ctx *gin.Context) {
	userID, ok := currentUserOrAbort(ctx)
	if !ok {
		return
	}

	var req dto.CreateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	content, err := c.contentService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(content))
}

// Get returns a content entry regardless of status
// @Summary Get content by ID
// @Tags admin
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} dto.APIResponse{data=dto.ContentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/content/{id} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	content, err := c.contentService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(content))
}

// List returns content entries with type and status filters
// @Summary List content
// @Tags admin
// @Produce json
// @Param type query string false "Content type filter"
// @Param status query string false "Content status filter"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ContentListResponse}
// @Security BearerAuth
// @Router /admin/content [get]
func (c *ContentController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	contents, err := c.contentService.List(ctx.Request.Context(), ctx.Query("type"), ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(contents))
}

// Update rewrites a content entry
// @Summary Update content
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Param request body dto.UpdateContentRequest true "Content details"
// @Success 200 {object} dto.APIResponse{data=dto.ContentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Slug already taken"
// @Security BearerAuth
// @Router /admin/content/{id} [put]
func (c *ContentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	content, err := c.contentService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(content))
}

// Delete removes a content entry
// @Summary Delete content
// @Tags admin
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/content/{id} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.contentService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Content deleted"))
}
