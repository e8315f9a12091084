package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/pkg/helpers"
)

// AdvertisementController handles sponsor advertisement endpoints
type AdvertisementController struct {
	adService *services.AdvertisementService
	logger    zerolog.Logger
}

// NewAdvertisementController creates a new AdvertisementController
func NewAdvertisementController(adService *services.AdvertisementService, logger zerolog.Logger) *AdvertisementController {
	return &AdvertisementController{
		adService: adService,
		logger:    logger,
	}
}

// ListVisible returns the ads currently shown to visitors
// @Summary List active advertisements
// @Tags advertisements
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PublicAdvertisementResponse}
// @Router /advertisements [get]
func (c *AdvertisementController) ListVisible(ctx *gin.Context) {
	ads, err := c.adService.ListVisible(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ads))
}

// Create books a new advertisement
// @Summary Create an advertisement
// @Description The end date and price derive from the package tier (3, 6, 9 or 12 months)
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateAdvertisementRequest true "Advertisement details"
// @Success 201 {object} dto.APIResponse{data=dto.AdvertisementResponse}
// @Failure 400 {object} dto.ErrorResponse "Unknown package tier"
// @Security BearerAuth
// @Router /admin/advertisements [post]
func (c *AdvertisementController) Create(ctx *gin.Context) {
	var req dto.CreateAdvertisementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	ad, err := c.adService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(ad))
}

// Get returns a single advertisement
// @Summary Get an advertisement
// @Tags admin
// @Produce json
// @Param id path int true "Advertisement ID"
// @Success 200 {object} dto.APIResponse{data=dto.AdvertisementResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/advertisements/{id} [get]
func (c *AdvertisementController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	ad, err := c.adService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ad))
}

// List returns all advertisements for the admin panel
// @Summary List advertisements
// @Tags admin
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.AdvertisementListResponse}
// @Security BearerAuth
// @Router /admin/advertisements [get]
func (c *AdvertisementController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	ads, err := c.adService.List(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ads))
}

// Update rewrites the mutable fields of an advertisement
// @Summary Update an advertisement
// @Description The package tier, dates and price are fixed at booking time
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Advertisement ID"
// @Param request body dto.UpdateAdvertisementRequest true "Advertisement fields"
// @Success 200 {object} dto.APIResponse{data=dto.AdvertisementResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/advertisements/{id} [put]
func (c *AdvertisementController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdvertisementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	ad, err := c.adService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(ad))
}

// Delete removes an advertisement
// @Summary Delete an advertisement
// @Tags admin
// @Produce json
// @Param id path int true "Advertisement ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/advertisements/{id} [delete]
func (c *AdvertisementController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Advertisement deleted"))
}

// RunSweep triggers the expiry sweep on demand. The same pass runs on
// an in-process ticker, this endpoint exists for external schedulers.
// @Summary Run the advertisement expiry sweep
// @Description Deactivates expired ads and sends outstanding 30/15-day reminder emails
// @Tags cron
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SweepResultResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid maintenance secret"
// @Security BearerAuth
// @Router /cron/check-expiring-ads [post]
func (c *AdvertisementController) RunSweep(ctx *gin.Context) {
	result, err := c.adService.Sweep(ctx.Request.Context(), time.Now())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
