package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/pkg/helpers"
)

// UserController handles the admin user management endpoints
type UserController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(authService *services.AuthService, logger zerolog.Logger) *UserController {
	return &UserController{
		authService: authService,
		logger:      logger,
	}
}

// ListUsers returns accounts for the admin panel
// @Summary List user accounts
// @Tags admin
// @Produce json
// @Param search query string false "Match against email or name"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	users, err := c.authService.ListUsers(ctx.Request.Context(), ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// SetUserActive enables or disables an account
// @Summary Enable or disable a user account
// @Description Disabling an account also revokes its refresh tokens
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Param active query bool true "New account state"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/active [put]
func (c *UserController) SetUserActive(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	active, err := strconv.ParseBool(ctx.Query("active"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid active parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authService.SetUserActive(ctx.Request.Context(), userID, active); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessage("Account state updated"))
}
