package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses. Unknown
// errors become opaque 500s so internals never leak to clients.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrReportNotFound),
		errors.Is(err, apperrors.ErrCommentNotFound),
		errors.Is(err, apperrors.ErrAdvertisementNotFound),
		errors.Is(err, apperrors.ErrContentNotFound),
		errors.Is(err, apperrors.ErrNotificationNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "Resource not found"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenRevoked),
		errors.Is(err, apperrors.ErrInvalidEmailToken),
		errors.Is(err, apperrors.ErrInvalidPasswordResetToken),
		errors.Is(err, apperrors.ErrPasswordResetTokenUsed):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, messageOr(err, "Invalid token"))

	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")

	case errors.Is(err, apperrors.ErrAccountDisabled),
		errors.Is(err, apperrors.ErrEmailNotVerified),
		errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, apperrors.ErrCommentsNotAllowed):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOr(err, "Permission denied"))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrSlugAlreadyTaken),
		errors.Is(err, apperrors.ErrEmailAlreadyVerified),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Resource already exists"))

	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidReportStatus),
		errors.Is(err, apperrors.ErrInvalidCommentStatus),
		errors.Is(err, apperrors.ErrInvalidAdPackage):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed"))

	case errors.Is(err, apperrors.ErrExternalService):
		respond(c, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, messageOr(err, "Upstream service unavailable"))

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOr prefers the message carried by a CustomError over the
// generic fallback
func messageOr(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
