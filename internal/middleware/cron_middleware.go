package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scamwatch/backend/internal/app/models/dto"
)

// CronAuth gates maintenance endpoints behind a shared bearer secret
// from the environment. An empty secret disables the endpoints rather
// than leaving them open.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Maintenance endpoints are disabled")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		presented := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Invalid maintenance secret")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
