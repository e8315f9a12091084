package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/scamwatch/backend/internal/app/services"
)

func bulkStatusRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewCommentController(services.NewCommentService(nil, nil, nil, nil, zerolog.Nop()), zerolog.Nop())
	router := gin.New()
	router.PUT("/admin/comments/bulk-status", controller.BulkUpdateStatus)
	return router
}

func TestCommentController_BulkUpdateStatusValidation(t *testing.T) {
	router := bulkStatusRouter()

	send := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/admin/comments/bulk-status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("duplicate ids are rejected before reaching the store", func(t *testing.T) {
		rec := send(`{"commentIds":[5,5],"status":"APPROVED"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty id list is rejected", func(t *testing.T) {
		rec := send(`{"commentIds":[],"status":"APPROVED"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive ids are rejected", func(t *testing.T) {
		rec := send(`{"commentIds":[0],"status":"APPROVED"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
