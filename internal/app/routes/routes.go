package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scamwatch/backend/internal/app/controllers"
	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

// Controllers bundles every controller the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	User          *controllers.UserController
	Report        *controllers.ReportController
	Comment       *controllers.CommentController
	MeToo         *controllers.MeTooController
	Advertisement *controllers.AdvertisementController
	Notification  *controllers.NotificationController
	Content       *controllers.ContentController
	Stats         *controllers.StatsController
	AI            *controllers.AIController
	Export        *controllers.ExportController
	Maintenance   *controllers.MaintenanceController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	wsHandler *websocket.Handler,
	cronSecret string,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ws/events", wsHandler.HandleConnection)

	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.RefreshToken)
		auth.POST("/verify-email", ctrl.Auth.VerifyEmail)
		auth.POST("/resend-verification", ctrl.Auth.ResendVerification)
		auth.POST("/forgot-password", ctrl.Auth.ForgotPassword)
		auth.POST("/reset-password", ctrl.Auth.ResetPassword)
	}

	v1.GET("/reports", ctrl.Report.List)
	v1.GET("/reports/:id", ctrl.Report.Get)
	v1.GET("/reports/:id/comments", ctrl.Comment.ListApproved)
	v1.GET("/advertisements", ctrl.Advertisement.ListVisible)
	v1.GET("/content", ctrl.Content.ListPublished)
	v1.GET("/content/:slug", ctrl.Content.GetBySlug)
	v1.GET("/stats", ctrl.Stats.Public)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrl.Auth.Logout)
		authenticated.POST("/auth/change-password", ctrl.Auth.ChangePassword)
		authenticated.GET("/profile", ctrl.Auth.GetProfile)
		authenticated.PUT("/profile", ctrl.Auth.UpdateProfile)

		authenticated.POST("/reports", ctrl.Report.Create)
		authenticated.GET("/reports/mine", ctrl.Report.ListMine)
		authenticated.PUT("/reports/:id", ctrl.Report.Update)
		authenticated.DELETE("/reports/:id", ctrl.Report.Delete)

		authenticated.POST("/reports/:id/comments", ctrl.Comment.Create)
		authenticated.DELETE("/comments/:id", ctrl.Comment.Delete)

		authenticated.POST("/reports/:id/me-too", ctrl.MeToo.Toggle)
		authenticated.GET("/reports/:id/me-too", ctrl.MeToo.Status)

		authenticated.GET("/notifications", ctrl.Notification.List)
		authenticated.PUT("/notifications/:id/read", ctrl.Notification.MarkRead)
		authenticated.PUT("/notifications/read-all", ctrl.Notification.MarkAllRead)

		ai := authenticated.Group("/ai")
		{
			ai.POST("/sentiment", ctrl.AI.AnalyzeSentiment)
			ai.POST("/phishing-check", ctrl.AI.CheckPhishing)
			ai.GET("/reports/:id/similar", ctrl.AI.FindSimilar)
		}
	}

	// --- Admin routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", ctrl.User.ListUsers)
		admin.PUT("/users/:id/active", ctrl.User.SetUserActive)

		admin.PUT("/reports/:id/status", ctrl.Report.UpdateStatus)
		admin.GET("/reports/export", ctrl.Export.ExportReports)

		admin.GET("/comments", ctrl.Comment.ModerationQueue)
		admin.PUT("/comments/:id/status", ctrl.Comment.UpdateStatus)
		admin.PUT("/comments/bulk-status", ctrl.Comment.BulkUpdateStatus)

		admin.POST("/advertisements", ctrl.Advertisement.Create)
		admin.GET("/advertisements", ctrl.Advertisement.List)
		admin.GET("/advertisements/:id", ctrl.Advertisement.Get)
		admin.PUT("/advertisements/:id", ctrl.Advertisement.Update)
		admin.DELETE("/advertisements/:id", ctrl.Advertisement.Delete)

		admin.POST("/content", ctrl.Content.Create)
		admin.GET("/content", ctrl.Content.List)
		admin.GET("/content/:id", ctrl.Content.Get)
		admin.PUT("/content/:id", ctrl.Content.Update)
		admin.DELETE("/content/:id", ctrl.Content.Delete)

		admin.GET("/stats", ctrl.Stats.Admin)
		admin.GET("/stats/export", ctrl.Export.ExportStats)
	}

	// --- Secret-gated operational routes ---
	// Both groups share ADS_CRON_SECRET rather than a user JWT so external
	// schedulers can call them.
	cron := v1.Group("/cron")
	cron.Use(middleware.CronAuth(cronSecret))
	{
		cron.POST("/check-expiring-ads", ctrl.Advertisement.RunSweep)
	}

	maintenance := v1.Group("/admin/maintenance")
	maintenance.Use(middleware.CronAuth(cronSecret))
	{
		maintenance.POST("/reset-demo-data", ctrl.Maintenance.ResetDemoData)
	}
}
