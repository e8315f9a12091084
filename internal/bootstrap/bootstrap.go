package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	appControllers "github.com/scamwatch/backend/internal/app/controllers"
	appMigrations "github.com/scamwatch/backend/internal/app/migrations"
	appRepos "github.com/scamwatch/backend/internal/app/repositories"
	appRoutes "github.com/scamwatch/backend/internal/app/routes"
	appServices "github.com/scamwatch/backend/internal/app/services"
	"github.com/scamwatch/backend/internal/config"
	"github.com/scamwatch/backend/internal/db"
	appMiddleware "github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/pkg/ai"
	pkgAuth "github.com/scamwatch/backend/internal/pkg/auth"
	"github.com/scamwatch/backend/internal/pkg/email"
	"github.com/scamwatch/backend/internal/pkg/helpers"
	"github.com/scamwatch/backend/internal/pkg/logger"
	"github.com/scamwatch/backend/internal/pkg/websocket"
	"github.com/scamwatch/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers

	JWTService     *pkgAuth.JWTService
	EmailService   email.EmailService
	Hub            *websocket.Hub
	WSHandler      *websocket.Handler
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.EnsureAdmin(context.Background(), dbPool, cfg, lgr); err != nil {
		// Startup continues; the admin can be seeded on a later boot
		lgr.Error().Err(err).Msg("Failed to seed admin account, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.EmailService = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		BaseURL:   cfg.Server.BaseURL,
	}, lgr)

	deps.Hub = websocket.NewHub(lgr)
	deps.WSHandler = websocket.NewHandler(deps.Hub, deps.JWTService, lgr)

	aiClient := ai.NewClient(cfg.AI.APIKey, cfg.AI.Model, lgr)

	monthlyPrice, err := decimal.NewFromString(cfg.Ads.MonthlyPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid ads monthly price %q: %w", cfg.Ads.MonthlyPrice, err)
	}

	repos := deps.Repos
	statsService := appServices.NewStatsService(repos.StatsRepository, lgr)
	deps.Services = &appServices.Services{
		AuthService: appServices.NewAuthService(
			repos.UserRepository,
			repos.TokenRepository,
			repos.VerificationTokenRepository,
			repos.PasswordResetTokenRepository,
			deps.JWTService,
			deps.EmailService,
			lgr,
		),
		ReportService: appServices.NewReportService(
			repos.ReportRepository,
			repos.NotificationRepository,
			deps.Hub,
			lgr,
		),
		CommentService: appServices.NewCommentService(
			repos.CommentRepository,
			repos.ReportRepository,
			repos.NotificationRepository,
			deps.Hub,
			lgr,
		),
		MeTooService: appServices.NewMeTooService(
			repos.MeTooRepository,
			repos.ReportRepository,
			repos.NotificationRepository,
			deps.Hub,
			lgr,
		),
		AdvertisementService: appServices.NewAdvertisementService(
			repos.AdvertisementRepository,
			deps.EmailService,
			deps.Hub,
			monthlyPrice,
			lgr,
		),
		NotificationService: appServices.NewNotificationService(repos.NotificationRepository, lgr),
		ContentService:      appServices.NewContentService(repos.ContentRepository, lgr),
		StatsService:        statsService,
		AIService:           appServices.NewAIService(aiClient, repos.ReportRepository, lgr),
		ExportService:       appServices.NewExportService(repos.ReportRepository, statsService, lgr),
		MaintenanceService:  appServices.NewMaintenanceService(dbPool, cfg, lgr),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	svcs := deps.Services
	deps.Controllers = appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(svcs.AuthService, lgr),
		User:          appControllers.NewUserController(svcs.AuthService, lgr),
		Report:        appControllers.NewReportController(svcs.ReportService, lgr),
		Comment:       appControllers.NewCommentController(svcs.CommentService, lgr),
		MeToo:         appControllers.NewMeTooController(svcs.MeTooService, lgr),
		Advertisement: appControllers.NewAdvertisementController(svcs.AdvertisementService, lgr),
		Notification:  appControllers.NewNotificationController(svcs.NotificationService, lgr),
		Content:       appControllers.NewContentController(svcs.ContentService, lgr),
		Stats:         appControllers.NewStatsController(svcs.StatsService, lgr),
		AI:            appControllers.NewAIController(svcs.AIService, lgr),
		Export:        appControllers.NewExportController(svcs.ExportService, lgr),
		Maintenance:   appControllers.NewMaintenanceController(svcs.MaintenanceService, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.WSHandler, cfg.Ads.CronSecret)

	return router
}
