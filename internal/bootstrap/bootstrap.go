// Package bootstrap assembles configuration, storage and the HTTP router
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusflow/enroll/internal/app/controllers"
	appMigrations "github.com/campusflow/enroll/internal/app/migrations"
	appRepos "github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/app/repositories/memory"
	"github.com/campusflow/enroll/internal/app/repositories/postgres"
	appRoutes "github.com/campusflow/enroll/internal/app/routes"
	appServices "github.com/campusflow/enroll/internal/app/services"
	"github.com/campusflow/enroll/internal/config"
	"github.com/campusflow/enroll/internal/db"
	appMiddleware "github.com/campusflow/enroll/internal/middleware"
	pkgAuth "github.com/campusflow/enroll/internal/pkg/auth"
	"github.com/campusflow/enroll/internal/pkg/email"
	"github.com/campusflow/enroll/internal/pkg/logger"
	"github.com/campusflow/enroll/internal/pkg/session"
	"github.com/campusflow/enroll/internal/pkg/sms"
	"github.com/campusflow/enroll/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store               appRepos.Store
	JWTService          *pkgAuth.JWTService
	Sessions            *session.Manager
	AuthService         *appServices.AuthService
	StudentService      *appServices.StudentService
	CatalogService      *appServices.CatalogService
	NotificationService *appServices.NotificationService
	ReportService       *appServices.ReportService
	AuthController      *appControllers.AuthController
	StudentController   *appControllers.StudentController
	CatalogController   *appControllers.CatalogController
	AdminController     *appControllers.AdminController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := strings.ToLower(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", logLevel).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the backing store. With a database configured this is
// postgres behind migrations; without one the process falls back to the
// in-memory store so local setups run with zero infrastructure.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (appRepos.Store, error) {
	if cfg.DatabaseDSN() == "" {
		lgr.Warn().Msg("No database configured, using in-memory store; data will not survive restarts")
		store := memory.New()
		seedStore(store, lgr)
		return store, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	pool, err := db.NewPostgresPool(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		pool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	store := postgres.New(pool)
	seedStore(store, lgr)
	return store, nil
}

func seedStore(store appRepos.Store, lgr zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, store, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// BuildDependencies initializes services, controllers and middleware.
func BuildDependencies(cfg *config.Config, store appRepos.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.JWTExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	sessionStore, err := session.NewStore(cfg.Session.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	deps.Sessions = session.NewManager(sessionStore, cfg.SessionTTL(), cfg.IsProduction())

	emailSender := email.NewSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, lgr)

	smsSender := sms.NewSender(sms.TwilioConfig{
		AccountSID:  cfg.Twilio.AccountSID,
		AuthToken:   cfg.Twilio.AuthToken,
		PhoneNumber: cfg.Twilio.PhoneNumber,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(store, deps.JWTService)
	deps.StudentService = appServices.NewStudentService(store)
	deps.CatalogService = appServices.NewCatalogService(store)
	deps.NotificationService = appServices.NewNotificationService(store, emailSender, smsSender)
	deps.ReportService = appServices.NewReportService(store)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(store, deps.Sessions, deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Sessions, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.ReportService, lgr)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.ReportService, deps.NotificationService, deps.AuthService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.CORS(cfg.Server.ClientOrigin))
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.CatalogController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	return router
}
