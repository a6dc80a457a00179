package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/noriyal/madrasa-portal/internal/app/controllers"
	"github.com/noriyal/madrasa-portal/internal/app/repositories"
	appRoutes "github.com/noriyal/madrasa-portal/internal/app/routes"
	appServices "github.com/noriyal/madrasa-portal/internal/app/services"
	"github.com/noriyal/madrasa-portal/internal/app/store"
	"github.com/noriyal/madrasa-portal/internal/config"
	"github.com/noriyal/madrasa-portal/internal/db"
	appMiddleware "github.com/noriyal/madrasa-portal/internal/middleware"
	pkgAuth "github.com/noriyal/madrasa-portal/internal/pkg/auth"
	"github.com/noriyal/madrasa-portal/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store               *store.Store
	KV                  repositories.KV
	AuthService         appServices.AuthService
	AdmissionService    appServices.AdmissionService
	StudentService      appServices.StudentService
	MarksService        appServices.MarksService
	SettingsService     appServices.SettingsService
	AuthController      *appControllers.AuthController
	AdmissionController *appControllers.AdmissionController
	StudentController   *appControllers.StudentController
	MarksController     *appControllers.MarksController
	SettingsController  *appControllers.SettingsController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	// Optional .env for local development; real env vars still win.
	_ = godotenv.Load()

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

// SetupStorage opens the key-value backend selected by configuration
// and loads the record store from it.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (*store.Store, repositories.KV, error) {
	var kv repositories.KV

	switch cfg.Storage.Driver {
	case "postgres":
		lgr.Info().Msg("Opening postgres storage backend...")
		pool, err := db.NewPostgresPool(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		pgkv, err := repositories.NewPostgresKV(context.Background(), pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to prepare postgres storage: %w", err)
		}
		kv = pgkv
	default:
		lgr.Info().Str("path", cfg.Storage.Path).Msg("Opening sqlite storage backend...")
		skv, err := repositories.OpenSQLiteKV(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		kv = skv
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.Open(ctx, kv, lgr)
	if err != nil {
		kv.Close()
		return nil, nil, fmt.Errorf("failed to load record store: %w", err)
	}

	return st, kv, nil
}

// BuildDependencies initializes services, controllers and middleware.
func BuildDependencies(cfg *config.Config, st *store.Store, kv repositories.KV, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: st, KV: kv, Logger: lgr}

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		accessTokenExp = 12 * time.Hour
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(cfg.Admin.Password, deps.JWTService, lgr)
	deps.AdmissionService = appServices.NewAdmissionService(st, lgr)
	deps.StudentService = appServices.NewStudentService(st, lgr)
	deps.MarksService = appServices.NewMarksService(st, lgr)
	deps.SettingsService = appServices.NewSettingsService(st, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AdmissionController = appControllers.NewAdmissionController(deps.AdmissionService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.MarksController = appControllers.NewMarksController(deps.MarksService)
	deps.SettingsController = appControllers.NewSettingsController(deps.SettingsService)

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

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AdmissionController,
		deps.StudentController,
		deps.MarksController,
		deps.SettingsController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
