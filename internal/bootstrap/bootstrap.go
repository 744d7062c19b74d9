package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/uniactivity/internal/app/controllers"
	appMigrations "github.com/yigit/uniactivity/internal/app/migrations"
	appRepos "github.com/yigit/uniactivity/internal/app/repositories"
	"github.com/yigit/uniactivity/internal/app/repositories/memory"
	appRoutes "github.com/yigit/uniactivity/internal/app/routes"
	appServices "github.com/yigit/uniactivity/internal/app/services"
	"github.com/yigit/uniactivity/internal/config"
	"github.com/yigit/uniactivity/internal/db"
	appMiddleware "github.com/yigit/uniactivity/internal/middleware"
	pkgAuth "github.com/yigit/uniactivity/internal/pkg/auth"
	"github.com/yigit/uniactivity/internal/pkg/logger"
	"github.com/yigit/uniactivity/internal/pkg/validation"
	"github.com/yigit/uniactivity/internal/seed"
)

// Storage holds the stores selected by database.driver. Database is nil for in-memory storage.
type Storage struct {
	Driver      string
	Database    *db.PostgresDB
	Users       appServices.UserStore
	Classes     appServices.ClassStore
	Assistances appServices.AssistanceStore
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Database != nil {
		s.Database.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage               *Storage
	UserService           appServices.UserService
	ClassService          appServices.ClassService
	InscriptionService    appServices.InscriptionService
	AssistanceService     appServices.AssistanceService
	HealthController      *appControllers.HealthController
	UserController        *appControllers.UserController
	ClassController       *appControllers.ClassController
	InscriptionController *appControllers.InscriptionController
	AssistanceController  *appControllers.AssistanceController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	JWTService            *pkgAuth.JWTService
	Logger                zerolog.Logger
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
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		},
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured storage, applies migrations for PostgreSQL and seeds
// default data when enabled.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	var storage *Storage
	if cfg.UsesMemoryStorage() {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		memDB := memory.Open()
		storage = &Storage{
			Driver:      config.DriverMemory,
			Users:       memory.NewUserRepository(memDB),
			Classes:     memory.NewClassRepository(memDB),
			Assistances: memory.NewAssistanceRepository(memDB),
		}
	} else {
		var err error
		storage, err = setupPostgres(ctx, cfg, lgr)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultData(ctx, storage.Users, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return storage, nil
}

func setupPostgres(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database, lgr).Up(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(database)
	return &Storage{
		Driver:      config.DriverPostgres,
		Database:    database,
		Users:       repos.UserRepository,
		Classes:     repos.ClassRepository,
		Assistances: repos.AssistanceRepository,
	}, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(cfg *config.Config, storage *Storage, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Storage: storage, Logger: lgr}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenIssuer: cfg.JWT.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.UserService = appServices.NewUserService(storage.Users, lgr)
	deps.ClassService = appServices.NewClassService(storage.Classes, lgr)
	deps.InscriptionService = appServices.NewInscriptionService(storage.Users, storage.Classes, storage.Assistances, lgr)
	deps.AssistanceService = appServices.NewAssistanceService(storage.Assistances, lgr)

	var pinger appControllers.Pinger
	if storage.Database != nil {
		pinger = storage.Database
	}
	deps.HealthController = appControllers.NewHealthController(storage.Driver, pinger)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.ClassController = appControllers.NewClassController(deps.ClassService, time.Now)
	deps.InscriptionController = appControllers.NewInscriptionController(deps.InscriptionService, time.Now)
	deps.AssistanceController = appControllers.NewAssistanceController(deps.AssistanceService, time.Now)

	return deps
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

	if err := validation.RegisterGinValidators(); err != nil {
		lgr.Fatal().Err(err).Msg("Failed to register request validators")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(lgr))

	appRoutes.SetupRouter(router,
		deps.HealthController,
		deps.UserController,
		deps.ClassController,
		deps.InscriptionController,
		deps.AssistanceController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
