package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/coursehub/internal/app/auth"
	appControllers "github.com/yigit/coursehub/internal/app/controllers"
	appMigrations "github.com/yigit/coursehub/internal/app/migrations"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	appRoutes "github.com/yigit/coursehub/internal/app/routes"
	appServices "github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/config"
	"github.com/yigit/coursehub/internal/db"
	appMiddleware "github.com/yigit/coursehub/internal/middleware"
	pkgAuth "github.com/yigit/coursehub/internal/pkg/auth"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/pkg/monitoring"
	"github.com/yigit/coursehub/internal/pkg/security"
	"github.com/yigit/coursehub/internal/pkg/websocket"
	"github.com/yigit/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	AuthService    appServices.AuthService
	AuthMiddleware *appMiddleware.AuthMiddleware
	ChatHub        *websocket.Hub
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   true,
		},
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool, lgr).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.AdminEnabled {
		err := seed.CreateDefaultAdmin(ctx, appRepos.NewPrincipalRepository(dbPool), seed.AdminConfig{
			UserName: cfg.Seed.AdminUserName,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		}, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)
	r := deps.Repos

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(
		r.Course, r.Module, r.Lesson, r.Quiz, r.Assignment, r.Enrollment,
		logger.Component("authz"),
	)

	deps.ChatHub = websocket.NewHub(logger.Component("chat_hub"))
	wsHandler := websocket.NewHandler(deps.ChatHub, websocket.Options{
		SendBuffer:     cfg.Chat.SendBuffer,
		PingInterval:   cfg.Chat.PingInterval,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, logger.Component("chat_ws"))

	svcLogger := logger.Component("service")
	deps.AuthService = appServices.NewAuthService(r.Principal, deps.JWTService, svcLogger)
	courseService := appServices.NewCourseService(r.Course, r.Principal, deps.AuthzService, svcLogger)
	detailsService := appServices.NewCourseDetailsService(
		r.Course, r.Module, r.Lesson, r.Quiz, r.Assignment, r.Enrollment,
		cfg.Aggregation.MaxConcurrency, svcLogger,
	)
	moduleService := appServices.NewModuleService(r.Course, r.Module, deps.AuthzService, svcLogger)
	lessonService := appServices.NewLessonService(r.Course, r.Module, r.Lesson, deps.AuthzService, svcLogger)
	quizService := appServices.NewQuizService(r.Course, r.Module, r.Quiz, r.Enrollment, deps.AuthzService, svcLogger)
	assignmentService := appServices.NewAssignmentService(r.Course, r.Module, r.Assignment, deps.AuthzService, svcLogger)
	submissionService := appServices.NewSubmissionService(r.Assignment, r.Submission, r.Enrollment, deps.AuthzService, svcLogger)
	reviewService := appServices.NewReviewService(r.Course, r.Review, r.Enrollment, svcLogger)
	chatService := appServices.NewChatService(r.Course, r.Chat, deps.AuthzService, deps.ChatHub, svcLogger)
	enrollmentService := appServices.NewEnrollmentService(r.Course, r.Enrollment, r.Principal, svcLogger)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	ctlLogger := logger.Component("controller")
	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, ctlLogger),
		Course:     appControllers.NewCourseController(courseService, detailsService, ctlLogger),
		Module:     appControllers.NewModuleController(moduleService, ctlLogger),
		Lesson:     appControllers.NewLessonController(lessonService, ctlLogger),
		Quiz:       appControllers.NewQuizController(quizService, ctlLogger),
		Assignment: appControllers.NewAssignmentController(assignmentService, ctlLogger),
		Submission: appControllers.NewSubmissionController(submissionService, ctlLogger),
		Review:     appControllers.NewReviewController(reviewService, ctlLogger),
		Chat:       appControllers.NewChatController(chatService, wsHandler, ctlLogger),
		Enrollment: appControllers.NewEnrollmentController(enrollmentService, ctlLogger),
		Instructor: appControllers.NewInstructorController(courseService, ctlLogger),
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

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		monitoring.MetricsMiddleware(),
		security.Secure(),
		security.CORS(cfg.Server.AllowedOrigins),
	)
	if cfg.RateLimit.Enabled {
		router.Use(security.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware())
	}
	router.NoRoute(appMiddleware.NotFound)

	appRoutes.SetupSwagger(router)
	router.GET("/metrics", monitoring.PrometheusHandler(monitoring.NewRegistry()))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
