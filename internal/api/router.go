package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mdc-internships/interntracker/internal/api/handler"
	"github.com/mdc-internships/interntracker/internal/api/middleware"
	"github.com/mdc-internships/interntracker/internal/core/domain"
	"github.com/mdc-internships/interntracker/internal/core/service"
	"github.com/mdc-internships/interntracker/internal/infrastructure/config"
	mongodb "github.com/mdc-internships/interntracker/internal/infrastructure/db/mongo"
	redisdb "github.com/mdc-internships/interntracker/internal/infrastructure/db/redis"
	"github.com/mdc-internships/interntracker/internal/report"
	"github.com/mdc-internships/interntracker/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("interntracker"))

	// --- Repositories ---
	timeEntryRepo := mongodb.NewTimeEntryRepository(db, logger.Component("timeentry_repo"))
	projectRepo := mongodb.NewProjectRepository(db, logger.Component("project_repo"))
	internRepo := mongodb.NewInternRepository(db)
	todoRepo := mongodb.NewTodoRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb, 12*time.Hour)

	// --- Services ---
	timeClockService := service.NewTimeClockService(timeEntryRepo, logger.Component("timeclock"))
	projectService := service.NewProjectService(projectRepo, logger.Component("projects"))
	internService := service.NewInternService(internRepo, logger.Component("interns"))
	todoService := service.NewTodoService(todoRepo, logger.Component("todos"))
	sessionService := service.NewSessionService(
		internRepo,
		sessionStore,
		cfg.AdminUsernames,
		cfg.AdminAccessCodeHash,
		cfg.JWTSecret,
		24*time.Hour,
		logger.Component("sessions"),
	)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(sessionService)
	clockHandler := handler.NewTimeClockHandler(timeClockService)
	projectHandler := handler.NewProjectHandler(projectService, report.NewHTMLRenderer())
	internHandler := handler.NewInternHandler(internService)
	todoHandler := handler.NewTodoHandler(todoService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMW := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMW)

	v1.GET("/session", authHandler.Current)
	v1.POST("/session/mode", authHandler.ToggleMode)
	v1.PUT("/session/active-intern", authHandler.SetActiveIntern)

	clock := v1.Group("/clock")
	clock.POST("/in", clockHandler.ClockIn)
	clock.POST("/out", clockHandler.ClockOut)
	clock.POST("/entries", clockHandler.Backfill)
	clock.POST("/fix", clockHandler.FixClockOut)
	clock.GET("/status", clockHandler.Status)
	clock.GET("/today", clockHandler.Today)
	clock.GET("/days", clockHandler.Days)

	projects := v1.Group("/projects")
	projects.POST("", projectHandler.Upsert)
	projects.GET("", projectHandler.List)
	projects.GET("/:id", projectHandler.Get)
	projects.DELETE("/:id", projectHandler.Delete, adminOnly)
	projects.POST("/:id/activities", projectHandler.AddActivity)
	projects.GET("/:id/activities", projectHandler.ListActivities)
	projects.PUT("/:id/activities", projectHandler.SaveActivities)
	projects.PUT("/:id/activities/:activity_id", projectHandler.UpdateActivity)
	projects.DELETE("/:id/activities/:activity_id", projectHandler.DeleteActivity)
	projects.GET("/:id/export", projectHandler.Export)
	projects.GET("/:id/report", projectHandler.Report)

	interns := v1.Group("/interns")
	interns.GET("", internHandler.List)
	interns.GET("/:id", internHandler.Get)
	interns.POST("", internHandler.Upsert, adminOnly)
	interns.DELETE("/:id", internHandler.Delete, adminOnly)

	todos := v1.Group("/todos")
	todos.GET("", todoHandler.Grouped)
	todos.POST("/weeks", todoHandler.AddWeek)
	todos.POST("/items", todoHandler.AddItem)
	todos.POST("/items/:id/toggle", todoHandler.ToggleDone)

	// --- Operational surfaces ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
