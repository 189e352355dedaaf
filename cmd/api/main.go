package main

import (
	"fmt"
	"net/http"
	"os"

	"oceanlk/internal/config"
	"oceanlk/internal/database"
	"oceanlk/internal/handlers"
	"oceanlk/internal/logger"
	"oceanlk/internal/middleware"
	"oceanlk/internal/services"
	"oceanlk/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "oceanlk/internal/docs" // Import swagger docs
)

// @title           OceanLK Admin API
// @version         1.0
// @description     Backend for the OceanLK Holdings corporate site. Content edits by admins are routed through a change review workflow; super admins review, approve, and reject pending changes.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	changeService := services.NewPendingChangeService(db)
	companyService := services.NewCompanyService(db)
	jobService := services.NewJobService(db)
	mediaService := services.NewMediaService(db)
	leadershipService := services.NewLeadershipService(db)
	eventService := services.NewEventService(db)
	statisticService := services.NewStatisticService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	changeHandler := handlers.NewPendingChangeHandler(changeService, auditService)
	companyHandler := handlers.NewCompanyHandler(companyService, changeService, auditService)
	jobHandler := handlers.NewJobHandler(jobService, changeService, auditService)
	mediaHandler := handlers.NewMediaHandler(mediaService, changeService, auditService)
	leadershipHandler := handlers.NewLeadershipHandler(leadershipService, changeService, auditService)
	eventHandler := handlers.NewEventHandler(eventService, changeService, auditService)
	statisticHandler := handlers.NewStatisticHandler(statisticService, changeService, auditService)
	auditHandler := handlers.NewAuditHandler(auditService)
	publicHandler := handlers.NewPublicHandler(companyService, jobService, mediaService, leadershipService, eventService, statisticService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public site routes (no authentication)
	public := v1.Group("/public")
	public.GET("/companies", publicHandler.ListCompanies)
	public.GET("/companies/:id", publicHandler.GetCompany)
	public.GET("/jobs", publicHandler.ListJobs)
	public.GET("/jobs/:id", publicHandler.GetJob)
	public.GET("/media", publicHandler.ListMedia)
	public.GET("/leadership", publicHandler.ListLeadership)
	public.GET("/events", publicHandler.ListEvents)
	public.GET("/events/:id", publicHandler.GetEvent)
	public.GET("/statistics", publicHandler.ListStatistics)

	// Auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes (admin or super admin)
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Change review routes available to every admin
	changes := protected.Group("/pending-changes")
	changes.GET("/my-submissions", changeHandler.ListMySubmissions)
	changes.GET("/:id", changeHandler.GetChange)
	changes.GET("/:id/diff", changeHandler.GetDiff)

	// Company routes
	companies := protected.Group("/companies")
	companies.GET("", companyHandler.ListCompanies)
	companies.GET("/:id", companyHandler.GetCompany)
	companies.POST("", companyHandler.CreateCompany)
	companies.PUT("/:id", companyHandler.UpdateCompany)
	companies.DELETE("/:id", companyHandler.DeleteCompany)

	// Job posting routes
	jobs := protected.Group("/jobs")
	jobs.GET("", jobHandler.ListJobs)
	jobs.GET("/:id", jobHandler.GetJob)
	jobs.POST("", jobHandler.CreateJob)
	jobs.PUT("/:id", jobHandler.UpdateJob)
	jobs.DELETE("/:id", jobHandler.DeleteJob)

	// Media routes
	media := protected.Group("/media")
	media.GET("", mediaHandler.ListMedia)
	media.GET("/:id", mediaHandler.GetMedia)
	media.POST("", mediaHandler.CreateMedia)
	media.PUT("/:id", mediaHandler.UpdateMedia)
	media.DELETE("/:id", mediaHandler.DeleteMedia)

	// Leadership routes
	leadership := protected.Group("/leadership")
	leadership.GET("", leadershipHandler.ListProfiles)
	leadership.GET("/:id", leadershipHandler.GetProfile)
	leadership.POST("", leadershipHandler.CreateProfile)
	leadership.PUT("/:id", leadershipHandler.UpdateProfile)
	leadership.DELETE("/:id", leadershipHandler.DeleteProfile)

	// Event routes
	events := protected.Group("/events")
	events.GET("", eventHandler.ListEvents)
	events.GET("/:id", eventHandler.GetEvent)
	events.POST("", eventHandler.CreateEvent)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)

	// Statistic routes
	statistics := protected.Group("/statistics")
	statistics.GET("", statisticHandler.ListStatistics)
	statistics.GET("/:id", statisticHandler.GetStatistic)
	statistics.POST("", statisticHandler.CreateStatistic)
	statistics.PUT("/:id", statisticHandler.UpdateStatistic)
	statistics.DELETE("/:id", statisticHandler.DeleteStatistic)

	// Super admin routes: review queue, user management, audit trail
	superAdmin := protected.Group("/")
	superAdmin.Use(middleware.RequireSuperAdmin())
	superAdmin.GET("/pending-changes", changeHandler.ListPending)
	superAdmin.POST("/pending-changes/:id/approve", changeHandler.Approve)
	superAdmin.POST("/pending-changes/:id/reject", changeHandler.Reject)
	superAdmin.POST("/users", userHandler.CreateUser)
	superAdmin.GET("/users", userHandler.ListUsers)
	superAdmin.DELETE("/users/:id", userHandler.DeactivateUser)
	superAdmin.GET("/audit-logs", auditHandler.ListLogs)

	log.Infof("Starting OceanLK backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
