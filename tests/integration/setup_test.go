package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"oceanlk/internal/handlers"
	"oceanlk/internal/logger"
	"oceanlk/internal/middleware"
	"oceanlk/internal/models"
	"oceanlk/internal/services"
	"oceanlk/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Company{},
		&models.JobPosting{},
		&models.MediaAsset{},
		&models.LeadershipProfile{},
		&models.Event{},
		&models.Statistic{},
		&models.AuditLog{},
		&models.PendingChange{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	changeService := services.NewPendingChangeService(db)
	companyService := services.NewCompanyService(db)
	jobService := services.NewJobService(db)
	mediaService := services.NewMediaService(db)
	leadershipService := services.NewLeadershipService(db)
	eventService := services.NewEventService(db)
	statisticService := services.NewStatisticService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	userHandler := handlers.NewUserHandler(userService, auditService)
	changeHandler := handlers.NewPendingChangeHandler(changeService, auditService)
	companyHandler := handlers.NewCompanyHandler(companyService, changeService, auditService)
	jobHandler := handlers.NewJobHandler(jobService, changeService, auditService)
	publicHandler := handlers.NewPublicHandler(companyService, jobService, mediaService, leadershipService, eventService, statisticService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	public := v1.Group("/public")
	public.GET("/companies", publicHandler.ListCompanies)
	public.GET("/jobs", publicHandler.ListJobs)

	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	changes := protected.Group("/pending-changes")
	changes.GET("/my-submissions", changeHandler.ListMySubmissions)
	changes.GET("/:id", changeHandler.GetChange)
	changes.GET("/:id/diff", changeHandler.GetDiff)

	companies := protected.Group("/companies")
	companies.GET("", companyHandler.ListCompanies)
	companies.GET("/:id", companyHandler.GetCompany)
	companies.POST("", companyHandler.CreateCompany)
	companies.PUT("/:id", companyHandler.UpdateCompany)
	companies.DELETE("/:id", companyHandler.DeleteCompany)

	jobs := protected.Group("/jobs")
	jobs.GET("", jobHandler.ListJobs)
	jobs.POST("", jobHandler.CreateJob)

	superAdmin := protected.Group("/")
	superAdmin.Use(middleware.RequireSuperAdmin())
	superAdmin.GET("/pending-changes", changeHandler.ListPending)
	superAdmin.POST("/pending-changes/:id/approve", changeHandler.Approve)
	superAdmin.POST("/pending-changes/:id/reject", changeHandler.Reject)
	superAdmin.POST("/users", userHandler.CreateUser)
	superAdmin.GET("/users", userHandler.ListUsers)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// seedUser inserts an active account directly and returns it.
func (app *testApp) seedUser(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := app.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}
