package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pennywise/internal/auth"
	"pennywise/internal/handlers"
	"pennywise/internal/logger"
	"pennywise/internal/middleware"
	"pennywise/internal/models"
	"pennywise/internal/services"
	"pennywise/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Verifier *stubVerifier
}

// stubVerifier stands in for the real identity provider. Exchange
// returns whatever profile the test configured.
type stubVerifier struct {
	profile *auth.Profile
	err     error
}

func (v *stubVerifier) AuthCodeURL(state string) string {
	return "https://provider.test/consent?state=" + state
}

func (v *stubVerifier) Exchange(ctx context.Context, code string) (*auth.Profile, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.profile != nil {
		return v.profile, nil
	}
	return &auth.Profile{Subject: "sub-" + code, Email: code + "@test.com", Name: "Test User"}, nil
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
		&models.Category{},
		&models.Transaction{},
		&models.MonthlyBudget{},
		&models.CategoryBudget{},
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
	verifier := &stubVerifier{}

	// Services
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	budgetService := services.NewBudgetService(db, categoryService)
	dashboardService := services.NewDashboardService(db, budgetService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, verifier)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.GET("/google/login", authHandler.GoogleLogin)
	authRoutes.GET("/google/callback", authHandler.GoogleCallback)
	authRoutes.POST("/refresh", authHandler.Refresh)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetUserTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	budget := protected.Group("/budget")
	budget.GET("", budgetHandler.GetMonthlyBudget)
	budget.PUT("", budgetHandler.SetMonthlyBudget)
	budget.GET("/categories", budgetHandler.GetCategoryBudgets)
	budget.PUT("/categories/:categoryId", budgetHandler.SetCategoryBudget)

	return &testApp{DB: db, Router: router, Verifier: verifier}
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

// signInUser drives the provider round trip with the stub verifier
// and returns the access token, refresh token, and user ID.
func (app *testApp) signInUser(t *testing.T, email string) (accessToken, refreshToken string, userID float64) {
	t.Helper()

	app.Verifier.profile = &auth.Profile{
		Subject: "sub-" + email,
		Email:   email,
		Name:    "Test User",
	}

	loginRec := app.request("GET", "/api/v1/auth/google/login", "", "")
	if loginRec.Code != http.StatusFound {
		t.Fatalf("login redirect failed: %d %s", loginRec.Code, loginRec.Body.String())
	}

	location, err := url.Parse(loginRec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad redirect location: %v", err)
	}
	state := location.Query().Get("state")

	req := httptest.NewRequest("GET", "/api/v1/auth/google/callback?state="+state+"&code=test-code", nil)
	for _, cookie := range loginRec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("callback failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}
