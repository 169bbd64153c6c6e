package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pennywise/internal/auth"
	"pennywise/internal/config"
	"pennywise/internal/database"
	"pennywise/internal/handlers"
	"pennywise/internal/logger"
	"pennywise/internal/middleware"
	"pennywise/internal/services"
	"pennywise/internal/validator"
)

// @title           Pennywise API
// @version         1.0
// @description     Pennywise is a personal finance tracker: record income and expenses, organize them into categories, set monthly budgets, and follow no-spend challenges on the dashboard.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	budgetService := services.NewBudgetService(db, categoryService)
	dashboardService := services.NewDashboardService(db, budgetService)

	// Handlers
	verifier := auth.NewGoogleVerifier(
		appConfig.GoogleClientID,
		appConfig.GoogleClientSecret,
		appConfig.GoogleRedirectURL,
	)
	authHandler := handlers.NewAuthHandler(userService, verifier)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{appConfig.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	authRoutes := v1.Group("/auth")
	authRoutes.GET("/google/login", authHandler.GoogleLogin)
	authRoutes.GET("/google/callback", authHandler.GoogleCallback)
	authRoutes.POST("/refresh", authHandler.Refresh)

	// Protected routes
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

	log.Infof("Starting Pennywise backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
