package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/salesdesk/daily-report-api/internal/config"
	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/database"
	"github.com/salesdesk/daily-report-api/internal/handlers"
	"github.com/salesdesk/daily-report-api/internal/logger"
	"github.com/salesdesk/daily-report-api/internal/middleware"
	"github.com/salesdesk/daily-report-api/internal/repository"
	"github.com/salesdesk/daily-report-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.Init(cfg.Logger)

	// Set Gin mode
	switch cfg.Server.Mode {
	case config.ModeProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.ModeTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logr.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := database.GetDB().DB()
	if err != nil {
		logr.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Run migrations
	if err := database.Migrate(sqlDB, cfg.Database.Driver); err != nil {
		logr.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(database.GetDB())
	customerRepo := repository.NewCustomerRepository(database.GetDB())
	reportRepo := repository.NewReportRepository(database.GetDB())

	// Initialize services
	authService := services.NewAuthService(employeeRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	customerService := services.NewCustomerService(customerRepo, employeeRepo)
	reportService := services.NewReportService(reportRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)

	handlers.RegisterValidations()

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logr))

	// Session middleware with a signed cookie store: the session token is
	// self-contained, there is no server-side session state.
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	isProduction := cfg.Server.Mode == config.ModeProduction
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAgeSecs,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	requireAuth := middleware.RequireAuth(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	r.GET(constants.PathLogin, middleware.RedirectIfAuthenticated(), authHandler.LoginPage)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	// Dashboard, the safe landing page
	r.GET(constants.PathDashboard, requireAuth, dashboardHandler.Dashboard)

	// Employee routes: options for every authenticated role, management
	// for admins only
	employees := r.Group("/employees")
	employees.Use(requireAuth)
	{
		employees.GET("/options", employeeHandler.ListOptions)

		admin := employees.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", employeeHandler.ListEmployees)
			admin.POST("", employeeHandler.CreateEmployee)
			admin.GET("/:id", employeeHandler.GetEmployee)
			admin.PUT("/:id", employeeHandler.UpdateEmployee)
			admin.DELETE("/:id", employeeHandler.DeleteEmployee)
		}
	}

	// Customer routes
	customers := r.Group("/customers")
	customers.Use(requireAuth)
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}

	// Report routes
	reports := r.Group(constants.PathReports)
	reports.Use(requireAuth)
	{
		reports.GET("", reportHandler.ListReports)
		reports.POST("", reportHandler.CreateReport)
		reports.GET("/:id", reportHandler.GetReport)
		reports.PUT("/:id", reportHandler.UpdateReport)
		reports.DELETE("/:id", reportHandler.DeleteReport)
		reports.POST("/:id/comments", reportHandler.AddComment)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logr.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logr.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logr.Info("server is starting",
		slog.String("addr", server.Addr),
		slog.String("base_url", cfg.Server.BaseURL),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logr.Error("could not listen", slog.String("addr", server.Addr), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logr.Info("server stopped")
}
