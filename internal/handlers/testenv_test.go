package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/database"
	"github.com/salesdesk/daily-report-api/internal/middleware"
	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/repository"
	"github.com/salesdesk/daily-report-api/internal/services"
)

const testPassword = "password123"

// testEnv wires the full router against an in-memory database, the same
// shape main builds.
type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	RegisterValidations()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, database.AutoMigrate(db))
	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	employeeRepo := repository.NewEmployeeRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	reportRepo := repository.NewReportRepository(db)

	authService := services.NewAuthService(employeeRepo)
	employeeService := services.NewEmployeeService(employeeRepo)
	customerService := services.NewCustomerService(customerRepo, employeeRepo)
	reportService := services.NewReportService(reportRepo)

	authHandler := NewAuthHandler(authService)
	employeeHandler := NewEmployeeHandler(employeeService)
	customerHandler := NewCustomerHandler(customerService)
	reportHandler := NewReportHandler(reportService)
	dashboardHandler := NewDashboardHandler(reportService)

	r := gin.New()
	store := cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	requireAuth := middleware.RequireAuth(authService)

	r.GET(constants.PathLogin, middleware.RedirectIfAuthenticated(), authHandler.LoginPage)
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", requireAuth, authHandler.Me)
	}

	r.GET(constants.PathDashboard, requireAuth, dashboardHandler.Dashboard)

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

	customers := r.Group("/customers")
	customers.Use(requireAuth)
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("/:id", customerHandler.GetCustomer)
		customers.PUT("/:id", customerHandler.UpdateCustomer)
		customers.DELETE("/:id", customerHandler.DeleteCustomer)
	}

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

	return &testEnv{db: db, router: r}
}

func (e *testEnv) createEmployee(t *testing.T, name string, role models.Role, managerID *uint64) *models.Employee {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	employee := &models.Employee{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		ManagerID:    managerID,
	}
	require.NoError(t, e.db.Create(employee).Error)
	return employee
}

func (e *testEnv) createCustomer(t *testing.T, name string, assignedEmployeeID uint64) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		Name:               name,
		AssignedEmployeeID: assignedEmployeeID,
	}
	require.NoError(t, e.db.Create(customer).Error)
	return customer
}

func (e *testEnv) createReport(t *testing.T, employeeID uint64, date time.Time) *models.DailyReport {
	t.Helper()

	report := &models.DailyReport{
		EmployeeID: employeeID,
		ReportDate: date,
		Problem:    "problem",
		Plan:       "plan",
	}
	require.NoError(t, e.db.Create(report).Error)
	return report
}

// login signs the employee in and returns the session cookies.
func (e *testEnv) login(t *testing.T, employee *models.Employee) []*http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"email":    employee.Email,
		"password": testPassword,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

// do sends a request through the router with the given session cookies.
func (e *testEnv) do(t *testing.T, method, url string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}
