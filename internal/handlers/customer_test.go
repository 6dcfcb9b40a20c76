package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/salesdesk/daily-report-api/internal/models"
)

// CustomerHandlerTestSuite covers the customer CRUD routes
type CustomerHandlerTestSuite struct {
	suite.Suite
	env     *testEnv
	sales   *models.Employee
	cookies []*http.Cookie
}

func (s *CustomerHandlerTestSuite) SetupTest() {
	s.env = setupTestEnv(s.T())
	s.sales = s.env.createEmployee(s.T(), "sales", models.RoleSales, nil)
	s.cookies = s.env.login(s.T(), s.sales)
}

func (s *CustomerHandlerTestSuite) TestCreateCustomer() {
	w := s.env.do(s.T(), http.MethodPost, "/customers", map[string]interface{}{
		"name":                 "Acme Corp",
		"address":              "1-2-3 Chiyoda",
		"phone":                "03-1234-5678",
		"email":                "contact@acme.example.com",
		"assigned_employee_id": s.sales.ID,
	}, s.cookies)

	s.Require().Equal(http.StatusCreated, w.Code)
	data := decodeData(s.T(), w)["data"].(map[string]interface{})
	s.Require().Equal("Acme Corp", data["name"])
}

func (s *CustomerHandlerTestSuite) TestCreateCustomer_InvalidPhone() {
	w := s.env.do(s.T(), http.MethodPost, "/customers", map[string]interface{}{
		"name":                 "Acme Corp",
		"phone":                "not a phone",
		"assigned_employee_id": s.sales.ID,
	}, s.cookies)

	s.Require().Equal(http.StatusBadRequest, w.Code)
	errBody := decodeData(s.T(), w)["error"].(map[string]interface{})
	details := errBody["details"].(map[string]interface{})
	s.Require().Contains(details, "phone")
}

func (s *CustomerHandlerTestSuite) TestUpdateCustomer_EmailTooLong() {
	customer := s.env.createCustomer(s.T(), "Acme Corp", s.sales.ID)

	longEmail := strings.Repeat("a", 250) + "@example.com"
	w := s.env.do(s.T(), http.MethodPut, "/customers/1", map[string]interface{}{
		"name":                 "Acme Corp",
		"email":                longEmail,
		"assigned_employee_id": s.sales.ID,
	}, s.cookies)

	s.Require().Equal(http.StatusBadRequest, w.Code)
	errBody := decodeData(s.T(), w)["error"].(map[string]interface{})
	s.Require().Equal("INVALID_INPUT", errBody["code"])
	details := errBody["details"].(map[string]interface{})
	s.Require().Contains(details, "email")

	// The row must be untouched.
	var reloaded models.Customer
	s.Require().NoError(s.env.db.First(&reloaded, customer.ID).Error)
	s.Require().Empty(reloaded.Email)
}

func (s *CustomerHandlerTestSuite) TestDeleteCustomer() {
	customer := s.env.createCustomer(s.T(), "Acme Corp", s.sales.ID)

	w := s.env.do(s.T(), http.MethodDelete, "/customers/1", nil, s.cookies)
	s.Require().Equal(http.StatusOK, w.Code)

	var count int64
	s.env.db.Model(&models.Customer{}).Where("id = ?", customer.ID).Count(&count)
	s.Require().Zero(count)
}

func (s *CustomerHandlerTestSuite) TestDeleteCustomer_ReferencedByVisit() {
	customer := s.env.createCustomer(s.T(), "Acme Corp", s.sales.ID)
	report := s.env.createReport(s.T(), s.sales.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))

	visit := &models.VisitRecord{
		DailyReportID: report.ID,
		CustomerID:    customer.ID,
		VisitTime:     time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
	}
	s.Require().NoError(s.env.db.Create(visit).Error)

	w := s.env.do(s.T(), http.MethodDelete, "/customers/1", nil, s.cookies)

	s.Require().Equal(http.StatusConflict, w.Code)
	errBody := decodeData(s.T(), w)["error"].(map[string]interface{})
	s.Require().Equal("CONFLICT", errBody["code"])

	// The customer row stays intact.
	var count int64
	s.env.db.Model(&models.Customer{}).Where("id = ?", customer.ID).Count(&count)
	s.Require().Equal(int64(1), count)
}

func (s *CustomerHandlerTestSuite) TestGetCustomer_MalformedID() {
	w := s.env.do(s.T(), http.MethodGet, "/customers/not-a-number", nil, s.cookies)

	s.Require().Equal(http.StatusNotFound, w.Code)
	errBody := decodeData(s.T(), w)["error"].(map[string]interface{})
	s.Require().Equal("NOT_FOUND", errBody["code"])
}

func TestCustomerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}
