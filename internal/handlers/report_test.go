package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/models"
)

// ReportHandlerTestSuite covers the report routes and their visibility
// semantics end to end.
type ReportHandlerTestSuite struct {
	suite.Suite
	env *testEnv

	manager *models.Employee
	salesA  *models.Employee
	salesB  *models.Employee
	admin   *models.Employee
}

func (s *ReportHandlerTestSuite) SetupTest() {
	s.env = setupTestEnv(s.T())

	s.manager = s.env.createEmployee(s.T(), "manager", models.RoleManager, nil)
	s.salesA = s.env.createEmployee(s.T(), "sales-a", models.RoleSales, &s.manager.ID)
	s.salesB = s.env.createEmployee(s.T(), "sales-b", models.RoleSales, nil)
	s.admin = s.env.createEmployee(s.T(), "admin", models.RoleAdmin, nil)
}

func (s *ReportHandlerTestSuite) listIDs(cookies []*http.Cookie) []uint64 {
	w := s.env.do(s.T(), http.MethodGet, "/reports", nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)

	data := decodeData(s.T(), w)["data"].([]interface{})
	ids := make([]uint64, len(data))
	for i, item := range data {
		ids[i] = uint64(item.(map[string]interface{})["id"].(float64))
	}
	return ids
}

func (s *ReportHandlerTestSuite) TestCreateAndVisibility() {
	customer := s.env.createCustomer(s.T(), "Acme Corp", s.salesA.ID)

	// SALES A creates a report with one visit record.
	cookiesA := s.env.login(s.T(), s.salesA)
	w := s.env.do(s.T(), http.MethodPost, "/reports", map[string]interface{}{
		"report_date": "2026-08-27",
		"problem":     "price pushback",
		"plan":        "prepare volume discount",
		"visit_records": []map[string]interface{}{
			{
				"customer_id":   customer.ID,
				"visit_time":    time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
				"visit_content": "quarterly review",
			},
		},
	}, cookiesA)
	s.Require().Equal(http.StatusCreated, w.Code)

	created := decodeData(s.T(), w)["data"].(map[string]interface{})
	reportID := uint64(created["id"].(float64))
	visits := created["visit_records"].([]interface{})
	s.Require().Len(visits, 1)

	// The manager of A sees the report.
	cookiesM := s.env.login(s.T(), s.manager)
	s.Require().Contains(s.listIDs(cookiesM), reportID)

	// An unrelated SALES user does not.
	cookiesB := s.env.login(s.T(), s.salesB)
	s.Require().NotContains(s.listIDs(cookiesB), reportID)

	// An admin sees everything.
	cookiesAdmin := s.env.login(s.T(), s.admin)
	s.Require().Contains(s.listIDs(cookiesAdmin), reportID)
}

func (s *ReportHandlerTestSuite) TestGetReport_OutOfScopeRedirects() {
	report := s.env.createReport(s.T(), s.salesB.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))

	// salesB has no manager, so s.manager is not their manager and not
	// the author: the detail request redirects to the report list.
	cookies := s.env.login(s.T(), s.manager)
	w := s.env.do(s.T(), http.MethodGet, fmt.Sprintf("/reports/%d", report.ID), nil, cookies)

	s.Require().Equal(http.StatusFound, w.Code)
	s.Require().Equal(constants.PathReports, w.Header().Get("Location"))
}

func (s *ReportHandlerTestSuite) TestGetReport_NotFoundDistinctFromDenied() {
	cookies := s.env.login(s.T(), s.salesA)

	w := s.env.do(s.T(), http.MethodGet, "/reports/9999", nil, cookies)
	s.Require().Equal(http.StatusNotFound, w.Code)

	w = s.env.do(s.T(), http.MethodGet, "/reports/not-a-number", nil, cookies)
	s.Require().Equal(http.StatusNotFound, w.Code)
}

func (s *ReportHandlerTestSuite) TestUpdateReport_AuthorOnly() {
	report := s.env.createReport(s.T(), s.salesA.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))

	// The manager may view but not edit a subordinate's report.
	cookiesM := s.env.login(s.T(), s.manager)
	w := s.env.do(s.T(), http.MethodPut, fmt.Sprintf("/reports/%d", report.ID), map[string]interface{}{
		"problem": "rewritten by manager",
	}, cookiesM)
	s.Require().Equal(http.StatusFound, w.Code)
	s.Require().Equal(constants.PathReports, w.Header().Get("Location"))

	// The author may.
	cookiesA := s.env.login(s.T(), s.salesA)
	w = s.env.do(s.T(), http.MethodPut, fmt.Sprintf("/reports/%d", report.ID), map[string]interface{}{
		"problem": "updated problem",
	}, cookiesA)
	s.Require().Equal(http.StatusOK, w.Code)

	var reloaded models.DailyReport
	s.Require().NoError(s.env.db.First(&reloaded, report.ID).Error)
	s.Require().Equal("updated problem", reloaded.Problem)
}

func (s *ReportHandlerTestSuite) TestUpdateReport_ReplacesVisitSet() {
	customer := s.env.createCustomer(s.T(), "Acme Corp", s.salesA.ID)
	other := s.env.createCustomer(s.T(), "Globex", s.salesA.ID)

	report := s.env.createReport(s.T(), s.salesA.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(s.env.db.Create(&models.VisitRecord{
		DailyReportID: report.ID,
		CustomerID:    customer.ID,
		VisitTime:     time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
	}).Error)

	cookies := s.env.login(s.T(), s.salesA)
	w := s.env.do(s.T(), http.MethodPut, fmt.Sprintf("/reports/%d", report.ID), map[string]interface{}{
		"visit_records": []map[string]interface{}{
			{
				"customer_id": other.ID,
				"visit_time":  time.Date(2026, 8, 27, 14, 0, 0, 0, time.UTC),
			},
		},
	}, cookies)
	s.Require().Equal(http.StatusOK, w.Code)

	var visits []models.VisitRecord
	s.Require().NoError(s.env.db.Where("daily_report_id = ?", report.ID).Find(&visits).Error)
	s.Require().Len(visits, 1)
	s.Require().Equal(other.ID, visits[0].CustomerID)
}

func (s *ReportHandlerTestSuite) TestDeleteReport_CascadesVisitsAndComments() {
	customer := s.env.createCustomer(s.T(), "Acme Corp", s.salesA.ID)
	report := s.env.createReport(s.T(), s.salesA.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(s.env.db.Create(&models.VisitRecord{
		DailyReportID: report.ID,
		CustomerID:    customer.ID,
		VisitTime:     time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
	}).Error)
	s.Require().NoError(s.env.db.Create(&models.Comment{
		DailyReportID: report.ID,
		CommenterID:   s.manager.ID,
		Body:          "looks fine",
	}).Error)

	cookies := s.env.login(s.T(), s.salesA)
	w := s.env.do(s.T(), http.MethodDelete, fmt.Sprintf("/reports/%d", report.ID), nil, cookies)
	s.Require().Equal(http.StatusOK, w.Code)

	var count int64
	s.env.db.Model(&models.VisitRecord{}).Where("daily_report_id = ?", report.ID).Count(&count)
	s.Require().Zero(count)
	s.env.db.Model(&models.Comment{}).Where("daily_report_id = ?", report.ID).Count(&count)
	s.Require().Zero(count)
}

func (s *ReportHandlerTestSuite) TestCreateReport_UnknownVisitCustomer() {
	cookies := s.env.login(s.T(), s.salesA)

	w := s.env.do(s.T(), http.MethodPost, "/reports", map[string]interface{}{
		"report_date": "2026-08-27",
		"visit_records": []map[string]interface{}{
			{
				"customer_id": 424242,
				"visit_time":  time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC),
			},
		},
	}, cookies)

	s.Require().Equal(http.StatusBadRequest, w.Code)
}

func (s *ReportHandlerTestSuite) TestComment_SalesAlwaysRejected() {
	// Even on their own report.
	report := s.env.createReport(s.T(), s.salesA.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))

	cookies := s.env.login(s.T(), s.salesA)
	w := s.env.do(s.T(), http.MethodPost, fmt.Sprintf("/reports/%d/comments", report.ID), map[string]interface{}{
		"body": "note to self",
	}, cookies)

	s.Require().Equal(http.StatusFound, w.Code)
	s.Require().Equal(constants.PathReports, w.Header().Get("Location"))

	var count int64
	s.env.db.Model(&models.Comment{}).Count(&count)
	s.Require().Zero(count)
}

func (s *ReportHandlerTestSuite) TestComment_ManagerAndAdmin() {
	report := s.env.createReport(s.T(), s.salesA.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))

	cookiesM := s.env.login(s.T(), s.manager)
	w := s.env.do(s.T(), http.MethodPost, fmt.Sprintf("/reports/%d/comments", report.ID), map[string]interface{}{
		"body": "follow up with the discount plan",
	}, cookiesM)
	s.Require().Equal(http.StatusCreated, w.Code)

	cookiesAdmin := s.env.login(s.T(), s.admin)
	w = s.env.do(s.T(), http.MethodPost, fmt.Sprintf("/reports/%d/comments", report.ID), map[string]interface{}{
		"body": "noted",
	}, cookiesAdmin)
	s.Require().Equal(http.StatusCreated, w.Code)

	// A manager outside the author's chain is redirected.
	outsider := s.env.createEmployee(s.T(), "other-manager", models.RoleManager, nil)
	cookiesO := s.env.login(s.T(), outsider)
	w = s.env.do(s.T(), http.MethodPost, fmt.Sprintf("/reports/%d/comments", report.ID), map[string]interface{}{
		"body": "should not land",
	}, cookiesO)
	s.Require().Equal(http.StatusFound, w.Code)
}

func (s *ReportHandlerTestSuite) TestDashboard() {
	s.env.createReport(s.T(), s.salesA.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))
	s.env.createReport(s.T(), s.salesB.ID, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC))

	cookies := s.env.login(s.T(), s.salesA)
	w := s.env.do(s.T(), http.MethodGet, constants.PathDashboard, nil, cookies)

	s.Require().Equal(http.StatusOK, w.Code)
	data := decodeData(s.T(), w)["data"].(map[string]interface{})
	s.Require().Equal(float64(1), data["reports_in_scope"])
	s.Require().Equal(string(models.RoleSales), data["role"])
}

func TestReportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
