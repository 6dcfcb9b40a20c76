package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/authz"
	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/repository"
)

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrReportAccessDenied   = errors.New("report is outside the caller's scope")
	ErrCommentNotAllowed    = errors.New("caller may not comment on this report")
	ErrInvalidVisitCustomer = errors.New("one or more visit records reference a customer that does not exist")
)

// reportPreloads is what a report detail always carries: visit records and
// comments have no lifecycle of their own.
var reportPreloads = []string{"Employee", "VisitRecords", "VisitRecords.Customer", "Comments", "Comments.Commenter"}

// ReportService handles daily report business logic. Every method takes the
// caller identity explicitly; visibility never comes from ambient state.
type ReportService struct {
	reportRepo repository.ReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo repository.ReportRepository) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
	}
}

// VisitInput represents one visit record in a create/update request
type VisitInput struct {
	CustomerID   uint64
	VisitTime    time.Time
	VisitContent string
}

// ListReportsInput represents filters for listing reports
type ListReportsInput struct {
	ReportDate *time.Time
	EmployeeID *uint64
	Page       int
	PageSize   int
}

// CreateReportInput represents input for creating a report
type CreateReportInput struct {
	ReportDate time.Time
	Problem    string
	Plan       string
	Visits     []VisitInput
}

// UpdateReportInput represents input for updating a report.
// The visit record set is replaced wholesale.
type UpdateReportInput struct {
	ReportDate *time.Time
	Problem    *string
	Plan       *string
	Visits     *[]VisitInput
}

// ListReports returns the reports visible to the caller
func (s *ReportService) ListReports(id authz.Identity, input ListReportsInput) ([]models.DailyReport, int64, error) {
	filter := repository.ReportFilter{
		Scope:      authz.ScopeReports(id),
		ReportDate: input.ReportDate,
		EmployeeID: input.EmployeeID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	}

	reports, total, err := s.reportRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}

	return reports, total, nil
}

// GetReport returns a report with its visits and comments if the caller
// may view it.
func (s *ReportService) GetReport(id authz.Identity, reportID uint64) (*models.DailyReport, error) {
	report, err := s.findReport(reportID)
	if err != nil {
		return nil, err
	}

	if !authz.CanViewReport(id, report) {
		return nil, ErrReportAccessDenied
	}

	return report, nil
}

// CreateReport creates a report authored by the caller, with its visit records
func (s *ReportService) CreateReport(id authz.Identity, input CreateReportInput) (*models.DailyReport, error) {
	if err := s.ensureCustomersExist(input.Visits); err != nil {
		return nil, err
	}

	report := &models.DailyReport{
		EmployeeID:   id.EmployeeID,
		ReportDate:   input.ReportDate,
		Problem:      input.Problem,
		Plan:         input.Plan,
		VisitRecords: toVisitRecords(input.Visits),
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return s.findReport(report.ID)
}

// UpdateReport updates a report. Only the author may mutate it, regardless
// of role.
func (s *ReportService) UpdateReport(id authz.Identity, reportID uint64, input UpdateReportInput) (*models.DailyReport, error) {
	report, err := s.findReport(reportID)
	if err != nil {
		return nil, err
	}

	if !authz.CanViewReport(id, report) || !authz.CanEditReport(id, report) {
		return nil, ErrReportAccessDenied
	}

	if input.ReportDate != nil {
		report.ReportDate = *input.ReportDate
	}
	if input.Problem != nil {
		report.Problem = *input.Problem
	}
	if input.Plan != nil {
		report.Plan = *input.Plan
	}

	var replacement *[]models.VisitRecord
	if input.Visits != nil {
		if err := s.ensureCustomersExist(*input.Visits); err != nil {
			return nil, err
		}
		records := toVisitRecords(*input.Visits)
		replacement = &records
	}

	if err := s.reportRepo.Update(report, replacement); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return s.findReport(report.ID)
}

// DeleteReport deletes a report with its visits and comments. Author only.
func (s *ReportService) DeleteReport(id authz.Identity, reportID uint64) error {
	report, err := s.findReport(reportID)
	if err != nil {
		return err
	}

	if !authz.CanViewReport(id, report) || !authz.CanDeleteReport(id, report) {
		return ErrReportAccessDenied
	}

	if err := s.reportRepo.Delete(reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	return nil
}

// AddComment appends a comment when the caller holds comment capability
// for the report.
func (s *ReportService) AddComment(id authz.Identity, reportID uint64, body string) (*models.Comment, error) {
	report, err := s.findReport(reportID)
	if err != nil {
		return nil, err
	}

	if !authz.CanComment(id, report) {
		return nil, ErrCommentNotAllowed
	}

	comment := &models.Comment{
		DailyReportID: reportID,
		CommenterID:   id.EmployeeID,
		Body:          body,
	}

	if err := s.reportRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	return comment, nil
}

// DashboardSummary holds the role-scoped dashboard counters
type DashboardSummary struct {
	ReportsInScope int64
	ReportsToday   int64
}

// Dashboard returns the caller-scoped summary counters
func (s *ReportService) Dashboard(id authz.Identity) (*DashboardSummary, error) {
	scope := authz.ScopeReports(id)

	total, err := s.reportRepo.CountScoped(scope, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	today := time.Now()
	todayCount, err := s.reportRepo.CountScoped(scope, &today)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's reports: %w", err)
	}

	return &DashboardSummary{
		ReportsInScope: total,
		ReportsToday:   todayCount,
	}, nil
}

func (s *ReportService) findReport(reportID uint64) (*models.DailyReport, error) {
	report, err := s.reportRepo.FindByID(reportID, reportPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return report, nil
}

func (s *ReportService) ensureCustomersExist(visits []VisitInput) error {
	if len(visits) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(visits))
	seen := make(map[uint64]struct{}, len(visits))
	for _, v := range visits {
		if _, ok := seen[v.CustomerID]; ok {
			continue
		}
		seen[v.CustomerID] = struct{}{}
		ids = append(ids, v.CustomerID)
	}

	count, err := s.reportRepo.CountCustomersByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to check visit customers: %w", err)
	}
	if int(count) != len(ids) {
		return ErrInvalidVisitCustomer
	}

	return nil
}

func toVisitRecords(visits []VisitInput) []models.VisitRecord {
	records := make([]models.VisitRecord, len(visits))
	for i, v := range visits {
		records[i] = models.VisitRecord{
			CustomerID:   v.CustomerID,
			VisitTime:    v.VisitTime,
			VisitContent: v.VisitContent,
		}
	}
	return records
}
