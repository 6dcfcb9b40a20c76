package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/database"
	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/utils"
)

// GormReportRepository is a GORM implementation of ReportRepository
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &GormReportRepository{db: db}
}

// Create creates a report and its visit records in one transaction.
// Visit records ride on the gorm association from the model.
func (r *GormReportRepository) Create(report *models.DailyReport) error {
	return r.db.Create(report).Error
}

// FindByID finds a report by ID with optional preloading
func (r *GormReportRepository) FindByID(id uint64, preload ...string) (*models.DailyReport, error) {
	var report models.DailyReport
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&report, id).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

// List retrieves reports restricted by the filter's visibility scope
func (r *GormReportRepository) List(filter ReportFilter) ([]models.DailyReport, int64, error) {
	var reports []models.DailyReport

	query := r.db.Model(&models.DailyReport{})
	if filter.Scope != nil {
		query = filter.Scope(query)
	}
	if filter.EmployeeID != nil {
		query = query.Where("daily_reports.employee_id = ?", *filter.EmployeeID)
	}
	if filter.ReportDate != nil {
		start, end := dayRange(*filter.ReportDate)
		query = query.Where("daily_reports.report_date >= ? AND daily_reports.report_date < ?", start, end)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("daily_reports.report_date DESC, daily_reports.id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Employee").Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// Update saves the report and, when a replacement set is given, swaps the
// visit records atomically.
func (r *GormReportRepository) Update(report *models.DailyReport, visits *[]models.VisitRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("VisitRecords", "Comments", "Employee").Save(report).Error; err != nil {
			return err
		}

		if visits == nil {
			return nil
		}

		if err := tx.Where("daily_report_id = ?", report.ID).
			Delete(&models.VisitRecord{}).Error; err != nil {
			return err
		}

		replacement := *visits
		if len(replacement) == 0 {
			return nil
		}

		for i := range replacement {
			replacement[i].ID = 0
			replacement[i].DailyReportID = report.ID
		}
		return tx.Create(&replacement).Error
	})
}

// Delete removes the report together with its visit records and comments
func (r *GormReportRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("daily_report_id = ?", id).Delete(&models.VisitRecord{}).Error; err != nil {
			return err
		}

		if err := tx.Where("daily_report_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.DailyReport{}, id).Error
	})
}

// AddComment appends a comment to a report
func (r *GormReportRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// CountScoped counts reports visible through the given scope
func (r *GormReportRepository) CountScoped(scope func(db *gorm.DB) *gorm.DB, date *time.Time) (int64, error) {
	query := r.db.Model(&models.DailyReport{})
	if scope != nil {
		query = scope(query)
	}
	if date != nil {
		start, end := dayRange(*date)
		query = query.Where("daily_reports.report_date >= ? AND daily_reports.report_date < ?", start, end)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// dayRange returns the half-open [midnight, midnight+24h) window for the
// date, keeping the comparison portable across date and datetime columns.
func dayRange(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

// CountCustomersByIDs counts how many of the given customer IDs exist
func (r *GormReportRepository) CountCustomersByIDs(customerIDs []uint64) (int64, error) {
	if len(customerIDs) == 0 {
		return 0, nil
	}

	var count int64
	err := r.db.Model(&models.Customer{}).
		Where("id IN ?", customerIDs).
		Count(&count).Error
	return count, err
}
