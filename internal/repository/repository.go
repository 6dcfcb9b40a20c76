package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/models"
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByEmail finds an employee by email
	FindByEmail(email string) (*models.Employee, error)

	// List retrieves employees with pagination
	List(page, pageSize int) ([]models.Employee, int64, error)

	// ListOptions retrieves id and name of every employee, for dropdowns
	ListOptions() ([]models.Employee, error)

	// Update updates an employee
	Update(employee *models.Employee) error

	// Delete soft deletes an employee
	Delete(id uint64) error

	// IsReferenced reports whether the employee is referenced by a report,
	// an assigned customer, or a subordinate
	IsReferenced(id uint64) (bool, error)
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// Create creates a new customer
	Create(customer *models.Customer) error

	// FindByID finds a customer by ID
	FindByID(id uint64) (*models.Customer, error)

	// List retrieves customers with pagination
	List(page, pageSize int) ([]models.Customer, int64, error)

	// Update updates a customer
	Update(customer *models.Customer) error

	// Delete soft deletes a customer
	Delete(id uint64) error

	// IsReferencedByVisit reports whether any visit record references the customer
	IsReferencedByVisit(id uint64) (bool, error)
}

// ReportFilter holds filtering options for listing daily reports
type ReportFilter struct {
	// Scope is the caller-visibility predicate produced by the authz rule-set.
	Scope      func(db *gorm.DB) *gorm.DB
	EmployeeID *uint64
	ReportDate *time.Time
	Page       int
	PageSize   int
}

// ReportRepository defines the interface for daily report data access
type ReportRepository interface {
	// Create creates a report together with its visit records
	Create(report *models.DailyReport) error

	// FindByID finds a report by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.DailyReport, error)

	// List retrieves reports restricted by the filter's visibility scope
	List(filter ReportFilter) ([]models.DailyReport, int64, error)

	// Update saves the report. A non-nil visits slice replaces the visit
	// record set wholesale; nil leaves it untouched.
	Update(report *models.DailyReport, visits *[]models.VisitRecord) error

	// Delete removes the report with its visit records and comments
	Delete(id uint64) error

	// AddComment appends a comment to a report
	AddComment(comment *models.Comment) error

	// CountScoped counts reports visible through the given scope, optionally
	// restricted to a single date
	CountScoped(scope func(db *gorm.DB) *gorm.DB, date *time.Time) (int64, error)

	// CountCustomersByIDs counts how many of the given customer IDs exist
	CountCustomersByIDs(customerIDs []uint64) (int64, error)
}
