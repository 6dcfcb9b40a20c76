package repository

import (
	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/database"
	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/utils"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail finds an employee by email
func (r *GormEmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List retrieves employees with pagination, managers preloaded
func (r *GormEmployeeRepository) List(page, pageSize int) ([]models.Employee, int64, error) {
	var employees []models.Employee

	query := r.db.Model(&models.Employee{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.PaginationParams{Page: page, Limit: pageSize, Offset: (page - 1) * pageSize}
	if err := query.
		Preload("Manager").
		Order("employees.id ASC").
		Scopes(database.Paginate(params)).
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListOptions retrieves id and name pairs for dropdowns
func (r *GormEmployeeRepository) ListOptions() ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.
		Select("id", "name").
		Order("name ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Update updates an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete soft deletes an employee
func (r *GormEmployeeRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Employee{}, id).Error
}

// IsReferenced reports whether the employee still owns reports, customers,
// or subordinates. Such an employee must not be deleted.
func (r *GormEmployeeRepository) IsReferenced(id uint64) (bool, error) {
	var count int64

	if err := r.db.Model(&models.DailyReport{}).
		Where("employee_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := r.db.Model(&models.Customer{}).
		Where("assigned_employee_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	if err := r.db.Model(&models.Employee{}).
		Where("manager_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
