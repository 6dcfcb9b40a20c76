package repository

import (
	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/database"
	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/utils"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

// Create creates a new customer
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// FindByID finds a customer by ID with the assigned employee preloaded
func (r *GormCustomerRepository) FindByID(id uint64) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Preload("AssignedEmployee").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List retrieves customers with pagination
func (r *GormCustomerRepository) List(page, pageSize int) ([]models.Customer, int64, error) {
	var customers []models.Customer

	query := r.db.Model(&models.Customer{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.PaginationParams{Page: page, Limit: pageSize, Offset: (page - 1) * pageSize}
	if err := query.
		Preload("AssignedEmployee").
		Order("customers.id ASC").
		Scopes(database.Paginate(params)).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

// Update updates a customer
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete soft deletes a customer
func (r *GormCustomerRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Customer{}, id).Error
}

// IsReferencedByVisit reports whether any visit record references the customer
func (r *GormCustomerRepository) IsReferencedByVisit(id uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.VisitRecord{}).
		Where("customer_id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
