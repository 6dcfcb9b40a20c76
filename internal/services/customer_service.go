package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/repository"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCustomerReferenced = errors.New("customer is referenced by a visit record")
	ErrAssigneeNotFound   = errors.New("assigned employee does not exist")
)

// CustomerService handles customer master-data business logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository, employeeRepo repository.EmployeeRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
	}
}

// CustomerInput represents the writable customer fields
type CustomerInput struct {
	Name               string
	Address            string
	Phone              string
	Email              string
	AssignedEmployeeID uint64
}

// ListCustomers returns customers with pagination
func (s *CustomerService) ListCustomers(page, pageSize int) ([]models.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

// GetCustomer returns a single customer
func (s *CustomerService) GetCustomer(id uint64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return customer, nil
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(input CustomerInput) (*models.Customer, error) {
	if err := s.ensureAssigneeExists(input.AssignedEmployeeID); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Name:               input.Name,
		Address:            input.Address,
		Phone:              input.Phone,
		Email:              input.Email,
		AssignedEmployeeID: input.AssignedEmployeeID,
	}

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return s.GetCustomer(customer.ID)
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(id uint64, input CustomerInput) (*models.Customer, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	if input.AssignedEmployeeID != customer.AssignedEmployeeID {
		if err := s.ensureAssigneeExists(input.AssignedEmployeeID); err != nil {
			return nil, err
		}
	}

	customer.Name = input.Name
	customer.Address = input.Address
	customer.Phone = input.Phone
	customer.Email = input.Email
	customer.AssignedEmployeeID = input.AssignedEmployeeID

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return s.GetCustomer(customer.ID)
}

// DeleteCustomer deletes a customer unless a visit record references it.
// The guard blocks the delete; it never cascades into visit records.
func (s *CustomerService) DeleteCustomer(id uint64) error {
	if _, err := s.GetCustomer(id); err != nil {
		return err
	}

	referenced, err := s.customerRepo.IsReferencedByVisit(id)
	if err != nil {
		return fmt.Errorf("failed to check visit references: %w", err)
	}
	if referenced {
		return ErrCustomerReferenced
	}

	if err := s.customerRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

func (s *CustomerService) ensureAssigneeExists(employeeID uint64) error {
	if _, err := s.employeeRepo.FindByID(employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotFound
		}
		return fmt.Errorf("failed to check assigned employee: %w", err)
	}
	return nil
}
