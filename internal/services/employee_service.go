package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already exists")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidRole          = errors.New("invalid role")
	ErrSelfManagement       = errors.New("an employee cannot be their own manager")
	ErrManagerNotFound      = errors.New("manager does not exist")
	ErrEmployeeReferenced   = errors.New("employee is referenced by reports, customers, or subordinates")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// EmployeeService handles employee master-data business logic
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
	}
}

// CreateEmployeeInput represents input for creating an employee
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Position   string
	Role       models.Role
	ManagerID  *uint64
}

// UpdateEmployeeInput represents input for updating an employee.
// Nil fields are left unchanged; ClearManager removes the manager link.
type UpdateEmployeeInput struct {
	Name         *string
	Email        *string
	Department   *string
	Position     *string
	Role         *models.Role
	ManagerID    *uint64
	ClearManager bool
}

// ListEmployees returns employees with pagination
func (s *EmployeeService) ListEmployees(page, pageSize int) ([]models.Employee, int64, error) {
	employees, total, err := s.employeeRepo.List(page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// ListOptions returns id and name pairs for dropdowns
func (s *EmployeeService) ListOptions() ([]models.Employee, error) {
	employees, err := s.employeeRepo.ListOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to list employee options: %w", err)
	}
	return employees, nil
}

// GetEmployee returns a single employee
func (s *EmployeeService) GetEmployee(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// CreateEmployee creates a new employee
func (s *EmployeeService) CreateEmployee(input CreateEmployeeInput) (*models.Employee, error) {
	email := strings.TrimSpace(input.Email)
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.employeeRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if err := s.validateManager(input.ManagerID, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	employee := &models.Employee{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Department:   input.Department,
		Position:     input.Position,
		Role:         input.Role,
		ManagerID:    input.ManagerID,
	}

	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return employee, nil
}

// UpdateEmployee updates an existing employee
func (s *EmployeeService) UpdateEmployee(id uint64, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		employee.Name = *input.Name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email != employee.Email {
			if _, err := s.employeeRepo.FindByEmail(email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
		}
		employee.Email = email
	}
	if input.Department != nil {
		employee.Department = *input.Department
	}
	if input.Position != nil {
		employee.Position = *input.Position
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, ErrInvalidRole
		}
		employee.Role = *input.Role
	}
	if input.ClearManager {
		employee.ManagerID = nil
	} else if input.ManagerID != nil {
		if err := s.validateManager(input.ManagerID, id); err != nil {
			return nil, err
		}
		employee.ManagerID = input.ManagerID
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee, nil
}

// DeleteEmployee deletes an employee unless something still references them
func (s *EmployeeService) DeleteEmployee(id uint64) error {
	if _, err := s.GetEmployee(id); err != nil {
		return err
	}

	referenced, err := s.employeeRepo.IsReferenced(id)
	if err != nil {
		return fmt.Errorf("failed to check employee references: %w", err)
	}
	if referenced {
		return ErrEmployeeReferenced
	}

	if err := s.employeeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}

// validateManager rejects self-management and dangling manager references.
func (s *EmployeeService) validateManager(managerID *uint64, employeeID uint64) error {
	if managerID == nil {
		return nil
	}
	if employeeID != 0 && *managerID == employeeID {
		return ErrSelfManagement
	}
	if _, err := s.employeeRepo.FindByID(*managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrManagerNotFound
		}
		return fmt.Errorf("failed to check manager: %w", err)
	}
	return nil
}
