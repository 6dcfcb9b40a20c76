package dto

import (
	"github.com/salesdesk/daily-report-api/internal/models"
)

// EmployeeDTO represents an employee in API responses
type EmployeeDTO struct {
	ID         uint64          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	Role       models.Role     `json:"role"`
	ManagerID  *uint64         `json:"manager_id"`
	Manager    *EmployeeRefDTO `json:"manager,omitempty"`
}

// EmployeeRefDTO is the minimal employee reference embedded in other resources
type EmployeeRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// EmployeeOptionDTO is an id+name pair for dropdowns
type EmployeeOptionDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:         employee.ID,
		Name:       employee.Name,
		Email:      employee.Email,
		Department: employee.Department,
		Position:   employee.Position,
		Role:       employee.Role,
		ManagerID:  employee.ManagerID,
	}

	// Include manager if preloaded
	if employee.Manager != nil && employee.Manager.ID != 0 {
		dto.Manager = &EmployeeRefDTO{
			ID:   employee.Manager.ID,
			Name: employee.Manager.Name,
		}
	}

	return dto
}

// ToEmployeeRefDTO converts an Employee model to its minimal reference
func ToEmployeeRefDTO(employee models.Employee) EmployeeRefDTO {
	return EmployeeRefDTO{
		ID:   employee.ID,
		Name: employee.Name,
	}
}

// ToEmployeeDTOs converts a slice of employees
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = ToEmployeeDTO(e)
	}
	return dtos
}

// ToEmployeeOptionDTOs converts employees into dropdown options
func ToEmployeeOptionDTOs(employees []models.Employee) []EmployeeOptionDTO {
	options := make([]EmployeeOptionDTO, len(employees))
	for i, e := range employees {
		options[i] = EmployeeOptionDTO{ID: e.ID, Name: e.Name}
	}
	return options
}
