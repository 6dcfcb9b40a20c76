package dto

import (
	"github.com/salesdesk/daily-report-api/internal/models"
)

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID                 uint64          `json:"id"`
	Name               string          `json:"name"`
	Address            string          `json:"address"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	AssignedEmployeeID uint64          `json:"assigned_employee_id"`
	AssignedEmployee   *EmployeeRefDTO `json:"assigned_employee,omitempty"`
}

// ToCustomerDTO converts a Customer model to CustomerDTO
func ToCustomerDTO(customer models.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:                 customer.ID,
		Name:               customer.Name,
		Address:            customer.Address,
		Phone:              customer.Phone,
		Email:              customer.Email,
		AssignedEmployeeID: customer.AssignedEmployeeID,
	}

	// Include assigned employee if preloaded
	if customer.AssignedEmployee.ID != 0 {
		ref := ToEmployeeRefDTO(customer.AssignedEmployee)
		dto.AssignedEmployee = &ref
	}

	return dto
}

// ToCustomerDTOs converts a slice of customers
func ToCustomerDTOs(customers []models.Customer) []CustomerDTO {
	dtos := make([]CustomerDTO, len(customers))
	for i, c := range customers {
		dtos[i] = ToCustomerDTO(c)
	}
	return dtos
}
