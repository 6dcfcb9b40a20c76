package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleSales   Role = "SALES"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSales, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type Employee struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Department   string         `gorm:"type:varchar(255)" json:"department"`
	Position     string         `gorm:"type:varchar(255)" json:"position"`
	Role         Role           `gorm:"type:varchar(20);not null;default:'SALES'" json:"role"`
	ManagerID    *uint64        `gorm:"index" json:"manager_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager      *Employee     `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Subordinates []Employee    `gorm:"foreignKey:ManagerID" json:"-"`
	Customers    []Customer    `gorm:"foreignKey:AssignedEmployeeID" json:"-"`
	Reports      []DailyReport `gorm:"foreignKey:EmployeeID" json:"-"`
}
