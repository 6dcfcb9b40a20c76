package models

import (
	"time"

	"gorm.io/gorm"
)

type Customer struct {
	ID                 uint64         `gorm:"primarykey" json:"id"`
	Name               string         `gorm:"type:varchar(255);not null" json:"name"`
	Address            string         `gorm:"type:varchar(255)" json:"address"`
	Phone              string         `gorm:"type:varchar(20)" json:"phone"`
	Email              string         `gorm:"type:varchar(255)" json:"email"`
	AssignedEmployeeID uint64         `gorm:"not null;index" json:"assigned_employee_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	AssignedEmployee Employee      `gorm:"foreignKey:AssignedEmployeeID" json:"assigned_employee,omitempty"`
	VisitRecords     []VisitRecord `gorm:"foreignKey:CustomerID" json:"-"`
}
