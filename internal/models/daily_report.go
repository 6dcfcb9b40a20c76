package models

import (
	"time"

	"gorm.io/gorm"
)

type DailyReport struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	EmployeeID uint64         `gorm:"not null;index:idx_daily_reports_employee_date" json:"employee_id"`
	ReportDate time.Time      `gorm:"type:date;not null;index:idx_daily_reports_employee_date" json:"report_date"`
	Problem    string         `gorm:"type:text" json:"problem"`
	Plan       string         `gorm:"type:text" json:"plan"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations. Visit records and comments have no lifecycle of their own:
	// they are loaded with the parent and deleted with it.
	Employee     Employee      `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	VisitRecords []VisitRecord `gorm:"foreignKey:DailyReportID" json:"visit_records,omitempty"`
	Comments     []Comment     `gorm:"foreignKey:DailyReportID" json:"comments,omitempty"`
}
