package models

import (
	"time"

	"gorm.io/gorm"
)

type VisitRecord struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	DailyReportID uint64         `gorm:"not null;index" json:"daily_report_id"`
	CustomerID    uint64         `gorm:"not null;index" json:"customer_id"`
	VisitTime     time.Time      `gorm:"not null" json:"visit_time"`
	VisitContent  string         `gorm:"type:text" json:"visit_content"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	DailyReport DailyReport `gorm:"foreignKey:DailyReportID" json:"-"`
	Customer    Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}
