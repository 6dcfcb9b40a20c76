package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is append-only: there are no edit or delete operations.
type Comment struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	DailyReportID uint64         `gorm:"not null;index" json:"daily_report_id"`
	CommenterID   uint64         `gorm:"not null" json:"commenter_id"`
	Body          string         `gorm:"type:text;not null" json:"body"`
	CreatedAt     time.Time      `json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	DailyReport DailyReport `gorm:"foreignKey:DailyReportID" json:"-"`
	Commenter   Employee    `gorm:"foreignKey:CommenterID" json:"commenter,omitempty"`
}
