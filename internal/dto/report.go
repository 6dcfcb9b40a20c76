package dto

import (
	"time"

	"github.com/salesdesk/daily-report-api/internal/models"
)

// VisitRecordDTO represents a visit record nested under a report
type VisitRecordDTO struct {
	ID           uint64       `json:"id"`
	CustomerID   uint64       `json:"customer_id"`
	Customer     *CustomerDTO `json:"customer,omitempty"`
	VisitTime    time.Time    `json:"visit_time"`
	VisitContent string       `json:"visit_content"`
}

// CommentDTO represents a comment nested under a report
type CommentDTO struct {
	ID          uint64          `json:"id"`
	CommenterID uint64          `json:"commenter_id"`
	Commenter   *EmployeeRefDTO `json:"commenter,omitempty"`
	Body        string          `json:"body"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReportDTO represents a daily report in detail responses
type ReportDTO struct {
	ID           uint64           `json:"id"`
	EmployeeID   uint64           `json:"employee_id"`
	Employee     *EmployeeRefDTO  `json:"employee,omitempty"`
	ReportDate   string           `json:"report_date"`
	Problem      string           `json:"problem"`
	Plan         string           `json:"plan"`
	VisitRecords []VisitRecordDTO `json:"visit_records"`
	Comments     []CommentDTO     `json:"comments"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ReportListItemDTO represents a report in list responses (minimal data)
type ReportListItemDTO struct {
	ID         uint64          `json:"id"`
	EmployeeID uint64          `json:"employee_id"`
	Employee   *EmployeeRefDTO `json:"employee,omitempty"`
	ReportDate string          `json:"report_date"`
	Problem    string          `json:"problem"`
	Plan       string          `json:"plan"`
	CreatedAt  time.Time       `json:"created_at"`
}

const reportDateLayout = "2006-01-02"

// ToVisitRecordDTO converts a VisitRecord model to VisitRecordDTO
func ToVisitRecordDTO(visit models.VisitRecord) VisitRecordDTO {
	dto := VisitRecordDTO{
		ID:           visit.ID,
		CustomerID:   visit.CustomerID,
		VisitTime:    visit.VisitTime,
		VisitContent: visit.VisitContent,
	}

	if visit.Customer.ID != 0 {
		customer := ToCustomerDTO(visit.Customer)
		dto.Customer = &customer
	}

	return dto
}

// ToCommentDTO converts a Comment model to CommentDTO
func ToCommentDTO(comment models.Comment) CommentDTO {
	dto := CommentDTO{
		ID:          comment.ID,
		CommenterID: comment.CommenterID,
		Body:        comment.Body,
		CreatedAt:   comment.CreatedAt,
	}

	if comment.Commenter.ID != 0 {
		ref := ToEmployeeRefDTO(comment.Commenter)
		dto.Commenter = &ref
	}

	return dto
}

// ToReportDTO converts a DailyReport model to ReportDTO
func ToReportDTO(report models.DailyReport) ReportDTO {
	dto := ReportDTO{
		ID:           report.ID,
		EmployeeID:   report.EmployeeID,
		ReportDate:   report.ReportDate.Format(reportDateLayout),
		Problem:      report.Problem,
		Plan:         report.Plan,
		VisitRecords: make([]VisitRecordDTO, len(report.VisitRecords)),
		Comments:     make([]CommentDTO, len(report.Comments)),
		CreatedAt:    report.CreatedAt,
		UpdatedAt:    report.UpdatedAt,
	}

	if report.Employee.ID != 0 {
		ref := ToEmployeeRefDTO(report.Employee)
		dto.Employee = &ref
	}

	for i, visit := range report.VisitRecords {
		dto.VisitRecords[i] = ToVisitRecordDTO(visit)
	}
	for i, comment := range report.Comments {
		dto.Comments[i] = ToCommentDTO(comment)
	}

	return dto
}

// ToReportListItemDTO converts a DailyReport model to its list representation
func ToReportListItemDTO(report models.DailyReport) ReportListItemDTO {
	dto := ReportListItemDTO{
		ID:         report.ID,
		EmployeeID: report.EmployeeID,
		ReportDate: report.ReportDate.Format(reportDateLayout),
		Problem:    report.Problem,
		Plan:       report.Plan,
		CreatedAt:  report.CreatedAt,
	}

	if report.Employee.ID != 0 {
		ref := ToEmployeeRefDTO(report.Employee)
		dto.Employee = &ref
	}

	return dto
}

// ToReportListItemDTOs converts a slice of reports
func ToReportListItemDTOs(reports []models.DailyReport) []ReportListItemDTO {
	dtos := make([]ReportListItemDTO, len(reports))
	for i, r := range reports {
		dtos[i] = ToReportListItemDTO(r)
	}
	return dtos
}
