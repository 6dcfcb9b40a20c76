package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/dto"
	apierrors "github.com/salesdesk/daily-report-api/internal/errors"
	"github.com/salesdesk/daily-report-api/internal/middleware"
	"github.com/salesdesk/daily-report-api/internal/services"
	"github.com/salesdesk/daily-report-api/internal/utils"
)

const reportDateLayout = "2006-01-02"

// ReportHandler serves the daily report routes. Every operation goes
// through the visibility rule-set with the caller identity from the
// route guard.
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// VisitRequest is one visit record in a report payload
type VisitRequest struct {
	CustomerID   uint64    `json:"customer_id" binding:"required"`
	VisitTime    time.Time `json:"visit_time" binding:"required"`
	VisitContent string    `json:"visit_content" binding:"max=2000"`
}

// ListReports returns the reports visible to the caller
func (h *ReportHandler) ListReports(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	params := utils.GetPaginationParams(c)
	input := services.ListReportsInput{
		Page:     params.Page,
		PageSize: params.Limit,
	}

	if dateStr := c.Query("report_date"); dateStr != "" {
		date, err := time.Parse(reportDateLayout, dateStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid report_date, expected YYYY-MM-DD")
			return
		}
		input.ReportDate = &date
	}
	if employeeIDStr := c.Query("employee_id"); employeeIDStr != "" {
		employeeID, err := strconv.ParseUint(employeeIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid employee_id")
			return
		}
		input.EmployeeID = &employeeID
	}

	reports, total, err := h.reportService.ListReports(identity, input)
	if err != nil {
		slog.Error("failed to list reports", slog.Any("error", err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ListEnvelope(
		dto.ToReportListItemDTOs(reports),
		dto.NewListMeta(params.Page, params.Limit, total),
	))
}

// GetReport returns a report detail with visits and comments
func (h *ReportHandler) GetReport(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	report, err := h.reportService.GetReport(identity, id)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToReportDTO(*report)))
}

// CreateReport creates a report authored by the caller
func (h *ReportHandler) CreateReport(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	type CreateReportRequest struct {
		ReportDate string         `json:"report_date" binding:"required,datetime=2006-01-02"`
		Problem    string         `json:"problem" binding:"max=2000"`
		Plan       string         `json:"plan" binding:"max=2000"`
		Visits     []VisitRequest `json:"visit_records" binding:"omitempty,dive"`
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	reportDate, _ := time.Parse(reportDateLayout, req.ReportDate)

	report, err := h.reportService.CreateReport(identity, services.CreateReportInput{
		ReportDate: reportDate,
		Problem:    req.Problem,
		Plan:       req.Plan,
		Visits:     toVisitInputs(req.Visits),
	})
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope(dto.ToReportDTO(*report)))
}

// UpdateReport updates a report. Authorship only; violations redirect.
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateReportRequest struct {
		ReportDate *string         `json:"report_date" binding:"omitempty,datetime=2006-01-02"`
		Problem    *string         `json:"problem" binding:"omitempty,max=2000"`
		Plan       *string         `json:"plan" binding:"omitempty,max=2000"`
		Visits     *[]VisitRequest `json:"visit_records" binding:"omitempty,dive"`
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	input := services.UpdateReportInput{
		Problem: req.Problem,
		Plan:    req.Plan,
	}
	if req.ReportDate != nil {
		date, _ := time.Parse(reportDateLayout, *req.ReportDate)
		input.ReportDate = &date
	}
	if req.Visits != nil {
		visits := toVisitInputs(*req.Visits)
		input.Visits = &visits
	}

	report, err := h.reportService.UpdateReport(identity, id, input)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToReportDTO(*report)))
}

// DeleteReport deletes a report with its visits and comments
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.reportService.DeleteReport(identity, id); err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(gin.H{"message": "Report deleted"}))
}

// AddComment appends a comment to a report
func (h *ReportHandler) AddComment(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	type CommentRequest struct {
		Body string `json:"body" binding:"required,max=2000"`
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	comment, err := h.reportService.AddComment(identity, id, req.Body)
	if err != nil {
		respondReportError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope(dto.ToCommentDTO(*comment)))
}

// respondReportError maps service errors to responses. Authorization
// violations become redirects to the report list so resource existence
// never leaks.
func respondReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReportNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrReportAccessDenied),
		errors.Is(err, services.ErrCommentNotAllowed):
		c.Redirect(http.StatusFound, constants.PathReports)
	case errors.Is(err, services.ErrInvalidVisitCustomer):
		apierrors.BadRequest(c, err.Error())
	default:
		slog.Error("report operation failed", slog.Any("error", err))
		apierrors.InternalError(c, "")
	}
}

func toVisitInputs(visits []VisitRequest) []services.VisitInput {
	inputs := make([]services.VisitInput, len(visits))
	for i, v := range visits {
		inputs[i] = services.VisitInput{
			CustomerID:   v.CustomerID,
			VisitTime:    v.VisitTime,
			VisitContent: v.VisitContent,
		}
	}
	return inputs
}
