package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/dto"
	apierrors "github.com/salesdesk/daily-report-api/internal/errors"
	"github.com/salesdesk/daily-report-api/internal/middleware"
	"github.com/salesdesk/daily-report-api/internal/services"
)

// DashboardHandler serves the role-scoped landing page, which doubles as
// the safe redirect target for authorization failures.
type DashboardHandler struct {
	reportService *services.ReportService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reportService *services.ReportService) *DashboardHandler {
	return &DashboardHandler{
		reportService: reportService,
	}
}

// Dashboard returns the caller-scoped summary
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		c.Redirect(http.StatusFound, constants.PathLogin)
		return
	}

	summary, err := h.reportService.Dashboard(identity)
	if err != nil {
		slog.Error("failed to build dashboard", slog.Any("error", err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(gin.H{
		"employee_id":      identity.EmployeeID,
		"role":             identity.Role,
		"reports_in_scope": summary.ReportsInScope,
		"reports_today":    summary.ReportsToday,
	}))
}
