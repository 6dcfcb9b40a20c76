package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesdesk/daily-report-api/internal/dto"
	apierrors "github.com/salesdesk/daily-report-api/internal/errors"
	"github.com/salesdesk/daily-report-api/internal/models"
	"github.com/salesdesk/daily-report-api/internal/services"
	"github.com/salesdesk/daily-report-api/internal/utils"
)

// EmployeeHandler serves the employee master-data routes (ADMIN only,
// enforced by the route guard) plus the options endpoint.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// ListEmployees returns a paginated employee list
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	employees, total, err := h.employeeService.ListEmployees(params.Page, params.Limit)
	if err != nil {
		slog.Error("failed to list employees", slog.Any("error", err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ListEnvelope(
		dto.ToEmployeeDTOs(employees),
		dto.NewListMeta(params.Page, params.Limit, total),
	))
}

// ListOptions returns id+name pairs for dropdowns. Open to every
// authenticated role, unlike the management routes.
func (h *EmployeeHandler) ListOptions(c *gin.Context) {
	employees, err := h.employeeService.ListOptions()
	if err != nil {
		slog.Error("failed to list employee options", slog.Any("error", err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToEmployeeOptionDTOs(employees)))
}

// GetEmployee returns a single employee
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToEmployeeDTO(*employee)))
}

// CreateEmployee creates a new employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	type CreateEmployeeRequest struct {
		Name       string  `json:"name" binding:"required,max=255"`
		Email      string  `json:"email" binding:"required,email,max=255"`
		Password   string  `json:"password" binding:"required,min=8"`
		Department string  `json:"department" binding:"max=255"`
		Position   string  `json:"position" binding:"max=255"`
		Role       string  `json:"role" binding:"required,oneof=SALES MANAGER ADMIN"`
		ManagerID  *uint64 `json:"manager_id"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	employee, err := h.employeeService.CreateEmployee(services.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Department: req.Department,
		Position:   req.Position,
		Role:       models.Role(req.Role),
		ManagerID:  req.ManagerID,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope(dto.ToEmployeeDTO(*employee)))
}

// UpdateEmployee updates an existing employee
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	type UpdateEmployeeRequest struct {
		Name         *string `json:"name" binding:"omitempty,max=255"`
		Email        *string `json:"email" binding:"omitempty,email,max=255"`
		Department   *string `json:"department" binding:"omitempty,max=255"`
		Position     *string `json:"position" binding:"omitempty,max=255"`
		Role         *string `json:"role" binding:"omitempty,oneof=SALES MANAGER ADMIN"`
		ManagerID    *uint64 `json:"manager_id"`
		ClearManager bool    `json:"clear_manager"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	input := services.UpdateEmployeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Department:   req.Department,
		Position:     req.Position,
		ManagerID:    req.ManagerID,
		ClearManager: req.ClearManager,
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		input.Role = &role
	}

	employee, err := h.employeeService.UpdateEmployee(id, input)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToEmployeeDTO(*employee)))
}

// DeleteEmployee deletes an employee
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(id); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(gin.H{"message": "Employee deleted"}))
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.AlreadyExists(c, err.Error())
	case errors.Is(err, services.ErrEmployeeReferenced):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrSelfManagement),
		errors.Is(err, services.ErrManagerNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		slog.Error("employee operation failed", slog.Any("error", err))
		apierrors.InternalError(c, "")
	}
}
