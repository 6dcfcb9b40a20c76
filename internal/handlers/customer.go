package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salesdesk/daily-report-api/internal/dto"
	apierrors "github.com/salesdesk/daily-report-api/internal/errors"
	"github.com/salesdesk/daily-report-api/internal/services"
	"github.com/salesdesk/daily-report-api/internal/utils"
)

// CustomerHandler serves the customer master-data routes. Customers carry
// no role restriction beyond authentication.
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CustomerRequest is the writable customer payload, shared by create and update
type CustomerRequest struct {
	Name               string `json:"name" binding:"required,max=255"`
	Address            string `json:"address" binding:"max=255"`
	Phone              string `json:"phone" binding:"omitempty,phone,max=20"`
	Email              string `json:"email" binding:"omitempty,email,max=255"`
	AssignedEmployeeID uint64 `json:"assigned_employee_id" binding:"required"`
}

// ListCustomers returns a paginated customer list
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	customers, total, err := h.customerService.ListCustomers(params.Page, params.Limit)
	if err != nil {
		slog.Error("failed to list customers", slog.Any("error", err))
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ListEnvelope(
		dto.ToCustomerDTOs(customers),
		dto.NewListMeta(params.Page, params.Limit, total),
	))
}

// GetCustomer returns a single customer
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(id)
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToCustomerDTO(*customer)))
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	customer, err := h.customerService.CreateCustomer(services.CustomerInput{
		Name:               req.Name,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
		AssignedEmployeeID: req.AssignedEmployeeID,
	})
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Envelope(dto.ToCustomerDTO(*customer)))
}

// UpdateCustomer updates an existing customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	customer, err := h.customerService.UpdateCustomer(id, services.CustomerInput{
		Name:               req.Name,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
		AssignedEmployeeID: req.AssignedEmployeeID,
	})
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToCustomerDTO(*customer)))
}

// DeleteCustomer deletes a customer. A customer referenced by a visit
// record is left intact and the delete answers with a conflict.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(id); err != nil {
		respondCustomerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(gin.H{"message": "Customer deleted"}))
}

func respondCustomerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCustomerReferenced):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAssigneeNotFound):
		apierrors.BadRequest(c, err.Error())
	default:
		slog.Error("customer operation failed", slog.Any("error", err))
		apierrors.InternalError(c, "")
	}
}
