package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/dto"
	apierrors "github.com/salesdesk/daily-report-api/internal/errors"
	"github.com/salesdesk/daily-report-api/internal/middleware"
	"github.com/salesdesk/daily-report-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates an employee and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", apierrors.BindingDetails(err))
		return
	}

	employee, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.InvalidCredentials(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, employee.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToEmployeeDTO(*employee)))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(gin.H{"message": "Logged out successfully"}))
}

// Me returns the authenticated employee (session introspection).
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	employee, err := h.authService.GetEmployee(userID)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.Envelope(dto.ToEmployeeDTO(*employee)))
}

// LoginPage answers unauthenticated callers on the login route. Signed-in
// callers never reach it: the route guard redirects them to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Envelope(gin.H{"message": "Sign in at POST /api/auth/login"}))
}
