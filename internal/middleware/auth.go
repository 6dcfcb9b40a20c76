package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/salesdesk/daily-report-api/internal/authz"
	"github.com/salesdesk/daily-report-api/internal/constants"
	"github.com/salesdesk/daily-report-api/internal/services"
)

// RequireAuth checks the session cookie and loads the caller identity.
// Unauthenticated requests are redirected to the login page, never answered
// with an error payload.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)

		employeeID, ok := toUint64(raw)
		if !ok {
			c.Redirect(http.StatusFound, constants.PathLogin)
			c.Abort()
			return
		}

		// The role is read fresh on every request so a role change takes
		// effect without reissuing the session.
		employee, err := authService.GetEmployee(employeeID)
		if err != nil {
			session.Clear()
			_ = session.Save()
			c.Redirect(http.StatusFound, constants.PathLogin)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, employee.ID)
		c.Set(constants.ContextKeyIdentity, authz.Identity{
			EmployeeID: employee.ID,
			Role:       employee.Role,
		})
		c.Next()
	}
}

// RedirectIfAuthenticated sends signed-in callers from the login page to
// the dashboard.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if _, ok := toUint64(session.Get(constants.ContextKeyUserID)); ok {
			c.Redirect(http.StatusFound, constants.PathDashboard)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the employee master-data routes. Non-admin callers are
// redirected to the dashboard, not errored.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, exists := GetIdentity(c)
		if !exists || !authz.CanManageEmployees(identity) {
			c.Redirect(http.StatusFound, constants.PathDashboard)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity retrieves the caller identity from context
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return authz.Identity{}, false
	}

	identity, ok := value.(authz.Identity)
	return identity, ok
}

// GetUserID retrieves the current employee ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(value)
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
