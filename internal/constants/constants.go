package constants

// Session
const (
	SessionCookieName  = "report_session"
	ContextKeyUserID   = "user_id"
	ContextKeyIdentity = "identity"
	SessionMaxAgeSecs  = 86400 * 7
)

// Pagination bounds. Page numbers are 1-indexed.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const MinPasswordLength = 8

// Navigation targets for authorization failures. Violations redirect to a
// safe page instead of surfacing an error payload.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathReports   = "/reports"
)
