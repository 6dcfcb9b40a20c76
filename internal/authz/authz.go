// Package authz holds the role-based visibility rules for daily reports.
//
// Every rule takes the caller identity explicitly so the rules can be
// exercised without a request context or a database.
package authz

import (
	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/models"
)

// Identity is the authenticated caller as seen by the rule-set.
type Identity struct {
	EmployeeID uint64
	Role       models.Role
}

// CanViewReport reports whether the caller may read the given report.
// The report's Employee relation must be loaded for the manager check.
func CanViewReport(id Identity, report *models.DailyReport) bool {
	switch id.Role {
	case models.RoleAdmin:
		return true
	case models.RoleManager:
		if report.EmployeeID == id.EmployeeID {
			return true
		}
		// Direct reports only, never the transitive subtree.
		return report.Employee.ManagerID != nil && *report.Employee.ManagerID == id.EmployeeID
	case models.RoleSales:
		return report.EmployeeID == id.EmployeeID
	}
	return false
}

// CanEditReport reports whether the caller may mutate the report.
// Mutation is authorship-only for every role; admins do not bypass
// ownership, only visibility.
func CanEditReport(id Identity, report *models.DailyReport) bool {
	return report.EmployeeID == id.EmployeeID
}

// CanDeleteReport follows the same ownership rule as editing.
func CanDeleteReport(id Identity, report *models.DailyReport) bool {
	return CanEditReport(id, report)
}

// CanComment reports whether the caller may append a comment. SALES is
// always excluded, including on their own reports; managers and admins
// may comment on anything inside their view scope.
func CanComment(id Identity, report *models.DailyReport) bool {
	if id.Role != models.RoleManager && id.Role != models.RoleAdmin {
		return false
	}
	return CanViewReport(id, report)
}

// CanManageEmployees gates the employee master-data routes.
func CanManageEmployees(id Identity) bool {
	return id.Role == models.RoleAdmin
}

// ScopeReports returns the row-filtering predicate a report listing must
// apply for the caller:
//
//	SALES:   employee_id = self
//	MANAGER: employee_id = self OR author.manager_id = self
//	ADMIN:   unrestricted
func ScopeReports(id Identity) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch id.Role {
		case models.RoleAdmin:
			return db
		case models.RoleManager:
			return db.
				Joins("JOIN employees ON employees.id = daily_reports.employee_id").
				Where("daily_reports.employee_id = ? OR employees.manager_id = ?", id.EmployeeID, id.EmployeeID)
		default:
			return db.Where("daily_reports.employee_id = ?", id.EmployeeID)
		}
	}
}
