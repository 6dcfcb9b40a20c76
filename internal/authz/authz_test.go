package authz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salesdesk/daily-report-api/internal/models"
)

func managed(employeeID uint64, managerID *uint64) *models.DailyReport {
	return &models.DailyReport{
		EmployeeID: employeeID,
		Employee: models.Employee{
			ID:        employeeID,
			ManagerID: managerID,
		},
	}
}

func TestCanViewReport(t *testing.T) {
	managerID := uint64(10)

	own := managed(1, &managerID)
	subordinate := managed(2, &managerID)
	unrelated := managed(3, nil)

	sales := Identity{EmployeeID: 1, Role: models.RoleSales}
	require.True(t, CanViewReport(sales, own))
	require.False(t, CanViewReport(sales, subordinate))
	require.False(t, CanViewReport(sales, unrelated))

	manager := Identity{EmployeeID: 10, Role: models.RoleManager}
	require.True(t, CanViewReport(manager, subordinate))
	require.True(t, CanViewReport(manager, managed(10, nil)))
	require.False(t, CanViewReport(manager, unrelated))

	admin := Identity{EmployeeID: 99, Role: models.RoleAdmin}
	require.True(t, CanViewReport(admin, own))
	require.True(t, CanViewReport(admin, unrelated))
}

func TestCanViewReport_ManagerNotTransitive(t *testing.T) {
	// top manages mid, mid manages leaf. top must not see leaf's report.
	topID := uint64(1)
	midID := uint64(2)

	top := Identity{EmployeeID: topID, Role: models.RoleManager}
	leafReport := managed(3, &midID)

	require.False(t, CanViewReport(top, leafReport))
}

func TestCanEditReport_AuthorshipOnly(t *testing.T) {
	managerID := uint64(10)
	subordinate := managed(2, &managerID)

	// A manager in scope still may not edit a subordinate's report.
	manager := Identity{EmployeeID: 10, Role: models.RoleManager}
	require.True(t, CanViewReport(manager, subordinate))
	require.False(t, CanEditReport(manager, subordinate))
	require.False(t, CanDeleteReport(manager, subordinate))

	// Admins do not bypass ownership for mutation.
	admin := Identity{EmployeeID: 99, Role: models.RoleAdmin}
	require.False(t, CanEditReport(admin, subordinate))

	author := Identity{EmployeeID: 2, Role: models.RoleSales}
	require.True(t, CanEditReport(author, subordinate))
}

func TestCanComment(t *testing.T) {
	managerID := uint64(10)
	own := managed(1, &managerID)
	subordinate := managed(2, &managerID)
	unrelated := managed(3, nil)

	// SALES is excluded even on their own report.
	sales := Identity{EmployeeID: 1, Role: models.RoleSales}
	require.False(t, CanComment(sales, own))

	manager := Identity{EmployeeID: 10, Role: models.RoleManager}
	require.True(t, CanComment(manager, subordinate))
	require.False(t, CanComment(manager, unrelated))

	admin := Identity{EmployeeID: 99, Role: models.RoleAdmin}
	require.True(t, CanComment(admin, unrelated))
}

func TestCanManageEmployees(t *testing.T) {
	require.False(t, CanManageEmployees(Identity{Role: models.RoleSales}))
	require.False(t, CanManageEmployees(Identity{Role: models.RoleManager}))
	require.True(t, CanManageEmployees(Identity{Role: models.RoleAdmin}))
}

func setupScopeDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Employee{}, &models.DailyReport{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, name string, role models.Role, managerID *uint64) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
		ManagerID:    managerID,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func seedReport(t *testing.T, db *gorm.DB, employeeID uint64) *models.DailyReport {
	t.Helper()

	report := &models.DailyReport{
		EmployeeID: employeeID,
		ReportDate: time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func scopedIDs(t *testing.T, db *gorm.DB, id Identity) []uint64 {
	t.Helper()

	var ids []uint64
	err := db.Model(&models.DailyReport{}).
		Scopes(ScopeReports(id)).
		Pluck("daily_reports.id", &ids).Error
	require.NoError(t, err)
	return ids
}

func TestScopeReports(t *testing.T) {
	db := setupScopeDB(t)

	// manager → {salesA, salesB}; salesB → {junior} one level deeper.
	manager := seedEmployee(t, db, "manager", models.RoleManager, nil)
	salesA := seedEmployee(t, db, "sales-a", models.RoleSales, &manager.ID)
	salesB := seedEmployee(t, db, "sales-b", models.RoleSales, &manager.ID)
	junior := seedEmployee(t, db, "junior", models.RoleSales, &salesB.ID)
	outsider := seedEmployee(t, db, "outsider", models.RoleSales, nil)

	managerReport := seedReport(t, db, manager.ID)
	reportA := seedReport(t, db, salesA.ID)
	reportB := seedReport(t, db, salesB.ID)
	juniorReport := seedReport(t, db, junior.ID)
	outsiderReport := seedReport(t, db, outsider.ID)

	// SALES: own rows only.
	ids := scopedIDs(t, db, Identity{EmployeeID: salesA.ID, Role: models.RoleSales})
	require.ElementsMatch(t, []uint64{reportA.ID}, ids)

	// MANAGER: self plus direct reports, never the transitive subtree.
	ids = scopedIDs(t, db, Identity{EmployeeID: manager.ID, Role: models.RoleManager})
	require.ElementsMatch(t, []uint64{managerReport.ID, reportA.ID, reportB.ID}, ids)
	require.NotContains(t, ids, juniorReport.ID)
	require.NotContains(t, ids, outsiderReport.ID)

	// ADMIN: everything.
	ids = scopedIDs(t, db, Identity{EmployeeID: 999, Role: models.RoleAdmin})
	require.Len(t, ids, 5)
}
