package rbac

import (
	"testing"

	"office-admin-backend/models"

	"github.com/stretchr/testify/require"
)

func TestPatterns(t *testing.T) {
	t.Run("path parameters", func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/early_leave/{id}/approve_hr [put]")
		require.NoError(t, err)
		require.Equal(t, PUT, method)
		pattern := compilePattern(path)
		require.NotNil(t, pattern)
		require.True(t, pattern.MatchString("/api/v1/early_leave/123-321/approve_hr"))
		require.False(t, pattern.MatchString("/api/v1/early_leave/approve_hr"))

		path, method, err = parseSwaggerPattern("/api/v1/incoming_letters/{id}/attachments/{file_id} [delete]")
		require.NoError(t, err)
		require.Equal(t, DELETE, method)
		pattern = compilePattern(path)
		require.True(t, pattern.MatchString("/api/v1/incoming_letters/a1/attachments/qwe-ewr123"))
		require.False(t, pattern.MatchString("/api/v1/incoming_letters/a1/attachments"))
		require.False(t, pattern.MatchString("/api/v1/incoming_letters/a1/attachments/b2/extra"))
	})
	t.Run("exact path has no pattern", func(t *testing.T) {
		require.Nil(t, compilePattern("/api/v1/letters/list"))
	})
	t.Run("pattern without method", func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/letters")
		require.Error(t, err)
		_, _, err = parseSwaggerPattern("/api/v1/letters []")
		require.Error(t, err)
	})
	t.Run("normalize", func(t *testing.T) {
		require.Equal(t, "/api/v1/letters", normalizePath("api//v1/letters/"))
		require.Equal(t, "/", normalizePath(""))
	})
}

func TestRules(t *testing.T) {
	instance := NewInstance()

	t.Run("hr approval only for hr and admin", func(t *testing.T) {
		handler, found := instance.GetRuleFunc("PUT", "/api/v1/early_leave/5f0c/approve_hr/")
		require.True(t, found)
		require.True(t, handler("user", models.HRRole, ""))
		require.True(t, handler("user", models.AdminRole, ""))
		require.False(t, handler("user", models.ManagerRole, ""))
		require.False(t, handler("user", models.StaffRole, ""))
	})
	t.Run("rule metadata", func(t *testing.T) {
		rule, found := instance.GetRule("put", "/api/v1/attendance/report")
		require.True(t, found)
		require.Equal(t, models.AttendanceModule, rule.Module)
		require.Equal(t, models.ReportPermission, rule.Permission)
	})
	t.Run("exact path wins over pattern", func(t *testing.T) {
		handler, found := instance.GetRuleFunc("post", "/api/v1/incoming_letters/list")
		require.True(t, found)
		require.False(t, handler("user", models.StaffRole, ""))
		require.True(t, handler("user", models.ManagerRole, ""))
	})
	t.Run("unknown route", func(t *testing.T) {
		_, found := instance.GetRuleFunc("GET", "/api/v1/unknown")
		require.False(t, found)
		_, found = instance.GetRuleFunc("PATCH", "/api/v1/letters/list")
		require.False(t, found)
	})
	t.Run("duplicate registration", func(t *testing.T) {
		err := instance.RegisterRule(models.LettersModule, models.ViewPermission, AllRoles, "/api/v1/letters/{id} [get]", nil)
		require.Error(t, err)
		err = instance.RegisterRule(models.LettersModule, models.ViewPermission, AllRoles, "/api/v1/letters/{id}/pdf [get]", nil)
		require.NoError(t, err)
	})
	t.Run("permission checker", func(t *testing.T) {
		require.True(t, instance.HasPermission(models.HRRole, models.EarlyLeaveModule, models.ApproveHRPermission))
		require.False(t, instance.HasPermission(models.DirectorRole, models.EarlyLeaveModule, models.ApproveHRPermission))
		require.Equal(t, []models.UserRole{models.AdminRole, models.HRRole},
			instance.RolesWithPermission(models.EarlyLeaveModule, models.ApproveHRPermission))
		require.Equal(t, []models.UserRole{models.AdminRole, models.DirectorRole, models.RegistrarRole},
			instance.RolesWithPermission(models.DispositionsModule, models.ManagePermission))
		require.True(t, instance.HasPermission(models.ManagerRole, models.IncomingLettersModule, models.ViewPermission))
		require.False(t, instance.HasPermission(models.StaffRole, models.IncomingLettersModule, models.ViewPermission))
	})
	t.Run("permissions for frontend", func(t *testing.T) {
		permissions := instance.GetPermissions(models.StaffRole)
		require.Contains(t, permissions[models.EarlyLeaveModule], models.CreatePermission)
		require.NotContains(t, permissions[models.EarlyLeaveModule], models.ApproveHRPermission)
	})
}
