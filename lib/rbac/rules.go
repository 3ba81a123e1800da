package rbac

import (
	"office-admin-backend/models"
)

var (
	AllRoles              = []models.UserRole{models.AdminRole, models.DirectorRole, models.HRRole, models.ManagerRole, models.RegistrarRole, models.StaffRole}
	AdminRoleSet          = []models.UserRole{models.AdminRole}
	AdminHrRoleSet        = []models.UserRole{models.AdminRole, models.HRRole}
	AdminRegistrarRoleSet = []models.UserRole{models.AdminRole, models.RegistrarRole}
	DispositionManageSet  = []models.UserRole{models.AdminRole, models.DirectorRole, models.RegistrarRole}
	IncomingViewRoleSet   = []models.UserRole{models.AdminRole, models.DirectorRole, models.RegistrarRole, models.ManagerRole}
	OutgoingLetterRoleSet = []models.UserRole{models.AdminRole, models.DirectorRole, models.HRRole, models.ManagerRole, models.RegistrarRole}
)

func (i *impl) initRules() {
	i.addUsersRbac()
	i.addLettersRbac()
	i.addOutgoingLettersRbac()
	i.addIncomingLettersRbac()
	i.addDispositionsRbac()
	i.addEarlyLeaveRbac()
	i.addAttendanceRbac()
	i.addOrgRbac()
	i.addNotificationsRbac()
}

func (i *impl) addUsersRbac() {
	//VIEW
	i.mustRegister(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/list [post]", nil)
	i.mustRegister(models.UsersModule, models.ViewPermission, AllRoles, "/api/v1/users/{id} [get]", nil)
	//MANAGE
	i.mustRegister(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users [post]", nil)
	i.mustRegister(models.UsersModule, models.ManagePermission, AdminRoleSet, "/api/v1/users/{id}/active [put]", nil)
}

func (i *impl) addLettersRbac() {
	//VIEW
	i.mustRegister(models.LettersModule, models.ViewPermission, AllRoles, "/api/v1/letters/list [post]", nil)
	i.mustRegister(models.LettersModule, models.ViewPermission, AllRoles, "/api/v1/letters/{id} [get]", nil)
	i.mustRegister(models.LettersModule, models.ViewPermission, AllRoles, "/api/v1/letters/{id}/approvals [get]", nil)
	i.mustRegister(models.LettersModule, models.ViewPermission, AllRoles, "/api/v1/letters/{id}/history [get]", nil)
	// CREATE/EDIT, автора проверяет обработчик
	i.mustRegister(models.LettersModule, models.CreatePermission, AllRoles, "/api/v1/letters [post]", nil)
	i.mustRegister(models.LettersModule, models.EditPermission, AllRoles, "/api/v1/letters/{id} [put]", nil)
	i.mustRegister(models.LettersModule, models.EditPermission, AllRoles, "/api/v1/letters/{id} [delete]", nil)
	i.mustRegister(models.LettersModule, models.EditPermission, AllRoles, "/api/v1/letters/{id}/submit [put]", nil)
	i.mustRegister(models.LettersModule, models.EditPermission, AllRoles, "/api/v1/letters/{id}/archive [put]", nil)
	//FLOW
	i.mustRegister(models.LettersModule, models.FlowPermission, AllRoles, "/api/v1/approvals/pending [get]", nil)
	i.mustRegister(models.LettersModule, models.FlowPermission, AllRoles, "/api/v1/approvals/{id}/can_act [get]", nil)
	i.mustRegister(models.LettersModule, models.FlowPermission, AllRoles, "/api/v1/approvals/{id}/approve [post]", nil)
	i.mustRegister(models.LettersModule, models.FlowPermission, AllRoles, "/api/v1/approvals/{id}/reject [post]", nil)
	i.mustRegister(models.LettersModule, models.FlowPermission, AllRoles, "/api/v1/approvals/{id}/reset [post]", nil)
}

func (i *impl) addOutgoingLettersRbac() {
	//VIEW
	i.mustRegister(models.OutgoingLettersModule, models.ViewPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/list [post]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.ViewPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id} [get]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.ViewPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id}/approvals [get]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.ViewPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id}/history [get]", nil)
	// CREATE/EDIT
	i.mustRegister(models.OutgoingLettersModule, models.CreatePermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters [post]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.EditPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id} [put]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.EditPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id} [delete]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.EditPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id}/submit [put]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.EditPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id}/sent [put]", nil)
	i.mustRegister(models.OutgoingLettersModule, models.EditPermission, OutgoingLetterRoleSet, "/api/v1/outgoing_letters/{id}/archive [put]", nil)
}

func (i *impl) addIncomingLettersRbac() {
	//VIEW, просмотр конкретного письма дополнительно проверяет обработчик диспозиций
	i.mustRegister(models.IncomingLettersModule, models.ViewPermission, IncomingViewRoleSet, "/api/v1/incoming_letters/list [post]", nil)
	i.mustRegister(models.IncomingLettersModule, models.ViewPermission, IncomingViewRoleSet, "/api/v1/incoming_letters/{id} [get]", AllowFunc())
	i.mustRegister(models.IncomingLettersModule, models.ViewPermission, IncomingViewRoleSet, "/api/v1/incoming_letters/{id}/dispositions [get]", AllowFunc())
	i.mustRegister(models.IncomingLettersModule, models.ViewPermission, IncomingViewRoleSet, "/api/v1/incoming_letters/{id}/attachments [get]", AllowFunc())
	i.mustRegister(models.IncomingLettersModule, models.ViewPermission, IncomingViewRoleSet, "/api/v1/incoming_letters/{id}/attachments/{file_id} [get]", AllowFunc())
	// CREATE
	i.mustRegister(models.IncomingLettersModule, models.CreatePermission, AdminRegistrarRoleSet, "/api/v1/incoming_letters [post]", nil)
	i.mustRegister(models.IncomingLettersModule, models.EditPermission, AdminRegistrarRoleSet, "/api/v1/incoming_letters/{id}/archive [put]", nil)
	i.mustRegister(models.IncomingLettersModule, models.EditPermission, AdminRegistrarRoleSet, "/api/v1/incoming_letters/{id}/recompute_status [put]", nil)
	i.mustRegister(models.IncomingLettersModule, models.EditPermission, AdminRegistrarRoleSet, "/api/v1/incoming_letters/{id}/attachments [post]", nil)
	i.mustRegister(models.IncomingLettersModule, models.EditPermission, AdminRegistrarRoleSet, "/api/v1/incoming_letters/{id}/attachments/{file_id} [delete]", nil)
}

func (i *impl) addDispositionsRbac() {
	// MANAGE, корневые поручения по письму
	i.mustRegister(models.DispositionsModule, models.ManagePermission, DispositionManageSet, "/api/v1/incoming_letters/{id}/dispose [post]", nil)
	// FLOW, переадресация полученного поручения доступна любому получателю
	i.mustRegister(models.DispositionsModule, models.FlowPermission, AllRoles, "/api/v1/incoming_letters/{id}/forward [post]", nil)
	i.mustRegister(models.DispositionsModule, models.FlowPermission, AllRoles, "/api/v1/dispositions/inbox [post]", nil)
	i.mustRegister(models.DispositionsModule, models.FlowPermission, AllRoles, "/api/v1/dispositions/{id}/read [put]", nil)
	i.mustRegister(models.DispositionsModule, models.FlowPermission, AllRoles, "/api/v1/dispositions/{id}/in_progress [put]", nil)
	i.mustRegister(models.DispositionsModule, models.FlowPermission, AllRoles, "/api/v1/dispositions/{id}/complete [put]", nil)
	i.mustRegister(models.DispositionsModule, models.FlowPermission, AllRoles, "/api/v1/dispositions/{id}/access [get]", nil)
}

func (i *impl) addEarlyLeaveRbac() {
	// CREATE
	i.mustRegister(models.EarlyLeaveModule, models.CreatePermission, AllRoles, "/api/v1/early_leave [post]", nil)
	// VIEW
	i.mustRegister(models.EarlyLeaveModule, models.ViewPermission, AllRoles, "/api/v1/early_leave/list [post]", nil)
	i.mustRegister(models.EarlyLeaveModule, models.ViewPermission, AllRoles, "/api/v1/early_leave/{id} [get]", nil)
	i.mustRegister(models.EarlyLeaveModule, models.ViewPermission, AllRoles, "/api/v1/early_leave/{id}/actions [get]", nil)
	// FLOW, этап и исполнителя проверяет обработчик
	i.mustRegister(models.EarlyLeaveModule, models.FlowPermission, AllRoles, "/api/v1/early_leave/{id}/approve_delegation [put]", nil)
	i.mustRegister(models.EarlyLeaveModule, models.FlowPermission, AllRoles, "/api/v1/early_leave/{id}/approve_supervisor [put]", nil)
	i.mustRegister(models.EarlyLeaveModule, models.FlowPermission, AllRoles, "/api/v1/early_leave/{id}/sign_director [put]", nil)
	i.mustRegister(models.EarlyLeaveModule, models.FlowPermission, AllRoles, "/api/v1/early_leave/{id}/reject [put]", nil)
	// APPROVE_HR
	i.mustRegister(models.EarlyLeaveModule, models.ApproveHRPermission, AdminHrRoleSet, "/api/v1/early_leave/{id}/approve_hr [put]", nil)
}

func (i *impl) addAttendanceRbac() {
	i.mustRegister(models.AttendanceModule, models.EditPermission, AllRoles, "/api/v1/attendance/clock_in [put]", nil)
	i.mustRegister(models.AttendanceModule, models.EditPermission, AllRoles, "/api/v1/attendance/clock_out [put]", nil)
	i.mustRegister(models.AttendanceModule, models.ViewPermission, AllRoles, "/api/v1/attendance/today [get]", nil)
	i.mustRegister(models.AttendanceModule, models.ViewPermission, AllRoles, "/api/v1/attendance/history [post]", nil)
	// REPORT
	i.mustRegister(models.AttendanceModule, models.ReportPermission, AdminHrRoleSet, "/api/v1/attendance/report [put]", nil)
}

func (i *impl) addOrgRbac() {
	// VIEW
	i.mustRegister(models.OrgModule, models.ViewPermission, AllRoles, "/api/v1/org/units/tree [get]", nil)
	i.mustRegister(models.OrgModule, models.ViewPermission, AllRoles, "/api/v1/org/units/{id}/employees [get]", nil)
	i.mustRegister(models.OrgModule, models.ViewPermission, AllRoles, "/api/v1/org/employees/{id} [get]", nil)
	i.mustRegister(models.OrgModule, models.ViewPermission, AllRoles, "/api/v1/org/approvers [get]", nil)
	// MANAGE
	i.mustRegister(models.OrgModule, models.ManagePermission, AdminHrRoleSet, "/api/v1/org/units [post]", nil)
	i.mustRegister(models.OrgModule, models.ManagePermission, AdminHrRoleSet, "/api/v1/org/units/{id}/head [put]", nil)
	i.mustRegister(models.OrgModule, models.ManagePermission, AdminHrRoleSet, "/api/v1/org/employees [post]", nil)
}

func (i *impl) addNotificationsRbac() {
	i.mustRegister(models.NotificationsModule, models.ViewPermission, AllRoles, "/api/v1/notifications/list [post]", nil)
	i.mustRegister(models.NotificationsModule, models.ViewPermission, AllRoles, "/api/v1/notifications/unread_count [get]", nil)
	i.mustRegister(models.NotificationsModule, models.EditPermission, AllRoles, "/api/v1/notifications/read [put]", nil)
	i.mustRegister(models.NotificationsModule, models.EditPermission, AllRoles, "/api/v1/notifications/read_all [put]", nil)
}
