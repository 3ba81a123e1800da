package models

type RbacFunc func(userID string, role UserRole, path string) bool

type Module string

const (
	LettersModule         Module = "LETTERS"
	OutgoingLettersModule Module = "OUTGOING_LETTERS"
	IncomingLettersModule Module = "INCOMING_LETTERS"
	DispositionsModule    Module = "DISPOSITIONS"
	EarlyLeaveModule      Module = "EARLY_LEAVE"
	AttendanceModule      Module = "ATTENDANCE"
	OrgModule             Module = "ORG"
	NotificationsModule   Module = "NOTIFICATIONS"
	UsersModule           Module = "USERS"
)

type Permission string

const (
	CreatePermission    Permission = "CREATE"
	EditPermission      Permission = "EDIT"
	ViewPermission      Permission = "VIEW"
	ManagePermission    Permission = "MANAGE"
	FlowPermission      Permission = "FLOW"
	ApproveHRPermission Permission = "APPROVE_HR"
	ReportPermission    Permission = "REPORT"
)

// PermissionChecker проверка прав роли на модуль
type PermissionChecker interface {
	HasPermission(role UserRole, module Module, permission Permission) bool
	RolesWithPermission(module Module, permission Permission) []UserRole
}
