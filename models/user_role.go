package models

type UserRole string

const (
	AdminRole     UserRole = "ADMIN"
	DirectorRole  UserRole = "DIRECTOR"
	HRRole        UserRole = "HR"
	ManagerRole   UserRole = "MANAGER"
	RegistrarRole UserRole = "REGISTRAR"
	StaffRole     UserRole = "STAFF"
)

var roleHumanName = map[UserRole]string{
	AdminRole:     "Администратор",
	DirectorRole:  "Директор",
	HRRole:        "Отдел кадров",
	ManagerRole:   "Руководитель",
	RegistrarRole: "Делопроизводитель",
	StaffRole:     "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)

}

func (r UserRole) IsAdmin() bool {
	return r == AdminRole
}

const SystemUser = "Система"
