package userapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
)

type UserData struct {
	Email     string          `json:"email" validate:"required,email"` // Email пользователя, он же логин
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role" validate:"required,oneof=ADMIN DIRECTOR HR MANAGER REGISTRAR STAFF"`
}

type CreateUser struct {
	UserData
	Password string `json:"password" validate:"required,min=6"`
}

func (r CreateUser) Validate() error {
	return apimodels.ValidateStruct(r)
}

type UserFilter struct {
	apimodels.Pagination
	Search string `json:"search"` // Поиск по имени и фамилии
}

func (r UserFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

type UserView struct {
	ID string `json:"id"`
	UserData
	FullName string `json:"full_name"`
	RoleName string `json:"role_name"`
	IsActive bool   `json:"is_active"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID: rec.ID,
		UserData: UserData{
			Email:     rec.Email,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Role:      rec.Role,
		},
		FullName: rec.GetFullName(),
		RoleName: rec.Role.ToHuman(),
		IsActive: rec.IsActive,
	}
}
