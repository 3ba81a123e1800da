package orgapimodels

import (
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
)

type OrgUnitData struct {
	Name     string  `json:"name" validate:"required,max=255"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"` // Вышестоящее подразделение, пусто для верхнего уровня
}

func (r OrgUnitData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type SetHeadRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
}

func (r SetHeadRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type OrgUnitView struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	ParentID       *string       `json:"parent_id"`
	Level          int           `json:"level"`
	HeadEmployeeID *string       `json:"head_employee_id"`
	Children       []OrgUnitView `json:"children"`
}

func OrgUnitConvert(rec dbmodels.OrgUnit) OrgUnitView {
	return OrgUnitView{
		ID:             rec.ID,
		Name:           rec.Name,
		ParentID:       rec.ParentID,
		Level:          rec.Level,
		HeadEmployeeID: rec.HeadEmployeeID,
		Children:       []OrgUnitView{},
	}
}

type EmployeeData struct {
	UserID    *string `json:"user_id" validate:"omitempty,uuid"`
	OrgUnitID string  `json:"org_unit_id" validate:"required,uuid"`
	FullName  string  `json:"full_name" validate:"required,max=255"`
	Position  string  `json:"position" validate:"max=255"`
}

func (r EmployeeData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type EmployeeView struct {
	ID string `json:"id"`
	EmployeeData
	Email string `json:"email"`
}

func EmployeeConvert(rec dbmodels.Employee) EmployeeView {
	result := EmployeeView{
		ID: rec.ID,
		EmployeeData: EmployeeData{
			UserID:    rec.UserID,
			OrgUnitID: rec.OrgUnitID,
			FullName:  rec.FullName,
			Position:  rec.Position,
		},
	}
	if rec.User != nil {
		result.Email = rec.User.Email
	}
	return result
}

type PersonView struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
}

// ApproversView кто согласует заявки сотрудника
type ApproversView struct {
	Supervisor *PersonView `json:"supervisor"`
	Director   *PersonView `json:"director"`
}

func PersonConvert(rec *dbmodels.User) *PersonView {
	if rec == nil {
		return nil
	}
	return &PersonView{
		UserID:   rec.ID,
		FullName: rec.GetFullName(),
	}
}
