// Package orgfakes хранилища оргструктуры в памяти для тестов
package orgfakes

import (
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Units struct {
	Recs map[string]*dbmodels.OrgUnit
}

func (f *Units) Create(rec dbmodels.OrgUnit) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.Recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *Units) Update(id string, updMap map[string]interface{}) error {
	rec, ok := f.Recs[id]
	if !ok {
		return nil
	}
	if headID, ok := updMap["head_employee_id"]; ok {
		value := headID.(string)
		rec.HeadEmployeeID = &value
	}
	return nil
}

func (f *Units) GetByID(id string) (*dbmodels.OrgUnit, error) {
	rec, ok := f.Recs[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *Units) List() ([]dbmodels.OrgUnit, error) {
	list := make([]dbmodels.OrgUnit, 0, len(f.Recs))
	for _, rec := range f.Recs {
		list = append(list, *rec)
	}
	sort.Slice(list, func(a, b int) bool {
		if list[a].Level != list[b].Level {
			return list[a].Level < list[b].Level
		}
		return list[a].Name < list[b].Name
	})
	return list, nil
}

type Employees struct {
	Recs  map[string]*dbmodels.Employee
	Users *Users
}

func (f *Employees) Create(rec dbmodels.Employee) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.Recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *Employees) Update(id string, updMap map[string]interface{}) error {
	return nil
}

func (f *Employees) GetByID(id string) (*dbmodels.Employee, error) {
	rec, ok := f.Recs[id]
	if !ok {
		return nil, nil
	}
	return f.withUser(*rec), nil
}

func (f *Employees) GetByUserID(userID string) (*dbmodels.Employee, error) {
	for _, rec := range f.Recs {
		if rec.GetUserID() == userID {
			return f.withUser(*rec), nil
		}
	}
	return nil, nil
}

func (f *Employees) ListByUnit(orgUnitID string) ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for _, rec := range f.Recs {
		if rec.OrgUnitID == orgUnitID {
			list = append(list, *f.withUser(*rec))
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].FullName < list[b].FullName })
	return list, nil
}

func (f *Employees) withUser(rec dbmodels.Employee) *dbmodels.Employee {
	if f.Users != nil && rec.GetUserID() != "" {
		rec.User, _ = f.Users.GetByID(rec.GetUserID())
	}
	return &rec
}

type Users struct {
	Recs map[string]*dbmodels.User
}

func (f *Users) Create(rec dbmodels.User) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.Recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *Users) Update(userID string, updMap map[string]interface{}) error {
	rec, ok := f.Recs[userID]
	if !ok {
		return nil
	}
	if active, ok := updMap["is_active"]; ok {
		rec.IsActive = active.(bool)
	}
	if lastLogin, ok := updMap["last_login"]; ok {
		value := lastLogin.(time.Time)
		rec.LastLogin = &value
	}
	return nil
}

func (f *Users) GetByID(userID string) (*dbmodels.User, error) {
	rec, ok := f.Recs[userID]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *Users) FindByEmail(email string) (*dbmodels.User, error) {
	for _, rec := range f.Recs {
		if strings.EqualFold(rec.Email, email) {
			result := *rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f *Users) List(search string, page, limit int) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.Recs {
		list = append(list, *rec)
	}
	return list, nil
}

func (f *Users) ListByRoles(roles []models.UserRole) ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	for _, rec := range f.Recs {
		for _, role := range roles {
			if rec.IsActive && rec.Role == role {
				list = append(list, *rec)
				break
			}
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].ID < list[b].ID })
	return list, nil
}

// Org оргструктура в памяти
type Org struct {
	Units     *Units
	Employees *Employees
	Users     *Users
}

func NewOrg() *Org {
	users := &Users{Recs: map[string]*dbmodels.User{}}
	return &Org{
		Units:     &Units{Recs: map[string]*dbmodels.OrgUnit{}},
		Employees: &Employees{Recs: map[string]*dbmodels.Employee{}, Users: users},
		Users:     users,
	}
}

func (o *Org) AddUnit(name, parentID string) string {
	rec := dbmodels.OrgUnit{Name: name, Level: 1}
	if parentID != "" {
		parent := o.Units.Recs[parentID]
		rec.ParentID = &parent.ID
		rec.Level = parent.Level + 1
	}
	id, _ := o.Units.Create(rec)
	return id
}

// AddEmployee создает пользователя и привязанного к нему сотрудника
func (o *Org) AddEmployee(name, unitID string, role models.UserRole) (employeeID, userID string) {
	userID, _ = o.Users.Create(dbmodels.User{FirstName: name, IsActive: true, Role: role})
	employeeID, _ = o.Employees.Create(dbmodels.Employee{UserID: &userID, OrgUnitID: unitID, FullName: name})
	return employeeID, userID
}

func (o *Org) SetHead(unitID, employeeID string) {
	_ = o.Units.Update(unitID, map[string]interface{}{"head_employee_id": employeeID})
}
