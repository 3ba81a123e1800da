package orghandler

import (
	"office-admin-backend/db"
	employeestore "office-admin-backend/lib/org/employee-store"
	orgunitstore "office-admin-backend/lib/org/unit-store"
	userstore "office-admin-backend/lib/users/store"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	orgapimodels "office-admin-backend/models/api/org"
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Resolver
	CreateUnit(data orgapimodels.OrgUnitData) (id string, err error)
	SetHead(unitID, employeeID string) error
	UnitTree() ([]orgapimodels.OrgUnitView, error)
	CreateEmployee(data orgapimodels.EmployeeData) (id string, err error)
	GetEmployee(id string) (*orgapimodels.EmployeeView, error)
	UnitEmployees(unitID string) ([]orgapimodels.EmployeeView, error)
	ApproversOf(userID string) (*orgapimodels.ApproversView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(orgunitstore.NewInstance(db.DB), employeestore.NewInstance(db.DB), userstore.NewInstance(db.DB))
}

func NewInstance(units orgunitstore.Provider, employees employeestore.Provider, users userstore.Provider) Provider {
	return impl{
		Resolver:  NewResolver(units, employees, users),
		units:     units,
		employees: employees,
		users:     users,
	}
}

type impl struct {
	Resolver
	units     orgunitstore.Provider
	employees employeestore.Provider
	users     userstore.Provider
}

func (i impl) CreateUnit(data orgapimodels.OrgUnitData) (id string, err error) {
	rec := dbmodels.OrgUnit{
		Name:  data.Name,
		Level: 1,
	}
	if data.ParentID != nil && *data.ParentID != "" {
		parent, err := i.units.GetByID(*data.ParentID)
		if err != nil {
			return "", err
		}
		if parent == nil {
			return "", workflowerrors.NewNotFound("вышестоящее подразделение не найдено")
		}
		rec.ParentID = &parent.ID
		rec.Level = parent.Level + 1
	}
	if err = rec.Validate(); err != nil {
		return "", workflowerrors.NewValidation(err.Error())
	}
	id, err = i.units.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания подразделения")
	}
	return id, nil
}

func (i impl) SetHead(unitID, employeeID string) error {
	unit, err := i.units.GetByID(unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return workflowerrors.NewNotFound("подразделение не найдено")
	}
	employee, err := i.employees.GetByID(employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return workflowerrors.NewNotFound("сотрудник не найден")
	}
	log.
		WithField("org_unit_id", unitID).
		WithField("employee_id", employeeID).
		Info("назначен руководитель подразделения")
	return i.units.Update(unitID, map[string]interface{}{"head_employee_id": employeeID})
}

func (i impl) UnitTree() ([]orgapimodels.OrgUnitView, error) {
	list, err := i.units.List()
	if err != nil {
		return nil, err
	}
	children := map[string][]dbmodels.OrgUnit{}
	roots := []dbmodels.OrgUnit{}
	known := map[string]bool{}
	for _, rec := range list {
		known[rec.ID] = true
	}
	for _, rec := range list {
		parentID := rec.GetParentID()
		if parentID == "" || !known[parentID] {
			roots = append(roots, rec)
			continue
		}
		children[parentID] = append(children[parentID], rec)
	}
	visited := map[string]bool{}
	var build func(rec dbmodels.OrgUnit) orgapimodels.OrgUnitView
	build = func(rec dbmodels.OrgUnit) orgapimodels.OrgUnitView {
		visited[rec.ID] = true
		view := orgapimodels.OrgUnitConvert(rec)
		for _, child := range children[rec.ID] {
			if visited[child.ID] {
				continue
			}
			view.Children = append(view.Children, build(child))
		}
		return view
	}
	result := make([]orgapimodels.OrgUnitView, 0, len(roots))
	for _, rec := range roots {
		result = append(result, build(rec))
	}
	return result, nil
}

func (i impl) CreateEmployee(data orgapimodels.EmployeeData) (id string, err error) {
	unit, err := i.units.GetByID(data.OrgUnitID)
	if err != nil {
		return "", err
	}
	if unit == nil {
		return "", workflowerrors.NewNotFound("подразделение не найдено")
	}
	if data.UserID != nil && *data.UserID != "" {
		user, err := i.users.GetByID(*data.UserID)
		if err != nil {
			return "", err
		}
		if user == nil {
			return "", workflowerrors.NewNotFound("пользователь не найден")
		}
		existed, err := i.employees.GetByUserID(user.ID)
		if err != nil {
			return "", err
		}
		if existed != nil {
			return "", workflowerrors.NewValidation("пользователь уже привязан к сотруднику %v", existed.FullName)
		}
	}
	rec := dbmodels.Employee{
		UserID:    data.UserID,
		OrgUnitID: data.OrgUnitID,
		FullName:  data.FullName,
		Position:  data.Position,
	}
	if err = rec.Validate(); err != nil {
		return "", workflowerrors.NewValidation(err.Error())
	}
	id, err = i.employees.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания сотрудника")
	}
	return id, nil
}

func (i impl) GetEmployee(id string) (*orgapimodels.EmployeeView, error) {
	rec, err := i.employees.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, workflowerrors.NewNotFound("сотрудник не найден")
	}
	result := orgapimodels.EmployeeConvert(*rec)
	return &result, nil
}

func (i impl) UnitEmployees(unitID string) ([]orgapimodels.EmployeeView, error) {
	list, err := i.employees.ListByUnit(unitID)
	if err != nil {
		return nil, err
	}
	result := make([]orgapimodels.EmployeeView, 0, len(list))
	for _, rec := range list {
		result = append(result, orgapimodels.EmployeeConvert(rec))
	}
	return result, nil
}

func (i impl) ApproversOf(userID string) (*orgapimodels.ApproversView, error) {
	employee, err := i.EmployeeByUser(userID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, workflowerrors.NewNotFound("пользователь не привязан к сотруднику")
	}
	supervisor, err := i.SupervisorOf(employee.ID)
	if err != nil {
		return nil, err
	}
	director, err := i.DirectorOf(employee.ID)
	if err != nil {
		return nil, err
	}
	return &orgapimodels.ApproversView{
		Supervisor: orgapimodels.PersonConvert(supervisor),
		Director:   orgapimodels.PersonConvert(director),
	}, nil
}
