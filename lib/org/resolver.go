package orghandler

import (
	employeestore "office-admin-backend/lib/org/employee-store"
	orgunitstore "office-admin-backend/lib/org/unit-store"
	userstore "office-admin-backend/lib/users/store"
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
)

// Resolver поиск руководителя и директора по дереву подразделений.
// Отсутствие подходящего пользователя - nil без ошибки
type Resolver interface {
	SupervisorOf(employeeID string) (*dbmodels.User, error)
	DirectorOf(employeeID string) (*dbmodels.User, error)
	EmployeeByUser(userID string) (*dbmodels.Employee, error)
}

func NewResolver(units orgunitstore.Provider, employees employeestore.Provider, users userstore.Provider) Resolver {
	return resolver{
		units:     units,
		employees: employees,
		users:     users,
	}
}

type resolver struct {
	units     orgunitstore.Provider
	employees employeestore.Provider
	users     userstore.Provider
}

// SupervisorOf руководитель подразделения сотрудника. Если сотрудник сам
// руководит подразделением (или руководитель не назначен), поиск идет выше
func (r resolver) SupervisorOf(employeeID string) (*dbmodels.User, error) {
	employee, err := r.employees.GetByID(employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудника")
	}
	if employee == nil {
		return nil, nil
	}
	visited := map[string]bool{}
	unitID := employee.OrgUnitID
	for unitID != "" && !visited[unitID] {
		visited[unitID] = true
		unit, err := r.units.GetByID(unitID)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения подразделения")
		}
		if unit == nil {
			return nil, nil
		}
		headID := unit.GetHeadEmployeeID()
		if headID != "" && headID != employee.ID {
			return r.userOfEmployee(headID)
		}
		unitID = unit.GetParentID()
	}
	return nil, nil
}

// DirectorOf руководитель подразделения верхнего уровня (level <= 1)
func (r resolver) DirectorOf(employeeID string) (*dbmodels.User, error) {
	employee, err := r.employees.GetByID(employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудника")
	}
	if employee == nil {
		return nil, nil
	}
	visited := map[string]bool{}
	unit, err := r.units.GetByID(employee.OrgUnitID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения подразделения")
	}
	for unit != nil && unit.Level > 1 && unit.GetParentID() != "" && !visited[unit.ID] {
		visited[unit.ID] = true
		unit, err = r.units.GetByID(unit.GetParentID())
		if err != nil {
			return nil, errors.Wrap(err, "ошибка получения подразделения")
		}
	}
	if unit == nil || unit.GetHeadEmployeeID() == "" {
		return nil, nil
	}
	return r.userOfEmployee(unit.GetHeadEmployeeID())
}

func (r resolver) EmployeeByUser(userID string) (*dbmodels.Employee, error) {
	if userID == "" {
		return nil, nil
	}
	return r.employees.GetByUserID(userID)
}

func (r resolver) userOfEmployee(employeeID string) (*dbmodels.User, error) {
	head, err := r.employees.GetByID(employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения руководителя")
	}
	if head == nil || head.GetUserID() == "" {
		return nil, nil
	}
	user, err := r.users.GetByID(head.GetUserID())
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя руководителя")
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}
	return user, nil
}
