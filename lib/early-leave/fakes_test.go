package earlyleavehandler

import (
	"sort"
	"time"

	attendancehandler "office-admin-backend/lib/attendance"
	attendancefakes "office-admin-backend/lib/attendance/attendance-fakes"
	orghandler "office-admin-backend/lib/org"
	orgfakes "office-admin-backend/lib/org/org-fakes"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/google/uuid"
)

type fakeRequestStore struct {
	recs map[string]*dbmodels.EarlyLeaveRequest
}

func (f *fakeRequestStore) Create(rec dbmodels.EarlyLeaveRequest) (string, error) {
	rec.ID = uuid.NewString()
	rec.Employee = nil
	f.recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeRequestStore) GetByID(id string) (*dbmodels.EarlyLeaveRequest, error) {
	rec, ok := f.recs[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *fakeRequestStore) GetForUpdate(id string) (*dbmodels.EarlyLeaveRequest, error) {
	return f.GetByID(id)
}

func (f *fakeRequestStore) UpdateStatus(id string, from models.EarlyLeaveStatus, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.recs[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	apply(rec, updMap)
	return true, nil
}

func (f *fakeRequestStore) SetDirectorSign(id string, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.recs[id]
	if !ok || rec.Status != models.ELStatusApproved || rec.DirectorSignedAt != nil {
		return false, nil
	}
	apply(rec, updMap)
	return true, nil
}

func (f *fakeRequestStore) ListByEmployee(employeeID string, status models.EarlyLeaveStatus, page, limit int) ([]dbmodels.EarlyLeaveRequest, int64, error) {
	list := []dbmodels.EarlyLeaveRequest{}
	for _, rec := range f.recs {
		if rec.EmployeeID == employeeID && (status == "" || rec.Status == status) {
			list = append(list, *rec)
		}
	}
	return list, int64(len(list)), nil
}

func (f *fakeRequestStore) ListByStatuses(statuses []models.EarlyLeaveStatus) ([]dbmodels.EarlyLeaveRequest, error) {
	list := []dbmodels.EarlyLeaveRequest{}
	for _, rec := range f.recs {
		for _, status := range statuses {
			if rec.Status == status {
				list = append(list, *rec)
				break
			}
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].ID < list[b].ID })
	return list, nil
}

func apply(rec *dbmodels.EarlyLeaveRequest, updMap map[string]interface{}) {
	for key, value := range updMap {
		switch key {
		case "status":
			rec.Status = value.(models.EarlyLeaveStatus)
		case "attendance_id":
			id := value.(string)
			rec.AttendanceID = &id
		case "delegation_approved_at":
			at := value.(time.Time)
			rec.DelegationApprovedAt = &at
		case "delegation_notes":
			rec.DelegationNotes = value.(string)
		case "supervisor_id":
			id := value.(string)
			rec.SupervisorID = &id
		case "supervisor_approved_at":
			at := value.(time.Time)
			rec.SupervisorApprovedAt = &at
		case "supervisor_notes":
			rec.SupervisorNotes = value.(string)
		case "approved_by":
			id := value.(string)
			rec.ApprovedBy = &id
		case "approved_at":
			at := value.(time.Time)
			rec.ApprovedAt = &at
		case "hr_notes":
			rec.HRNotes = value.(string)
		case "director_id":
			id := value.(string)
			rec.DirectorID = &id
		case "director_signed_at":
			at := value.(time.Time)
			rec.DirectorSignedAt = &at
		case "director_notes":
			rec.DirectorNotes = value.(string)
		case "rejected_by":
			id := value.(string)
			rec.RejectedBy = &id
		case "rejected_at":
			at := value.(time.Time)
			rec.RejectedAt = &at
		case "rejection_reason":
			rec.RejectionReason = value.(string)
		}
	}
}

type fakePermissions struct{}

func (fakePermissions) HasPermission(role models.UserRole, module models.Module, permission models.Permission) bool {
	return module == models.EarlyLeaveModule && permission == models.ApproveHRPermission &&
		(role == models.HRRole || role == models.AdminRole)
}

func (fakePermissions) RolesWithPermission(module models.Module, permission models.Permission) []models.UserRole {
	if module == models.EarlyLeaveModule && permission == models.ApproveHRPermission {
		return []models.UserRole{models.HRRole, models.AdminRole}
	}
	return nil
}

// testEnv оргструктура: Дирекция (директор) -> Бухгалтерия (руководитель, два сотрудника); отдел кадров в дирекции
type testEnv struct {
	handler    Provider
	org        *orgfakes.Org
	requests   *fakeRequestStore
	attendance *attendancefakes.Store
	now        time.Time

	directorUser   string
	managerUser    string
	managerEmp     string
	staffUser      string
	staffEmp       string
	delegateUser   string
	delegateEmp    string
	hrUser         string
	accountingUnit string
}

func newTestEnv() *testEnv {
	env := &testEnv{
		org:        orgfakes.NewOrg(),
		requests:   &fakeRequestStore{recs: map[string]*dbmodels.EarlyLeaveRequest{}},
		attendance: attendancefakes.NewStore(),
		now:        time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	rootUnit := env.org.AddUnit("Дирекция", "")
	env.accountingUnit = env.org.AddUnit("Бухгалтерия", rootUnit)

	directorEmp, directorUser := env.org.AddEmployee("Директоров", rootUnit, models.DirectorRole)
	env.org.SetHead(rootUnit, directorEmp)
	env.directorUser = directorUser
	_, env.hrUser = env.org.AddEmployee("Кадрова", rootUnit, models.HRRole)

	env.managerEmp, env.managerUser = env.org.AddEmployee("Начальникова", env.accountingUnit, models.ManagerRole)
	env.org.SetHead(env.accountingUnit, env.managerEmp)
	env.staffEmp, env.staffUser = env.org.AddEmployee("Иванов", env.accountingUnit, models.StaffRole)
	env.delegateEmp, env.delegateUser = env.org.AddEmployee("Петров", env.accountingUnit, models.StaffRole)

	schedule := attendancehandler.Schedule{WorkStart: "08:00", WorkEnd: "17:00", Location: time.UTC}
	stores := Stores{
		Requests:   env.requests,
		Attendance: env.attendance,
		Checkout:   attendancehandler.NewMutator(env.attendance, schedule),
	}
	env.handler = NewInstance(Deps{
		Stores:      stores,
		Resolver:    orghandler.NewResolver(env.org.Units, env.org.Employees, env.org.Users),
		Employees:   env.org.Employees,
		Users:       env.org.Users,
		Permissions: fakePermissions{},
		Location:    time.UTC,
		Now:         func() time.Time { return env.now },
	}, func(fn func(s Stores) error) error {
		return fn(stores)
	})
	return env
}

// clockIn отметка прихода сотрудника на дату env.now
func (env *testEnv) clockIn(employeeID string) string {
	clockIn := time.Date(2024, 3, 14, 8, 0, 0, 0, time.UTC)
	id, _ := env.attendance.Create(dbmodels.Attendance{
		EmployeeID: employeeID,
		Date:       time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		ClockIn:    &clockIn,
		Status:     models.AttendancePresent,
	})
	return id
}
