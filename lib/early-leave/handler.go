package earlyleavehandler

import (
	"fmt"
	"office-admin-backend/db"
	attendancehandler "office-admin-backend/lib/attendance"
	attendancestore "office-admin-backend/lib/attendance/store"
	earlyleavestore "office-admin-backend/lib/early-leave/store"
	orghandler "office-admin-backend/lib/org"
	employeestore "office-admin-backend/lib/org/employee-store"
	orgunitstore "office-admin-backend/lib/org/unit-store"
	"office-admin-backend/lib/rbac"
	userstore "office-admin-backend/lib/users/store"
	"office-admin-backend/lib/utils/helpers"
	initchecker "office-admin-backend/lib/utils/init-checker"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	earlyleaveapimodels "office-admin-backend/models/api/early-leave"
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Submit(actorID string, data earlyleaveapimodels.SubmitRequest) (Result, error)
	ApproveDelegation(id, actorID, notes string) (Result, error)
	ApproveSupervisor(id, actorID, notes string) (Result, error)
	// ApproveHR переводит заявку в approved и при необходимости отмечает уход сотрудника
	ApproveHR(id, actorID string, role models.UserRole, notes string) (Result, error)
	// SignDirector информационная подпись, статус заявки не меняется
	SignDirector(id, actorID, notes string) (Result, error)
	Reject(id, actorID string, role models.UserRole, reason string) (Result, error)
	CanApproveAsDelegation(id, actorID string) (bool, error)
	CanApproveAsSupervisor(id, actorID string) (bool, error)
	CanApproveAsHR(id string, role models.UserRole) (bool, error)
	CanSignAsDirector(id, actorID string) (bool, error)
	Actions(id, actorID string, role models.UserRole) (earlyleaveapimodels.ActionsView, error)
	Get(id string) (*earlyleaveapimodels.EarlyLeaveView, error)
	List(actorID string, role models.UserRole, filter earlyleaveapimodels.EarlyLeaveFilter) ([]earlyleaveapimodels.EarlyLeaveView, int64, error)
}

type Result struct {
	RequestID           string
	Status              models.EarlyLeaveStatus
	AutoCheckoutApplied bool
	Events              []models.NotificationData
}

// Stores хранилища, изменяемые в одной транзакции с заявкой
type Stores struct {
	Requests   earlyleavestore.Provider
	Attendance attendancestore.Provider
	Checkout   attendancehandler.Mutator
}

func NewStores(tx *gorm.DB, schedule attendancehandler.Schedule) Stores {
	attendance := attendancestore.NewInstance(tx)
	return Stores{
		Requests:   earlyleavestore.NewInstance(tx),
		Attendance: attendance,
		Checkout:   attendancehandler.NewMutator(attendance, schedule),
	}
}

type TxFunc func(fn func(s Stores) error) error

type Deps struct {
	Stores      Stores
	Resolver    orghandler.Resolver
	Employees   employeestore.Provider
	Users       userstore.Provider
	Permissions models.PermissionChecker
	Location    *time.Location
	Now         func() time.Time
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"rbac.Instance", rbac.Instance,
	)
	schedule := attendancehandler.ScheduleFromConfig()
	employees := employeestore.NewInstance(db.DB)
	users := userstore.NewInstance(db.DB)
	Instance = NewInstance(Deps{
		Stores:      NewStores(db.DB, schedule),
		Resolver:    orghandler.NewResolver(orgunitstore.NewInstance(db.DB), employees, users),
		Employees:   employees,
		Users:       users,
		Permissions: rbac.Instance,
		Location:    schedule.Location,
		Now:         time.Now,
	}, func(fn func(s Stores) error) error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			return fn(NewStores(tx, schedule))
		})
	})
}

func NewInstance(deps Deps, withTx TxFunc) Provider {
	if deps.Location == nil {
		deps.Location = time.Local
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return impl{
		Deps:   deps,
		withTx: withTx,
	}
}

type impl struct {
	Deps
	withTx TxFunc
}

func (i impl) getLogger(requestID, actorID string) *log.Entry {
	logger := log.
		WithField("early_leave_id", requestID).
		WithField("actor_id", actorID)
	return logger
}

func (i impl) Submit(actorID string, data earlyleaveapimodels.SubmitRequest) (Result, error) {
	employee, err := i.Resolver.EmployeeByUser(actorID)
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка получения сотрудника")
	}
	if employee == nil {
		return Result{}, workflowerrors.NewNotFound("пользователь не привязан к сотруднику")
	}
	day, err := time.ParseInLocation("2006-01-02", data.Date, i.Location)
	if err != nil {
		return Result{}, workflowerrors.NewValidation("некорректная дата ухода")
	}
	leaveTime, err := helpers.ClockOnDate(data.LeaveTime, day, i.Location)
	if err != nil {
		return Result{}, workflowerrors.NewValidation("некорректное время ухода")
	}
	if day.Before(helpers.StartOfDay(i.Now(), i.Location)) {
		return Result{}, workflowerrors.NewValidation("нельзя подать заявку на прошедшую дату")
	}
	rec := dbmodels.EarlyLeaveRequest{
		EmployeeID:   employee.ID,
		Date:         day,
		LeaveTime:    leaveTime,
		Reason:       data.Reason,
		Status:       models.ELStatusPendingSupervisor,
		AutoCheckout: data.AutoCheckout,
	}
	if data.DelegationEmployeeID != nil && *data.DelegationEmployeeID != "" {
		if *data.DelegationEmployeeID == employee.ID {
			return Result{}, workflowerrors.NewValidation("нельзя указать замещающим самого себя")
		}
		delegate, err := i.Employees.GetByID(*data.DelegationEmployeeID)
		if err != nil {
			return Result{}, errors.Wrap(err, "ошибка получения замещающего сотрудника")
		}
		if delegate == nil {
			return Result{}, workflowerrors.NewNotFound("замещающий сотрудник не найден")
		}
		rec.DelegationEmployeeID = &delegate.ID
		rec.Status = models.ELStatusPendingDelegation
	}
	if rec.AutoCheckout {
		attendance, err := i.Stores.Attendance.GetByEmployeeDate(employee.ID, day)
		if err != nil {
			return Result{}, errors.Wrap(err, "ошибка получения отметки посещаемости")
		}
		if attendance != nil {
			rec.AttendanceID = &attendance.ID
		}
	}
	rec.ID, err = i.Stores.Requests.Create(rec)
	if err != nil {
		i.getLogger("", actorID).WithError(err).Error("ошибка создания заявки на ранний уход")
		return Result{}, errors.Wrap(err, "ошибка создания заявки на ранний уход")
	}
	rec.Employee = employee
	return Result{
		RequestID: rec.ID,
		Status:    rec.Status,
		Events:    i.stageEvents(rec),
	}, nil
}

func (i impl) ApproveDelegation(id, actorID, notes string) (Result, error) {
	return i.advance(id, actorID, models.StageDelegation,
		func(rec dbmodels.EarlyLeaveRequest) error {
			return i.authorize(rec, models.StageDelegation, actorID, "")
		},
		func(s Stores, rec *dbmodels.EarlyLeaveRequest, now time.Time, result *Result) (map[string]interface{}, error) {
			return map[string]interface{}{
				"delegation_approved_at": now,
				"delegation_notes":       notes,
			}, nil
		})
}

func (i impl) ApproveSupervisor(id, actorID, notes string) (Result, error) {
	return i.advance(id, actorID, models.StageSupervisor,
		func(rec dbmodels.EarlyLeaveRequest) error {
			return i.authorize(rec, models.StageSupervisor, actorID, "")
		},
		func(s Stores, rec *dbmodels.EarlyLeaveRequest, now time.Time, result *Result) (map[string]interface{}, error) {
			return map[string]interface{}{
				"supervisor_id":          actorID,
				"supervisor_approved_at": now,
				"supervisor_notes":       notes,
			}, nil
		})
}

func (i impl) ApproveHR(id, actorID string, role models.UserRole, notes string) (Result, error) {
	return i.advance(id, actorID, models.StageHR,
		func(rec dbmodels.EarlyLeaveRequest) error {
			return i.authorize(rec, models.StageHR, actorID, role)
		},
		func(s Stores, rec *dbmodels.EarlyLeaveRequest, now time.Time, result *Result) (map[string]interface{}, error) {
			updMap := map[string]interface{}{
				"approved_by": actorID,
				"approved_at": now,
				"hr_notes":    notes,
			}
			if !rec.AutoCheckout {
				return updMap, nil
			}
			attendanceID := rec.GetAttendanceID()
			if attendanceID == "" {
				attendance, err := s.Attendance.GetByEmployeeDate(rec.EmployeeID, rec.Date)
				if err != nil {
					return nil, errors.Wrap(err, "ошибка получения отметки посещаемости")
				}
				if attendance != nil {
					attendanceID = attendance.ID
					updMap["attendance_id"] = attendanceID
				}
			}
			applied, err := s.Checkout.AutoCheckout(attendanceID, now)
			if err != nil {
				return nil, err
			}
			result.AutoCheckoutApplied = applied
			return updMap, nil
		})
}

// advance переход заявки на следующий этап: блокировка, проверка этапа и прав, CAS по статусу
func (i impl) advance(id, actorID string, stage models.EarlyLeaveStage,
	authorize func(rec dbmodels.EarlyLeaveRequest) error,
	fields func(s Stores, rec *dbmodels.EarlyLeaveRequest, now time.Time, result *Result) (map[string]interface{}, error),
) (Result, error) {
	result := Result{RequestID: id}
	var rec *dbmodels.EarlyLeaveRequest
	err := i.withTx(func(s Stores) error {
		var err error
		rec, err = i.lockRequest(s, id)
		if err != nil {
			return err
		}
		from := stage.ExpectedStatus()
		if rec.Status != from {
			return workflowerrors.NewStageMismatch("действие недоступно для заявки в статусе \"%v\"", rec.Status.ToHuman())
		}
		if err = authorize(*rec); err != nil {
			return err
		}
		updMap, err := fields(s, rec, i.Now(), &result)
		if err != nil {
			return err
		}
		updMap["status"] = stage.NextStatus()
		ok, err := s.Requests.UpdateStatus(id, from, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления заявки на ранний уход")
		}
		if !ok {
			return workflowerrors.NewStageMismatch("заявка уже изменена другим пользователем")
		}
		rec.Status = stage.NextStatus()
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(id, actorID).WithError(err).Error("ошибка согласования заявки на ранний уход")
		}
		return Result{}, err
	}
	result.Status = rec.Status
	result.Events = i.stageEvents(*rec)
	return result, nil
}

func (i impl) SignDirector(id, actorID, notes string) (Result, error) {
	var rec *dbmodels.EarlyLeaveRequest
	err := i.withTx(func(s Stores) error {
		var err error
		rec, err = i.lockRequest(s, id)
		if err != nil {
			return err
		}
		if rec.Status != models.StageDirector.ExpectedStatus() {
			return workflowerrors.NewStageMismatch("подписать можно только согласованную заявку")
		}
		if rec.DirectorSignedAt != nil {
			return workflowerrors.NewInvalidTransition("заявка уже подписана директором")
		}
		if err = i.authorize(*rec, models.StageDirector, actorID, ""); err != nil {
			return err
		}
		ok, err := s.Requests.SetDirectorSign(id, map[string]interface{}{
			"director_id":        actorID,
			"director_signed_at": i.Now(),
			"director_notes":     notes,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения подписи директора")
		}
		if !ok {
			return workflowerrors.NewInvalidTransition("заявка уже подписана директором")
		}
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(id, actorID).WithError(err).Error("ошибка подписи заявки директором")
		}
		return Result{}, err
	}
	result := Result{
		RequestID: id,
		Status:    rec.Status,
	}
	userID, _ := i.employeeUserID(rec.EmployeeID)
	director, err := i.Users.GetByID(actorID)
	if err != nil {
		i.getLogger(id, actorID).WithError(err).Warn("ошибка получения директора для уведомления")
	}
	directorName := ""
	if director != nil {
		directorName = director.GetFullName()
	}
	result.Events = append(result.Events, models.GetNotifyEarlyLeaveSigned(userID, directorName, humanDate(*rec), actionURL(id), eventData(id)))
	return result, nil
}

func (i impl) Reject(id, actorID string, role models.UserRole, reason string) (Result, error) {
	if reason == "" {
		return Result{}, workflowerrors.NewValidation("не указана причина отклонения")
	}
	var rec *dbmodels.EarlyLeaveRequest
	err := i.withTx(func(s Stores) error {
		var err error
		rec, err = i.lockRequest(s, id)
		if err != nil {
			return err
		}
		if !rec.Status.AllowReject() {
			return workflowerrors.NewStageMismatch("заявку в статусе \"%v\" нельзя отклонить", rec.Status.ToHuman())
		}
		if err = i.authorize(*rec, stageOf(rec.Status), actorID, role); err != nil {
			return err
		}
		ok, err := s.Requests.UpdateStatus(id, rec.Status, map[string]interface{}{
			"status":           models.ELStatusRejected,
			"rejected_by":      actorID,
			"rejected_at":      i.Now(),
			"rejection_reason": reason,
		})
		if err != nil {
			return errors.Wrap(err, "ошибка отклонения заявки на ранний уход")
		}
		if !ok {
			return workflowerrors.NewStageMismatch("заявка уже изменена другим пользователем")
		}
		rec.Status = models.ELStatusRejected
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(id, actorID).WithError(err).Error("ошибка отклонения заявки на ранний уход")
		}
		return Result{}, err
	}
	userID, _ := i.employeeUserID(rec.EmployeeID)
	return Result{
		RequestID: id,
		Status:    rec.Status,
		Events:    []models.NotificationData{models.GetNotifyEarlyLeaveRejected(userID, humanDate(*rec), reason, actionURL(id), eventData(id))},
	}, nil
}

func (i impl) CanApproveAsDelegation(id, actorID string) (bool, error) {
	return i.canAct(id, models.StageDelegation, actorID, "")
}

func (i impl) CanApproveAsSupervisor(id, actorID string) (bool, error) {
	return i.canAct(id, models.StageSupervisor, actorID, "")
}

func (i impl) CanApproveAsHR(id string, role models.UserRole) (bool, error) {
	return i.canAct(id, models.StageHR, "", role)
}

func (i impl) CanSignAsDirector(id, actorID string) (bool, error) {
	return i.canAct(id, models.StageDirector, actorID, "")
}

func (i impl) canAct(id string, stage models.EarlyLeaveStage, actorID string, role models.UserRole) (bool, error) {
	rec, err := i.Stores.Requests.GetByID(id)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}
	return i.canActOn(*rec, stage, actorID, role)
}

func (i impl) canActOn(rec dbmodels.EarlyLeaveRequest, stage models.EarlyLeaveStage, actorID string, role models.UserRole) (bool, error) {
	if rec.Status != stage.ExpectedStatus() {
		return false, nil
	}
	if stage == models.StageDirector && rec.DirectorSignedAt != nil {
		return false, nil
	}
	return i.canActOnStage(rec, stage, actorID, role)
}

func (i impl) Actions(id, actorID string, role models.UserRole) (result earlyleaveapimodels.ActionsView, err error) {
	rec, err := i.Stores.Requests.GetByID(id)
	if err != nil {
		return result, err
	}
	if rec == nil {
		return result, workflowerrors.NewNotFound("заявка на ранний уход не найдена")
	}
	if result.CanApproveDelegation, err = i.canActOn(*rec, models.StageDelegation, actorID, role); err != nil {
		return result, err
	}
	if result.CanApproveSupervisor, err = i.canActOn(*rec, models.StageSupervisor, actorID, role); err != nil {
		return result, err
	}
	if result.CanApproveHR, err = i.canActOn(*rec, models.StageHR, actorID, role); err != nil {
		return result, err
	}
	if result.CanSignDirector, err = i.canActOn(*rec, models.StageDirector, actorID, role); err != nil {
		return result, err
	}
	if rec.Status.AllowReject() {
		result.CanReject = result.CanApproveDelegation || result.CanApproveSupervisor || result.CanApproveHR
		if rec.Status == models.ELStatusPending {
			result.CanReject, err = i.canActOnStage(*rec, models.StageSupervisor, actorID, role)
		}
	}
	return result, err
}

func (i impl) canActOnStage(rec dbmodels.EarlyLeaveRequest, stage models.EarlyLeaveStage, actorID string, role models.UserRole) (bool, error) {
	err := i.authorize(rec, stage, actorID, role)
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); ok {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (i impl) Get(id string) (*earlyleaveapimodels.EarlyLeaveView, error) {
	rec, err := i.Stores.Requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, workflowerrors.NewNotFound("заявка на ранний уход не найдена")
	}
	result := earlyleaveapimodels.EarlyLeaveConvert(*rec)
	return &result, nil
}

func (i impl) List(actorID string, role models.UserRole, filter earlyleaveapimodels.EarlyLeaveFilter) ([]earlyleaveapimodels.EarlyLeaveView, int64, error) {
	page, limit := helpers.GetPage(filter.Page, filter.Limit)
	if filter.Scope == earlyleaveapimodels.ScopeToApprove {
		return i.listToApprove(actorID, role, page, limit)
	}
	employee, err := i.Resolver.EmployeeByUser(actorID)
	if err != nil {
		return nil, 0, err
	}
	if employee == nil {
		return []earlyleaveapimodels.EarlyLeaveView{}, 0, nil
	}
	list, rowCount, err := i.Stores.Requests.ListByEmployee(employee.ID, filter.Status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]earlyleaveapimodels.EarlyLeaveView, 0, len(list))
	for _, rec := range list {
		result = append(result, earlyleaveapimodels.EarlyLeaveConvert(rec))
	}
	return result, rowCount, nil
}

// listToApprove заявки, по которым пользователь может принять решение сейчас
func (i impl) listToApprove(actorID string, role models.UserRole, page, limit int) ([]earlyleaveapimodels.EarlyLeaveView, int64, error) {
	stages := []models.EarlyLeaveStage{models.StageDelegation, models.StageSupervisor, models.StageHR, models.StageDirector}
	statuses := make([]models.EarlyLeaveStatus, 0, len(stages))
	for _, stage := range stages {
		statuses = append(statuses, stage.ExpectedStatus())
	}
	list, err := i.Stores.Requests.ListByStatuses(statuses)
	if err != nil {
		return nil, 0, err
	}
	result := []earlyleaveapimodels.EarlyLeaveView{}
	for _, rec := range list {
		for _, stage := range stages {
			ok, err := i.canActOn(rec, stage, actorID, role)
			if err != nil {
				return nil, 0, err
			}
			if ok {
				result = append(result, earlyleaveapimodels.EarlyLeaveConvert(rec))
				break
			}
		}
	}
	rowCount := int64(len(result))
	from := (page - 1) * limit
	if from >= len(result) {
		return []earlyleaveapimodels.EarlyLeaveView{}, rowCount, nil
	}
	to := from + limit
	if to > len(result) {
		to = len(result)
	}
	return result[from:to], rowCount, nil
}

// authorize проверка, что actor может действовать на этапе stage. Статус заявки не проверяется
func (i impl) authorize(rec dbmodels.EarlyLeaveRequest, stage models.EarlyLeaveStage, actorID string, role models.UserRole) error {
	switch stage {
	case models.StageDelegation:
		if !rec.HasDelegation() {
			return workflowerrors.NewStageMismatch("в заявке не указан замещающий сотрудник")
		}
		employee, err := i.Resolver.EmployeeByUser(actorID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения сотрудника")
		}
		if employee == nil || employee.ID != *rec.DelegationEmployeeID {
			return workflowerrors.NewAuthorizationDenied("согласовать может только замещающий сотрудник")
		}
	case models.StageSupervisor:
		supervisor, err := i.Resolver.SupervisorOf(rec.EmployeeID)
		if err != nil {
			return errors.Wrap(err, "ошибка определения руководителя")
		}
		if supervisor == nil {
			return workflowerrors.NewNotFound("не удалось определить руководителя сотрудника")
		}
		if supervisor.ID != actorID {
			return workflowerrors.NewAuthorizationDenied("согласовать может только руководитель сотрудника")
		}
	case models.StageHR:
		if i.Permissions == nil || !i.Permissions.HasPermission(role, models.EarlyLeaveModule, models.ApproveHRPermission) {
			return workflowerrors.NewAuthorizationDenied("нет прав на согласование от отдела кадров")
		}
	case models.StageDirector:
		director, err := i.Resolver.DirectorOf(rec.EmployeeID)
		if err != nil {
			return errors.Wrap(err, "ошибка определения директора")
		}
		if director == nil {
			return workflowerrors.NewNotFound("не удалось определить директора")
		}
		if director.ID != actorID {
			return workflowerrors.NewAuthorizationDenied("подписать может только директор")
		}
	default:
		return workflowerrors.NewStageMismatch("неизвестный этап согласования")
	}
	return nil
}

func (i impl) lockRequest(s Stores, id string) (*dbmodels.EarlyLeaveRequest, error) {
	rec, err := s.Requests.GetForUpdate(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения заявки на ранний уход")
	}
	if rec == nil {
		return nil, workflowerrors.NewNotFound("заявка на ранний уход не найдена")
	}
	return rec, nil
}

// stageOf этап, на котором заявка ожидает решения
func stageOf(status models.EarlyLeaveStatus) models.EarlyLeaveStage {
	switch status {
	case models.ELStatusPendingDelegation:
		return models.StageDelegation
	case models.ELStatusPending, models.ELStatusPendingSupervisor:
		return models.StageSupervisor
	case models.ELStatusPendingHR:
		return models.StageHR
	case models.ELStatusApproved:
		return models.StageDirector
	}
	return ""
}

// stageEvents уведомления участникам текущего этапа. Ошибки получения адресатов только логируются
func (i impl) stageEvents(rec dbmodels.EarlyLeaveRequest) []models.NotificationData {
	logger := i.getLogger(rec.ID, "")
	employeeName := ""
	if rec.Employee != nil {
		employeeName = rec.Employee.FullName
	} else if employee, err := i.Employees.GetByID(rec.EmployeeID); err == nil && employee != nil {
		employeeName = employee.FullName
	}
	url := actionURL(rec.ID)
	data := eventData(rec.ID)
	events := []models.NotificationData{}
	switch rec.Status {
	case models.ELStatusPendingDelegation:
		userID, err := i.employeeUserID(*rec.DelegationEmployeeID)
		if err != nil {
			logger.WithError(err).Warn("ошибка получения замещающего сотрудника для уведомления")
		}
		events = append(events, models.GetNotifyEarlyLeaveAction(userID, employeeName, url, data))
	case models.ELStatusPendingSupervisor:
		supervisor, err := i.Resolver.SupervisorOf(rec.EmployeeID)
		if err != nil {
			logger.WithError(err).Warn("ошибка определения руководителя для уведомления")
		}
		if supervisor != nil {
			events = append(events, models.GetNotifyEarlyLeaveAction(supervisor.ID, employeeName, url, data))
		}
	case models.ELStatusPendingHR:
		roles := []models.UserRole{}
		if i.Permissions != nil {
			roles = i.Permissions.RolesWithPermission(models.EarlyLeaveModule, models.ApproveHRPermission)
		}
		users, err := i.Users.ListByRoles(roles)
		if err != nil {
			logger.WithError(err).Warn("ошибка получения сотрудников отдела кадров для уведомления")
		}
		for _, user := range users {
			events = append(events, models.GetNotifyEarlyLeaveAction(user.ID, employeeName, url, data))
		}
	case models.ELStatusApproved:
		userID, err := i.employeeUserID(rec.EmployeeID)
		if err != nil {
			logger.WithError(err).Warn("ошибка получения сотрудника для уведомления")
		}
		events = append(events, models.GetNotifyEarlyLeaveApproved(userID, humanDate(rec), url, data))
		director, err := i.Resolver.DirectorOf(rec.EmployeeID)
		if err != nil {
			logger.WithError(err).Warn("ошибка определения директора для уведомления")
		}
		if director != nil {
			events = append(events, models.GetNotifyEarlyLeaveAction(director.ID, employeeName, url, data))
		}
	}
	return events
}

func (i impl) employeeUserID(employeeID string) (string, error) {
	employee, err := i.Employees.GetByID(employeeID)
	if err != nil || employee == nil {
		return "", err
	}
	return employee.GetUserID(), nil
}

func humanDate(rec dbmodels.EarlyLeaveRequest) string {
	return fmt.Sprintf("%s %s", rec.Date.Format("02.01.2006"), rec.LeaveTime.Format("15:04"))
}

func actionURL(id string) string {
	return fmt.Sprintf("/early_leave/%s", id)
}

func eventData(id string) map[string]string {
	return map[string]string{"early_leave_id": id}
}
