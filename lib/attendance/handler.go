package attendancehandler

import (
	"bytes"
	"office-admin-backend/db"
	attendancestore "office-admin-backend/lib/attendance/store"
	xlsexport "office-admin-backend/lib/export/xls"
	employeestore "office-admin-backend/lib/org/employee-store"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	attendanceapimodels "office-admin-backend/models/api/attendance"
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	ClockIn(userID, notes string) (*attendanceapimodels.AttendanceView, error)
	ClockOut(userID, notes string) (*attendanceapimodels.AttendanceView, error)
	Today(userID string) (*attendanceapimodels.AttendanceView, error)
	History(userID string, from, to time.Time) ([]attendanceapimodels.AttendanceView, error)
	// Report табель за период в xlsx
	Report(from, to time.Time, orgUnitID string) (*bytes.Buffer, error)
}

var Instance Provider

const maxReportPeriod = 366 * 24 * time.Hour

func NewHandler() {
	Instance = NewInstance(attendancestore.NewInstance(db.DB), employeestore.NewInstance(db.DB), xlsexport.NewInstance(), ScheduleFromConfig(), time.Now)
}

func NewInstance(store attendancestore.Provider, employees employeestore.Provider, exporter xlsexport.Provider, schedule Schedule, now func() time.Time) Provider {
	return impl{
		store:     store,
		employees: employees,
		exporter:  exporter,
		schedule:  schedule,
		now:       now,
	}
}

type impl struct {
	store     attendancestore.Provider
	employees employeestore.Provider
	exporter  xlsexport.Provider
	schedule  Schedule
	now       func() time.Time
}

func (i impl) getLogger(userID string) *log.Entry {
	return log.WithField("user_id", userID)
}

func (i impl) ClockIn(userID, notes string) (*attendanceapimodels.AttendanceView, error) {
	employee, err := i.employeeOf(userID)
	if err != nil {
		return nil, err
	}
	now := i.now()
	day := i.schedule.Day(now)
	existed, err := i.store.GetByEmployeeDate(employee.ID, day)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отметки посещаемости")
	}
	if existed != nil && existed.ClockIn != nil {
		return nil, workflowerrors.NewInvalidTransition("приход уже отмечен")
	}
	workStart, _, err := i.schedule.Bounds(day)
	if err != nil {
		return nil, err
	}
	rec := dbmodels.Attendance{
		EmployeeID: employee.ID,
		Date:       day,
		ClockIn:    &now,
		Status:     models.AttendancePresent,
		Notes:      notes,
	}
	if rec.CalculateLateMinutes(workStart) > 0 {
		rec.Status = models.AttendanceLate
	}
	rec.ID, err = i.store.Create(rec)
	if err != nil {
		i.getLogger(userID).WithError(err).Error("ошибка сохранения отметки прихода")
		return nil, errors.Wrap(err, "ошибка сохранения отметки прихода")
	}
	result := attendanceapimodels.AttendanceConvert(rec)
	return &result, nil
}

func (i impl) ClockOut(userID, notes string) (*attendanceapimodels.AttendanceView, error) {
	employee, err := i.employeeOf(userID)
	if err != nil {
		return nil, err
	}
	now := i.now()
	day := i.schedule.Day(now)
	rec, err := i.store.GetByEmployeeDate(employee.ID, day)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отметки посещаемости")
	}
	if rec == nil || rec.ClockIn == nil {
		return nil, workflowerrors.NewInvalidTransition("приход сегодня не отмечен")
	}
	if rec.ClockOut != nil {
		return nil, workflowerrors.NewInvalidTransition("уход уже отмечен")
	}
	_, workEnd, err := i.schedule.Bounds(day)
	if err != nil {
		return nil, err
	}
	rec.ClockOut = &now
	rec.CalculateWorkDuration()
	if rec.CalculateEarlyLeaveMinutes(workEnd) > 0 {
		rec.Status = models.AttendanceEarlyLeave
	}
	if notes != "" {
		rec.Notes = notes
	}
	updMap := map[string]interface{}{
		"clock_out":             now,
		"early_leave_minutes":   rec.EarlyLeaveMinutes,
		"work_duration_minutes": rec.WorkDurationMinutes,
		"status":                rec.Status,
		"notes":                 rec.Notes,
	}
	ok, err := i.store.SetClockOut(rec.ID, updMap)
	if err != nil {
		i.getLogger(userID).WithError(err).Error("ошибка сохранения отметки ухода")
		return nil, errors.Wrap(err, "ошибка сохранения отметки ухода")
	}
	if !ok {
		return nil, workflowerrors.NewInvalidTransition("уход уже отмечен")
	}
	result := attendanceapimodels.AttendanceConvert(*rec)
	return &result, nil
}

func (i impl) Today(userID string) (*attendanceapimodels.AttendanceView, error) {
	employee, err := i.employeeOf(userID)
	if err != nil {
		return nil, err
	}
	rec, err := i.store.GetByEmployeeDate(employee.ID, i.schedule.Day(i.now()))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	result := attendanceapimodels.AttendanceConvert(*rec)
	return &result, nil
}

func (i impl) History(userID string, from, to time.Time) ([]attendanceapimodels.AttendanceView, error) {
	employee, err := i.employeeOf(userID)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, workflowerrors.NewValidation("дата окончания периода раньше даты начала")
	}
	list, err := i.store.ListByEmployee(employee.ID, from, to)
	if err != nil {
		return nil, err
	}
	result := make([]attendanceapimodels.AttendanceView, 0, len(list))
	for _, rec := range list {
		result = append(result, attendanceapimodels.AttendanceConvert(rec))
	}
	return result, nil
}

func (i impl) Report(from, to time.Time, orgUnitID string) (*bytes.Buffer, error) {
	if to.Before(from) {
		return nil, workflowerrors.NewValidation("дата окончания периода раньше даты начала")
	}
	if to.Sub(from) > maxReportPeriod {
		return nil, workflowerrors.NewValidation("период табеля не может превышать 366 дней")
	}
	list, err := i.store.ListByPeriod(from, to, orgUnitID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения отметок за период")
	}
	return i.exporter.ExportAttendance(list, i.schedule.Location)
}

func (i impl) employeeOf(userID string) (*dbmodels.Employee, error) {
	employee, err := i.employees.GetByUserID(userID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сотрудника")
	}
	if employee == nil {
		return nil, workflowerrors.NewNotFound("пользователь не привязан к сотруднику")
	}
	return employee, nil
}
