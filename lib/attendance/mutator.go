package attendancehandler

import (
	attendancestore "office-admin-backend/lib/attendance/store"
	"office-admin-backend/models"
	"time"

	"github.com/pkg/errors"
)

// Mutator изменения отметки посещаемости, выполняемые другими процессами
type Mutator interface {
	// AutoCheckout отмечает уход в момент at, если он еще не отмечен. applied=false - запись не изменена
	AutoCheckout(attendanceID string, at time.Time) (applied bool, err error)
}

func NewMutator(store attendancestore.Provider, schedule Schedule) Mutator {
	return mutator{
		store:    store,
		schedule: schedule,
	}
}

type mutator struct {
	store    attendancestore.Provider
	schedule Schedule
}

func (m mutator) AutoCheckout(attendanceID string, at time.Time) (bool, error) {
	if attendanceID == "" {
		return false, nil
	}
	rec, err := m.store.GetForUpdate(attendanceID)
	if err != nil {
		return false, errors.Wrap(err, "ошибка получения отметки посещаемости")
	}
	if rec == nil || rec.ClockOut != nil {
		return false, nil
	}
	_, workEnd, err := m.schedule.Bounds(rec.Date)
	if err != nil {
		return false, err
	}
	rec.ClockOut = &at
	rec.CalculateEarlyLeaveMinutes(workEnd)
	rec.CalculateWorkDuration()
	rec.Status = models.AttendanceEarlyLeave
	updMap := map[string]interface{}{
		"clock_out":             at,
		"early_leave_minutes":   rec.EarlyLeaveMinutes,
		"work_duration_minutes": rec.WorkDurationMinutes,
		"status":                rec.Status,
	}
	applied, err := m.store.SetClockOut(rec.ID, updMap)
	if err != nil {
		return false, errors.Wrap(err, "ошибка автоматической отметки ухода")
	}
	return applied, nil
}
