// Package attendancefakes хранилище отметок посещаемости в памяти для тестов
package attendancefakes

import (
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"
	"sort"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	Recs map[string]*dbmodels.Attendance
}

func NewStore() *Store {
	return &Store{Recs: map[string]*dbmodels.Attendance{}}
}

func (f *Store) Create(rec dbmodels.Attendance) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	f.Recs[rec.ID] = &rec
	return rec.ID, nil
}

func (f *Store) GetByID(id string) (*dbmodels.Attendance, error) {
	rec, ok := f.Recs[id]
	if !ok {
		return nil, nil
	}
	result := *rec
	return &result, nil
}

func (f *Store) GetForUpdate(id string) (*dbmodels.Attendance, error) {
	return f.GetByID(id)
}

func (f *Store) GetByEmployeeDate(employeeID string, date time.Time) (*dbmodels.Attendance, error) {
	for _, rec := range f.Recs {
		if rec.EmployeeID == employeeID && sameDay(rec.Date, date) {
			result := *rec
			return &result, nil
		}
	}
	return nil, nil
}

func (f *Store) SetClockOut(id string, updMap map[string]interface{}) (bool, error) {
	rec, ok := f.Recs[id]
	if !ok || rec.ClockOut != nil {
		return false, nil
	}
	if clockOut, ok := updMap["clock_out"].(time.Time); ok {
		rec.ClockOut = &clockOut
	}
	if value, ok := updMap["early_leave_minutes"].(int); ok {
		rec.EarlyLeaveMinutes = value
	}
	if value, ok := updMap["work_duration_minutes"].(int); ok {
		rec.WorkDurationMinutes = value
	}
	if value, ok := updMap["status"].(models.AttendanceStatus); ok {
		rec.Status = value
	}
	if value, ok := updMap["notes"].(string); ok {
		rec.Notes = value
	}
	return true, nil
}

func (f *Store) ListByEmployee(employeeID string, from, to time.Time) ([]dbmodels.Attendance, error) {
	list := []dbmodels.Attendance{}
	for _, rec := range f.Recs {
		day := rec.Date.Format("2006-01-02")
		if rec.EmployeeID == employeeID && day >= from.Format("2006-01-02") && day <= to.Format("2006-01-02") {
			list = append(list, *rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Date.After(list[b].Date) })
	return list, nil
}

// ListByPeriod фильтр по подразделению не поддерживается, Employee не заполняется
func (f *Store) ListByPeriod(from, to time.Time, orgUnitID string) ([]dbmodels.Attendance, error) {
	list := []dbmodels.Attendance{}
	for _, rec := range f.Recs {
		day := rec.Date.Format("2006-01-02")
		if day >= from.Format("2006-01-02") && day <= to.Format("2006-01-02") {
			list = append(list, *rec)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].Date.Before(list[b].Date) })
	return list, nil
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}
