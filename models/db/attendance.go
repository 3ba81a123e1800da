package dbmodels

import (
	"office-admin-backend/models"
	"time"
)

type Attendance struct {
	BaseModel
	EmployeeID          string    `gorm:"type:varchar(36);uniqueIndex:idx_attendance_day"`
	Employee            *Employee `gorm:"foreignKey:EmployeeID"`
	Date                time.Time `gorm:"type:date;uniqueIndex:idx_attendance_day"`
	ClockIn             *time.Time
	ClockOut            *time.Time
	LateMinutes         int
	EarlyLeaveMinutes   int
	WorkDurationMinutes int
	Status              models.AttendanceStatus `gorm:"type:varchar(20)"`
	Notes               string
}

// CalculateLateMinutes опоздание относительно начала рабочего дня
func (a *Attendance) CalculateLateMinutes(workStart time.Time) int {
	a.LateMinutes = 0
	if a.ClockIn != nil && a.ClockIn.After(workStart) {
		a.LateMinutes = int(a.ClockIn.Sub(workStart).Minutes())
	}
	return a.LateMinutes
}

// CalculateEarlyLeaveMinutes сколько минут не доработано до конца рабочего дня
func (a *Attendance) CalculateEarlyLeaveMinutes(workEnd time.Time) int {
	a.EarlyLeaveMinutes = 0
	if a.ClockOut != nil && a.ClockOut.Before(workEnd) {
		a.EarlyLeaveMinutes = int(workEnd.Sub(*a.ClockOut).Minutes())
	}
	return a.EarlyLeaveMinutes
}

func (a *Attendance) CalculateWorkDuration() int {
	a.WorkDurationMinutes = 0
	if a.ClockIn != nil && a.ClockOut != nil && a.ClockOut.After(*a.ClockIn) {
		a.WorkDurationMinutes = int(a.ClockOut.Sub(*a.ClockIn).Minutes())
	}
	return a.WorkDurationMinutes
}
