package attendanceapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type ClockRequest struct {
	Notes string `json:"notes" validate:"max=500"`
}

func (r ClockRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type HistoryFilter struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"` // Дата начала периода, ГГГГ-ММ-ДД
	To   string `json:"to" validate:"required,datetime=2006-01-02"`   // Дата окончания периода, ГГГГ-ММ-ДД
}

func (r HistoryFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

// Period границы периода в часовом поясе графика, to включительно
func (r HistoryFilter) Period(loc *time.Location) (from, to time.Time, err error) {
	from, err = time.ParseInLocation("2006-01-02", r.From, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err = time.ParseInLocation("2006-01-02", r.To, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

type ReportFilter struct {
	HistoryFilter
	OrgUnitID string `json:"org_unit_id" validate:"omitempty,uuid"` // Подразделение, по умолчанию все
}

func (r ReportFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

type AttendanceView struct {
	ID                  string                  `json:"id"`
	EmployeeID          string                  `json:"employee_id"`
	Date                string                  `json:"date"`
	ClockIn             *time.Time              `json:"clock_in"`
	ClockOut            *time.Time              `json:"clock_out"`
	LateMinutes         int                     `json:"late_minutes"`
	EarlyLeaveMinutes   int                     `json:"early_leave_minutes"`
	WorkDurationMinutes int                     `json:"work_duration_minutes"`
	Status              models.AttendanceStatus `json:"status"`
	StatusName          string                  `json:"status_name"`
	Notes               string                  `json:"notes"`
}

func AttendanceConvert(rec dbmodels.Attendance) AttendanceView {
	return AttendanceView{
		ID:                  rec.ID,
		EmployeeID:          rec.EmployeeID,
		Date:                rec.Date.Format("2006-01-02"),
		ClockIn:             rec.ClockIn,
		ClockOut:            rec.ClockOut,
		LateMinutes:         rec.LateMinutes,
		EarlyLeaveMinutes:   rec.EarlyLeaveMinutes,
		WorkDurationMinutes: rec.WorkDurationMinutes,
		Status:              rec.Status,
		StatusName:          rec.Status.ToHuman(),
		Notes:               rec.Notes,
	}
}
