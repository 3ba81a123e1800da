package attendancehandler

import (
	"office-admin-backend/config"
	"office-admin-backend/lib/utils/helpers"
	"time"
)

// Schedule рабочий день организации
type Schedule struct {
	WorkStart string
	WorkEnd   string
	Location  *time.Location
}

func ScheduleFromConfig() Schedule {
	return Schedule{
		WorkStart: config.Conf.Attendance.WorkStart,
		WorkEnd:   config.Conf.Attendance.WorkEnd,
		Location:  helpers.LoadLocation(config.Conf.Attendance.Timezone),
	}
}

// Bounds начало и конец рабочего дня для даты day
func (s Schedule) Bounds(day time.Time) (start, end time.Time, err error) {
	start, err = helpers.ClockOnDate(s.WorkStart, day, s.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = helpers.ClockOnDate(s.WorkEnd, day, s.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (s Schedule) Day(t time.Time) time.Time {
	return helpers.StartOfDay(t, s.Location)
}
