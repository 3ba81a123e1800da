package models

type AttendanceStatus string

const (
	AttendancePresent    AttendanceStatus = "present"
	AttendanceLate       AttendanceStatus = "late"
	AttendanceEarlyLeave AttendanceStatus = "early_leave"
	AttendanceAbsent     AttendanceStatus = "absent"
)

var attendanceHumanName = map[AttendanceStatus]string{
	AttendancePresent:    "Присутствует",
	AttendanceLate:       "Опоздание",
	AttendanceEarlyLeave: "Ранний уход",
	AttendanceAbsent:     "Отсутствует",
}

func (s AttendanceStatus) ToHuman() string {
	if human, exist := attendanceHumanName[s]; exist {
		return human
	}
	return string(s)
}
