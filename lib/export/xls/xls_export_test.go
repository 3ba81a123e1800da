package xlsexport

import (
	"testing"
	"time"

	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportAttendance(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	ivanov := &dbmodels.Employee{FullName: "Иванов Иван", Position: "Инженер"}
	clockIn := time.Date(2024, 3, 14, 6, 10, 0, 0, time.UTC)
	clockOut := time.Date(2024, 3, 14, 12, 40, 0, 0, time.UTC)
	list := []dbmodels.Attendance{
		{
			EmployeeID:          "e1",
			Employee:            ivanov,
			Date:                time.Date(2024, 3, 14, 0, 0, 0, 0, loc),
			ClockIn:             &clockIn,
			ClockOut:            &clockOut,
			LateMinutes:         70,
			EarlyLeaveMinutes:   80,
			WorkDurationMinutes: 390,
			Status:              models.AttendanceLate,
		},
		{
			EmployeeID: "e2",
			Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, loc),
			Status:     models.AttendanceAbsent,
		},
	}

	buf, err := NewInstance().ExportAttendance(list, loc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{attendanceSheet, summarySheet}, f.GetSheetList())

	t.Run("attendance sheet", func(t *testing.T) {
		rows, err := f.GetRows(attendanceSheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, attendanceHeaders, rows[0])
		require.Equal(t, "14.03.2024", rows[1][0])
		require.Equal(t, "Иванов Иван", rows[1][1])
		require.Equal(t, "09:10", rows[1][3])
		require.Equal(t, "15:40", rows[1][4])
		require.Equal(t, "70", rows[1][5])
		require.Equal(t, "Опоздание", rows[1][8])
		require.Equal(t, "", rows[2][1])
		require.Equal(t, "Отсутствует", rows[2][8])
	})
	t.Run("summary sheet", func(t *testing.T) {
		rows, err := f.GetRows(summarySheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.Equal(t, summaryHeaders, rows[0])
		require.Equal(t, []string{"Иванов Иван", "1", "1", "70", "1", "80", "6.5"}, rows[1])
		require.Equal(t, unknownEmployee, rows[2][0])
		require.Equal(t, "0", rows[2][1])
	})
}

func TestExportAttendanceEmpty(t *testing.T) {
	buf, err := NewInstance().ExportAttendance(nil, time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(attendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	rows, err = f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
