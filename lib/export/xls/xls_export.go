package xlsexport

import (
	"bytes"
	dbmodels "office-admin-backend/models/db"
	"sort"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	// ExportAttendance табель посещаемости: лист отметок и лист итогов по сотрудникам, время в поясе loc
	ExportAttendance(list []dbmodels.Attendance, loc *time.Location) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

const (
	attendanceSheet = "Посещаемость"
	summarySheet    = "Итоги"
	defaultSheet    = "Sheet1"
	unknownEmployee = "Не указан"
)

var (
	attendanceHeaders = []string{"Дата", "Сотрудник", "Должность", "Приход", "Уход", "Опоздание, мин", "Ранний уход, мин", "Отработано, мин", "Статус", "Комментарий"}
	summaryHeaders    = []string{"Сотрудник", "Дней с отметкой", "Опозданий", "Опоздание, мин", "Ранних уходов", "Ранний уход, мин", "Отработано, ч"}
)

type employeeSummary struct {
	name              string
	days              int
	lateCount         int
	lateMinutes       int
	earlyLeaveCount   int
	earlyLeaveMinutes int
	workMinutes       int
}

func (i impl) ExportAttendance(list []dbmodels.Attendance, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := writeAttendance(f, list, loc); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа посещаемости в xlsx")
	}
	if err := writeSummary(f, list); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа итогов в xlsx")
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return nil, errors.Wrap(err, "ошибка удаления пустого листа xlsx")
	}
	return f.WriteToBuffer()
}

func writeAttendance(f *excelize.File, list []dbmodels.Attendance, loc *time.Location) error {
	w, err := newSheetWriter(f, attendanceSheet, attendanceHeaders)
	if err != nil {
		return err
	}
	for _, item := range list {
		name, position := "", ""
		if item.Employee != nil {
			name, position = item.Employee.FullName, item.Employee.Position
		}
		err = w.writeRow([]interface{}{
			item.Date.Format("02.01.2006"),
			name,
			position,
			formatTime(item.ClockIn, loc),
			formatTime(item.ClockOut, loc),
			item.LateMinutes,
			item.EarlyLeaveMinutes,
			item.WorkDurationMinutes,
			item.Status.ToHuman(),
			item.Notes,
		})
		if err != nil {
			return err
		}
	}
	return w.finish()
}

func writeSummary(f *excelize.File, list []dbmodels.Attendance) error {
	w, err := newSheetWriter(f, summarySheet, summaryHeaders)
	if err != nil {
		return err
	}
	for _, item := range summarize(list) {
		err = w.writeRow([]interface{}{
			item.name,
			item.days,
			item.lateCount,
			item.lateMinutes,
			item.earlyLeaveCount,
			item.earlyLeaveMinutes,
			float64(item.workMinutes) / 60,
		})
		if err != nil {
			return err
		}
	}
	return w.finish()
}

// summarize итоги по сотрудникам в алфавитном порядке
func summarize(list []dbmodels.Attendance) []employeeSummary {
	byEmployee := map[string]*employeeSummary{}
	for _, item := range list {
		summary, ok := byEmployee[item.EmployeeID]
		if !ok {
			summary = &employeeSummary{name: unknownEmployee}
			if item.Employee != nil {
				summary.name = item.Employee.FullName
			}
			byEmployee[item.EmployeeID] = summary
		}
		if item.ClockIn != nil {
			summary.days++
		}
		if item.LateMinutes > 0 {
			summary.lateCount++
			summary.lateMinutes += item.LateMinutes
		}
		if item.EarlyLeaveMinutes > 0 {
			summary.earlyLeaveCount++
			summary.earlyLeaveMinutes += item.EarlyLeaveMinutes
		}
		summary.workMinutes += item.WorkDurationMinutes
	}
	result := make([]employeeSummary, 0, len(byEmployee))
	for _, summary := range byEmployee {
		result = append(result, *summary)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].name < result[b].name
	})
	return result
}
