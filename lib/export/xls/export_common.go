package xlsexport

import (
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const (
	columnWidth = 22
	fontFamily  = "Times New Roman"
	fontSize    = 11
)

// sheetWriter построчная запись листа: заголовок, затем строки данных
type sheetWriter struct {
	f         *excelize.File
	sheet     string
	columns   int
	row       int
	dataStyle int
	firstData int
}

func newSheetWriter(f *excelize.File, sheet string, headers []string) (*sheetWriter, error) {
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, errors.Wrapf(err, "ошибка создания листа %v", sheet)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: fontSize},
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания стиля заголовка")
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
		Font:      &excelize.Font{Family: fontFamily, Size: fontSize},
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания стиля данных")
	}
	w := &sheetWriter{
		f:         f,
		sheet:     sheet,
		columns:   len(headers),
		dataStyle: dataStyle,
	}
	values := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		values = append(values, header)
	}
	if err = w.writeRow(values); err != nil {
		return nil, err
	}
	if err = w.setStyle(w.row, w.row, headerStyle); err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(w.columns)
	if err != nil {
		return nil, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return nil, err
	}
	w.firstData = w.row + 1
	return w, nil
}

func (w *sheetWriter) writeRow(values []interface{}) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(w.sheet, cell, &values)
}

// finish стиль на все строки данных
func (w *sheetWriter) finish() error {
	if w.row < w.firstData {
		return nil
	}
	return w.setStyle(w.firstData, w.row, w.dataStyle)
}

func (w *sheetWriter) setStyle(rowFrom, rowTo, style int) error {
	cellFirst, err := excelize.CoordinatesToCellName(1, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(w.columns, rowTo)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, cellFirst, cellLast, style)
}

func formatTime(value *time.Time, loc *time.Location) string {
	if value == nil {
		return ""
	}
	if loc != nil {
		return value.In(loc).Format("15:04")
	}
	return value.Format("15:04")
}
