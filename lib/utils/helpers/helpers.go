package helpers

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

func GetPage(pageValue, limitValue int) (page, limit int) {
	page = 1
	limit = 20
	if pageValue > 0 {
		page = pageValue
	}
	if limitValue > 0 {
		limit = limitValue
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func SetPage(tx *gorm.DB, pageValue, limitValue int) *gorm.DB {
	page, limit := GetPage(pageValue, limitValue)
	offset := (page - 1) * limit
	return tx.Limit(limit).Offset(offset)
}

// ClockOnDate время "15:04" в указанный день в локации loc
func ClockOnDate(clock string, day time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "некорректное время %q", clock)
	}
	if loc == nil {
		loc = time.Local
	}
	day = day.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// StartOfDay полночь указанного дня в локации loc
func StartOfDay(day time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	day = day.In(loc)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
}

func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func PtrTo[T any](v T) *T {
	return &v
}
