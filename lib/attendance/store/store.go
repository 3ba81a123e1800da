package attendancestore

import (
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Attendance) (string, error)
	GetByID(id string) (*dbmodels.Attendance, error)
	GetForUpdate(id string) (*dbmodels.Attendance, error)
	GetByEmployeeDate(employeeID string, date time.Time) (*dbmodels.Attendance, error)
	// SetClockOut фиксирует уход, только если он еще не отмечен
	SetClockOut(id string, updMap map[string]interface{}) (bool, error)
	ListByEmployee(employeeID string, from, to time.Time) ([]dbmodels.Attendance, error)
	// ListByPeriod отметки всех сотрудников за период, orgUnitID опционален
	ListByPeriod(from, to time.Time, orgUnitID string) ([]dbmodels.Attendance, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Attendance) (string, error) {
	err := i.db.
		Omit("Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Attendance, error) {
	return i.first(i.db.Where("id = ?", id))
}

func (i impl) GetForUpdate(id string) (*dbmodels.Attendance, error) {
	return i.first(i.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (i impl) GetByEmployeeDate(employeeID string, date time.Time) (*dbmodels.Attendance, error) {
	return i.first(i.db.
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")))
}

func (i impl) first(tx *gorm.DB) (*dbmodels.Attendance, error) {
	rec := dbmodels.Attendance{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) SetClockOut(id string, updMap map[string]interface{}) (bool, error) {
	res := i.db.
		Model(&dbmodels.Attendance{}).
		Where("id = ?", id).
		Where("clock_out is null").
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) ListByEmployee(employeeID string, from, to time.Time) (list []dbmodels.Attendance, err error) {
	err = i.db.
		Where("employee_id = ?", employeeID).
		Where("date between ? and ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByPeriod(from, to time.Time, orgUnitID string) (list []dbmodels.Attendance, err error) {
	tx := i.db.
		Preload("Employee").
		Where("date between ? and ?", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if orgUnitID != "" {
		tx = tx.Where("employee_id in (?)", i.db.
			Model(&dbmodels.Employee{}).
			Select("id").
			Where("org_unit_id = ?", orgUnitID))
	}
	err = tx.
		Order("date, employee_id").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
