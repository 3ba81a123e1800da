package earlyleavestore

import (
	"office-admin-backend/lib/utils/helpers"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.EarlyLeaveRequest) (string, error)
	GetByID(id string) (*dbmodels.EarlyLeaveRequest, error)
	GetForUpdate(id string) (*dbmodels.EarlyLeaveRequest, error)
	// UpdateStatus меняет заявку, только если она все еще в статусе from
	UpdateStatus(id string, from models.EarlyLeaveStatus, updMap map[string]interface{}) (bool, error)
	// SetDirectorSign фиксирует подпись директора один раз, статус не меняется
	SetDirectorSign(id string, updMap map[string]interface{}) (bool, error)
	ListByEmployee(employeeID string, status models.EarlyLeaveStatus, page, limit int) ([]dbmodels.EarlyLeaveRequest, int64, error)
	ListByStatuses(statuses []models.EarlyLeaveStatus) ([]dbmodels.EarlyLeaveRequest, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EarlyLeaveRequest) (string, error) {
	err := i.db.
		Omit("Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.EarlyLeaveRequest, error) {
	return i.first(i.db.
		Preload("Employee").
		Where("id = ?", id))
}

func (i impl) GetForUpdate(id string) (*dbmodels.EarlyLeaveRequest, error) {
	return i.first(i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (i impl) first(tx *gorm.DB) (*dbmodels.EarlyLeaveRequest, error) {
	rec := dbmodels.EarlyLeaveRequest{}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateStatus(id string, from models.EarlyLeaveStatus, updMap map[string]interface{}) (bool, error) {
	res := i.db.
		Model(&dbmodels.EarlyLeaveRequest{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) SetDirectorSign(id string, updMap map[string]interface{}) (bool, error) {
	res := i.db.
		Model(&dbmodels.EarlyLeaveRequest{}).
		Where("id = ?", id).
		Where("status = ?", models.ELStatusApproved).
		Where("director_signed_at is null").
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) ListByEmployee(employeeID string, status models.EarlyLeaveStatus, page, limit int) (list []dbmodels.EarlyLeaveRequest, rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.EarlyLeaveRequest{}).
		Where("employee_id = ?", employeeID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = helpers.SetPage(tx, page, limit).
		Preload("Employee").
		Order("date desc, created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListByStatuses(statuses []models.EarlyLeaveStatus) (list []dbmodels.EarlyLeaveRequest, err error) {
	if len(statuses) == 0 {
		return []dbmodels.EarlyLeaveRequest{}, nil
	}
	err = i.db.
		Preload("Employee").
		Where("status in (?)", statuses).
		Order("date, created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
