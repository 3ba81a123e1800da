package dispositionstore

import (
	"office-admin-backend/lib/utils/helpers"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Disposition) (id string, err error)
	GetByID(id string) (*dbmodels.Disposition, error)
	// UpdateStatus меняет диспозицию, только если она все еще в статусе from
	UpdateStatus(id string, from models.DispositionStatus, updMap map[string]interface{}) (bool, error)
	// ListByLetter все узлы дерева по письму
	ListByLetter(letterID string) ([]dbmodels.Disposition, error)
	ListForUser(toUserID string, status models.DispositionStatus, page, limit int) (list []dbmodels.Disposition, rowCount int64, err error)
	// ListOverdue неисполненные диспозиции с истекшим сроком, о которых еще не уведомляли
	ListOverdue(now time.Time, limit int) ([]dbmodels.Disposition, error)
	SetOverdueNotified(id string, at time.Time) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Disposition) (id string, err error) {
	err = i.db.
		Omit("FromUser", "ToUser").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Disposition, error) {
	rec := dbmodels.Disposition{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateStatus(id string, from models.DispositionStatus, updMap map[string]interface{}) (bool, error) {
	res := i.db.
		Model(&dbmodels.Disposition{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) ListByLetter(letterID string) (list []dbmodels.Disposition, err error) {
	err = i.db.
		Preload("FromUser").
		Preload("ToUser").
		Where("incoming_letter_id = ?", letterID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForUser(toUserID string, status models.DispositionStatus, page, limit int) (list []dbmodels.Disposition, rowCount int64, err error) {
	tx := i.db.
		Model(&dbmodels.Disposition{}).
		Where("to_user_id = ?", toUserID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = helpers.SetPage(tx, page, limit).
		Preload("FromUser").
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListOverdue(now time.Time, limit int) (list []dbmodels.Disposition, err error) {
	err = i.db.
		Where("deadline < ?", now).
		Where("status <> ?", models.DispositionCompleted).
		Where("overdue_notified_at is null").
		Order("deadline").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetOverdueNotified(id string, at time.Time) (bool, error) {
	res := i.db.
		Model(&dbmodels.Disposition{}).
		Where("id = ?", id).
		Where("overdue_notified_at is null").
		Update("overdue_notified_at", at)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
