package incomingletterstore

import (
	"office-admin-backend/lib/utils/helpers"
	"office-admin-backend/models"
	incomingletterapimodels "office-admin-backend/models/api/incoming-letter"
	dbmodels "office-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.IncomingLetter) (id string, err error)
	GetByID(id string) (*dbmodels.IncomingLetter, error)
	// GetForUpdate читает письмо с блокировкой строки до конца транзакции
	GetForUpdate(id string) (*dbmodels.IncomingLetter, error)
	Update(id string, updMap map[string]interface{}) error
	// SetStatus меняет статус, только если письмо все еще в статусе from
	SetStatus(id string, from, to models.DocumentStatus) (bool, error)
	List(filter incomingletterapimodels.IncomingLetterFilter) (list []dbmodels.IncomingLetter, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.IncomingLetter) (id string, err error) {
	err = i.db.
		Omit("Registrar", "Dispositions").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.IncomingLetter, error) {
	return i.first(i.db.Preload("Registrar"), id)
}

func (i impl) GetForUpdate(id string) (*dbmodels.IncomingLetter, error) {
	return i.first(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) first(tx *gorm.DB, id string) (*dbmodels.IncomingLetter, error) {
	rec := dbmodels.IncomingLetter{}
	err := tx.
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.IncomingLetter{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) SetStatus(id string, from, to models.DocumentStatus) (bool, error) {
	res := i.db.
		Model(&dbmodels.IncomingLetter{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) List(filter incomingletterapimodels.IncomingLetterFilter) (list []dbmodels.IncomingLetter, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.IncomingLetter{})
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(subject) like ? OR LOWER(number) like ? OR LOWER(sender) like ?", search, search, search)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = helpers.SetPage(tx, filter.Page, filter.Limit).
		Preload("Registrar").
		Order("received_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
