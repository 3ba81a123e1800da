package outgoingletterstore

import (
	"office-admin-backend/lib/utils/helpers"
	letterapimodels "office-admin-backend/models/api/letter"
	dbmodels "office-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.OutgoingLetter) (id string, err error)
	GetByID(id string) (*dbmodels.OutgoingLetter, error)
	// GetForUpdate читает исходящее письмо с блокировкой строки до конца транзакции
	GetForUpdate(id string) (*dbmodels.OutgoingLetter, error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	List(userID string, filter letterapimodels.LetterFilter) (list []dbmodels.OutgoingLetter, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.OutgoingLetter) (id string, err error) {
	err = i.db.
		Omit("Creator").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.OutgoingLetter, error) {
	return i.first(i.db.Preload("Creator"), id)
}

func (i impl) GetForUpdate(id string) (*dbmodels.OutgoingLetter, error) {
	return i.first(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) first(tx *gorm.DB, id string) (*dbmodels.OutgoingLetter, error) {
	rec := dbmodels.OutgoingLetter{}
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
		Model(&dbmodels.OutgoingLetter{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) Delete(id string) error {
	rec := dbmodels.OutgoingLetter{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List(userID string, filter letterapimodels.LetterFilter) (list []dbmodels.OutgoingLetter, rowCount int64, err error) {
	tx := i.db.Model(&dbmodels.OutgoingLetter{})
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(subject) like ? OR LOWER(number) like ?", search, search)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.OnlyMine {
		tx = tx.Where("creator_id = ?", userID)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = helpers.SetPage(tx, filter.Page, filter.Limit).
		Preload("Creator").
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
