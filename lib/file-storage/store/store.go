package filestore

import (
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.FileStorage) (string, error)
	GetByID(id string) (*dbmodels.FileStorage, error)
	ListByDocument(kind models.DocumentKind, documentID string) ([]dbmodels.FileStorage, error)
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.FileStorage) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.FileStorage, error) {
	rec := dbmodels.FileStorage{}
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

func (i impl) ListByDocument(kind models.DocumentKind, documentID string) (list []dbmodels.FileStorage, err error) {
	err = i.db.
		Where("document_kind = ?", kind).
		Where("document_id = ?", documentID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.FileStorage{}).
		Error
}
