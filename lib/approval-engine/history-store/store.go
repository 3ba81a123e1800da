package approvalhistorystore

import (
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApprovalHistory) (id string, err error)
	List(kind models.DocumentKind, documentID string) (list []dbmodels.ApprovalHistory, err error)
	DeleteByDocument(kind models.DocumentKind, documentID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalHistory) (id string, err error) {
	err = i.db.
		Omit("User").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(kind models.DocumentKind, documentID string) (list []dbmodels.ApprovalHistory, err error) {
	list = []dbmodels.ApprovalHistory{}
	err = i.db.
		Where("document_kind = ?", kind).
		Where("document_id = ?", documentID).
		Order("created_at ASC").
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByDocument(kind models.DocumentKind, documentID string) error {
	return i.db.
		Where("document_kind = ?", kind).
		Where("document_id = ?", documentID).
		Delete(&dbmodels.ApprovalHistory{}).
		Error
}
