package approvalstepstore

import (
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	CreateBatch(list []dbmodels.ApprovalStep) error
	GetByID(id string) (*dbmodels.ApprovalStep, error)
	// GetForUpdate шаг с блокировкой строки, вызывается после блокировки документа
	GetForUpdate(id string) (*dbmodels.ApprovalStep, error)
	// List шаги документа по возрастанию порядка
	List(kind models.DocumentKind, documentID string) ([]dbmodels.ApprovalStep, error)
	// UpdateStatus меняет статус шага только если текущий статус равен from
	UpdateStatus(id string, from models.ApprovalStepStatus, updMap map[string]interface{}) (bool, error)
	DeleteByDocument(kind models.DocumentKind, documentID string) error
	ListPendingForUser(userID string) ([]dbmodels.ApprovalStep, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateBatch(list []dbmodels.ApprovalStep) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Omit("User").
		Create(&list).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.ApprovalStep, error) {
	return i.get(i.db, id)
}

func (i impl) GetForUpdate(id string) (*dbmodels.ApprovalStep, error) {
	return i.get(i.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (i impl) get(tx *gorm.DB, id string) (*dbmodels.ApprovalStep, error) {
	rec := dbmodels.ApprovalStep{}
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

func (i impl) List(kind models.DocumentKind, documentID string) (list []dbmodels.ApprovalStep, err error) {
	list = []dbmodels.ApprovalStep{}
	err = i.db.
		Where("document_kind = ?", kind).
		Where("document_id = ?", documentID).
		Order("step_order ASC").
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateStatus(id string, from models.ApprovalStepStatus, updMap map[string]interface{}) (bool, error) {
	res := i.db.
		Model(&dbmodels.ApprovalStep{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (i impl) DeleteByDocument(kind models.DocumentKind, documentID string) error {
	return i.db.
		Where("document_kind = ?", kind).
		Where("document_id = ?", documentID).
		Delete(&dbmodels.ApprovalStep{}).
		Error
}

func (i impl) ListPendingForUser(userID string) (list []dbmodels.ApprovalStep, err error) {
	list = []dbmodels.ApprovalStep{}
	err = i.db.
		Where("user_id = ?", userID).
		Where("status = ?", models.StepPending).
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
