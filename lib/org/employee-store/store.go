package employeestore

import (
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Employee) (string, error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.Employee, error)
	GetByUserID(userID string) (*dbmodels.Employee, error)
	ListByUnit(orgUnitID string) ([]dbmodels.Employee, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Employee) (string, error) {
	err := i.db.
		Omit("User", "OrgUnit").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Employee{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.Employee, error) {
	return i.first(i.db.Where("id = ?", id))
}

func (i impl) GetByUserID(userID string) (*dbmodels.Employee, error) {
	return i.first(i.db.Where("user_id = ?", userID))
}

func (i impl) first(tx *gorm.DB) (*dbmodels.Employee, error) {
	rec := dbmodels.Employee{}
	err := tx.
		Preload("User").
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

func (i impl) ListByUnit(orgUnitID string) (list []dbmodels.Employee, err error) {
	err = i.db.
		Where("org_unit_id = ?", orgUnitID).
		Preload("User").
		Order("full_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
