package orgunitstore

import (
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.OrgUnit) (string, error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (*dbmodels.OrgUnit, error)
	List() ([]dbmodels.OrgUnit, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.OrgUnit) (string, error) {
	err := i.db.
		Omit("HeadEmployee").
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
		Model(&dbmodels.OrgUnit{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.OrgUnit, error) {
	rec := dbmodels.OrgUnit{}
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

func (i impl) List() (list []dbmodels.OrgUnit, err error) {
	err = i.db.
		Order("level, name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
