package userstore

import (
	"office-admin-backend/lib/utils/helpers"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.User) (string, error)
	Update(userID string, updMap map[string]interface{}) error
	GetByID(userID string) (rec *dbmodels.User, err error)
	FindByEmail(email string) (rec *dbmodels.User, err error)
	List(search string, page, limit int) (list []dbmodels.User, err error)
	// ListByRoles активные пользователи с одной из ролей
	ListByRoles(roles []models.UserRole) (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", userID).
		Updates(updMap).
		Error
}

func (i impl) GetByID(userID string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) FindByEmail(email string) (rec *dbmodels.User, err error) {
	err = i.db.Model(dbmodels.User{}).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(search string, page, limit int) (list []dbmodels.User, err error) {
	tx := i.db.Model(dbmodels.User{})
	if search != "" {
		tx = tx.Where("LOWER(first_name|| ' ' || last_name) like ?", "%"+strings.ToLower(search)+"%")
	}
	tx = helpers.SetPage(tx, page, limit)
	err = tx.
		Order("last_name, first_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByRoles(roles []models.UserRole) (list []dbmodels.User, err error) {
	if len(roles) == 0 {
		return []dbmodels.User{}, nil
	}
	err = i.db.Model(dbmodels.User{}).
		Where("role in (?)", roles).
		Where("is_active = ?", true).
		Order("last_name, first_name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
