package notificationstore

import (
	"office-admin-backend/lib/utils/helpers"
	dbmodels "office-admin-backend/models/db"
	"time"

	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Notification) (string, error)
	List(userID string, onlyUnread bool, page, limit int) (list []dbmodels.Notification, rowCount int64, err error)
	MarkRead(userID string, ids []string) error
	MarkAllRead(userID string) error
	UnreadCount(userID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(userID string, onlyUnread bool, page, limit int) (list []dbmodels.Notification, rowCount int64, err error) {
	tx := i.db.Model(dbmodels.Notification{}).
		Where("user_id = ?", userID)
	if onlyUnread {
		tx = tx.Where("read_at is null")
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = helpers.SetPage(tx, page, limit).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) MarkRead(userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return i.db.Model(dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("id in (?)", ids).
		Where("read_at is null").
		Update("read_at", time.Now()).
		Error
}

func (i impl) MarkAllRead(userID string) error {
	return i.db.Model(dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("read_at is null").
		Update("read_at", time.Now()).
		Error
}

func (i impl) UnreadCount(userID string) (count int64, err error) {
	err = i.db.Model(dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("read_at is null").
		Count(&count).
		Error
	return count, err
}
