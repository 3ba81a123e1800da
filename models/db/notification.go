package dbmodels

import (
	"office-admin-backend/models"
	"time"
)

type Notification struct {
	BaseModel
	UserID    string                  `gorm:"type:varchar(36);index:idx_user"`
	Code      models.NotificationCode `gorm:"type:varchar(255);index:idx_notification_code"`
	Title     string
	Msg       string
	Data      JSONMap `gorm:"type:jsonb"`
	ActionURL string  `gorm:"type:varchar(500)"`
	ReadAt    *time.Time
}
