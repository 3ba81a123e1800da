package dbmodels

import (
	"office-admin-backend/models"
	"time"
)

// Disposition узел дерева поручений по входящему письму.
// ParentDispositionID - слабая ссылка на родителя, nil у корневых диспозиций
type Disposition struct {
	BaseModel
	IncomingLetterID    string                   `gorm:"type:varchar(36);index"`
	ParentDispositionID *string                  `gorm:"type:varchar(36);index"`
	FromUserID          string                   `gorm:"type:varchar(36);index"`
	FromUser            *User                    `gorm:"foreignKey:FromUserID"`
	ToUserID            string                   `gorm:"type:varchar(36);index"`
	ToUser              *User                    `gorm:"foreignKey:ToUserID"`
	Status              models.DispositionStatus `gorm:"type:varchar(20);index"`
	Instruction         string
	Response            string
	Deadline            *time.Time
	ReadAt              *time.Time
	StartedAt           *time.Time
	CompletedAt         *time.Time
	OverdueNotifiedAt   *time.Time
}

func (d Disposition) GetParentID() string {
	if d.ParentDispositionID == nil {
		return ""
	}
	return *d.ParentDispositionID
}

func (d Disposition) IsOverdue(now time.Time) bool {
	return d.Deadline != nil && !d.Status.IsCompleted() && d.Deadline.Before(now)
}
