package dbmodels

import (
	"office-admin-backend/models"
	"time"
)

// ApprovalStep шаг последовательного согласования (визирование внутреннего письма или подпись исходящего)
type ApprovalStep struct {
	BaseModel
	DocumentKind models.DocumentKind       `gorm:"type:varchar(50);uniqueIndex:idx_approval_step_order"`
	DocumentID   string                    `gorm:"type:varchar(36);uniqueIndex:idx_approval_step_order"`
	StepOrder    int                       `gorm:"uniqueIndex:idx_approval_step_order"`
	UserID       string                    `gorm:"type:varchar(36);index"`
	User         *User                     `gorm:"foreignKey:UserID"`
	Status       models.ApprovalStepStatus `gorm:"type:varchar(20)"`
	ActedAt      *time.Time
	Notes        string
	Signature    string
}

type ApprovalHistory struct {
	BaseModel
	DocumentKind models.DocumentKind   `gorm:"type:varchar(50);index:idx_approval_history_doc"`
	DocumentID   string                `gorm:"type:varchar(36);index:idx_approval_history_doc"`
	StepID       string                `gorm:"type:varchar(36)"`
	UserID       string                `gorm:"type:varchar(36)"`
	User         *User                 `gorm:"foreignKey:UserID"`
	Action       models.ApprovalAction `gorm:"type:varchar(20)"`
	StatusBefore models.DocumentStatus `gorm:"type:varchar(50)"`
	StatusAfter  models.DocumentStatus `gorm:"type:varchar(50)"`
	Comment      string
}
