package dbmodels

import (
	"office-admin-backend/models"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Letter внутреннее письмо (служебная записка), проходит последовательное согласование
type Letter struct {
	BaseModel
	Number    string `gorm:"type:varchar(100);index"`
	Subject   string `gorm:"type:varchar(255)"`
	Body      string
	CreatorID string                `gorm:"type:varchar(36);index"`
	Creator   *User                 `gorm:"foreignKey:CreatorID"`
	OrgUnitID *string               `gorm:"type:varchar(36)"`
	Priority  models.LetterPriority `gorm:"type:varchar(20)"`
	Status    models.DocumentStatus `gorm:"type:varchar(50);index"`
}

func (l *Letter) AfterDelete(tx *gorm.DB) (err error) {
	if l.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).
		Where("document_kind = ? AND document_id = ?", models.LetterKind, l.ID).
		Delete(&ApprovalStep{})
	return
}

// OutgoingLetter исходящее письмо, подписывается по очереди всеми подписантами
type OutgoingLetter struct {
	BaseModel
	Number     string `gorm:"type:varchar(100);index"`
	Subject    string `gorm:"type:varchar(255)"`
	Body       string
	Recipients pq.StringArray        `gorm:"type:text[]"`
	CreatorID  string                `gorm:"type:varchar(36);index"`
	Creator    *User                 `gorm:"foreignKey:CreatorID"`
	OrgUnitID  *string               `gorm:"type:varchar(36)"`
	Priority   models.LetterPriority `gorm:"type:varchar(20)"`
	Status     models.DocumentStatus `gorm:"type:varchar(50);index"`
	SentAt     *time.Time
}

func (l *OutgoingLetter) AfterDelete(tx *gorm.DB) (err error) {
	if l.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).
		Where("document_kind = ? AND document_id = ?", models.OutgoingLetterKind, l.ID).
		Delete(&ApprovalStep{})
	return
}

// IncomingLetter входящее письмо, исполняется по цепочке диспозиций
type IncomingLetter struct {
	BaseModel
	Number       string `gorm:"type:varchar(100);index"`
	Sender       string `gorm:"type:varchar(255)"`
	Subject      string `gorm:"type:varchar(255)"`
	Summary      string
	ReceivedAt   time.Time
	RegistrarID  string                `gorm:"type:varchar(36);index"`
	Registrar    *User                 `gorm:"foreignKey:RegistrarID"`
	OrgUnitID    *string               `gorm:"type:varchar(36);index"`
	Priority     models.LetterPriority `gorm:"type:varchar(20)"`
	Status       models.DocumentStatus `gorm:"type:varchar(50);index"`
	Dispositions []Disposition         `gorm:"foreignKey:IncomingLetterID"`
}

func (l *IncomingLetter) AfterDelete(tx *gorm.DB) (err error) {
	if l.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("incoming_letter_id = ?", l.ID).Delete(&Disposition{})
	return
}

func (l IncomingLetter) GetOrgUnitID() string {
	if l.OrgUnitID == nil {
		return ""
	}
	return *l.OrgUnitID
}
