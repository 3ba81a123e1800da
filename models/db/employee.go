package dbmodels

import "github.com/pkg/errors"

type Employee struct {
	BaseModel
	UserID    *string `gorm:"type:varchar(36);uniqueIndex"`
	User      *User
	OrgUnitID string `gorm:"type:varchar(36);index"`
	OrgUnit   *OrgUnit
	FullName  string `gorm:"type:varchar(255)"`
	Position  string `gorm:"type:varchar(255)"`
}

func (e *Employee) Validate() error {
	if e.OrgUnitID == "" {
		return errors.New("не указано подразделение сотрудника")
	}
	if e.FullName == "" {
		return errors.New("не указано ФИО сотрудника")
	}
	return nil
}

func (e Employee) GetUserID() string {
	if e.UserID == nil {
		return ""
	}
	return *e.UserID
}
