package dbmodels

import (
	"github.com/pkg/errors"
)

// OrgUnit подразделение. Level 1 - верхний уровень организации (дирекция)
type OrgUnit struct {
	BaseModel
	ParentID       *string `gorm:"type:varchar(36);index"`
	Name           string  `gorm:"type:varchar(255)"`
	Level          int
	HeadEmployeeID *string   `gorm:"type:varchar(36)"`
	HeadEmployee   *Employee `gorm:"foreignKey:HeadEmployeeID"`
}

func (d *OrgUnit) Validate() error {
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	if d.Level < 1 {
		return errors.New("уровень подразделения должен быть больше нуля")
	}
	return nil
}

func (d OrgUnit) GetParentID() string {
	if d.ParentID == nil {
		return ""
	}
	return *d.ParentID
}

func (d OrgUnit) GetHeadEmployeeID() string {
	if d.HeadEmployeeID == nil {
		return ""
	}
	return *d.HeadEmployeeID
}
