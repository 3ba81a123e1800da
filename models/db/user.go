package dbmodels

import (
	"fmt"
	"office-admin-backend/models"
	"strings"
	"time"
)

type User struct {
	BaseModel
	Password  string `gorm:"type:varchar(128)"`
	FirstName string `gorm:"type:varchar(150)"`
	LastName  string `gorm:"type:varchar(150)"`
	Email     string `gorm:"type:varchar(255);index"`
	IsActive  bool
	Role      models.UserRole `gorm:"type:varchar(50)"`
	LastLogin *time.Time
}

func (r User) GetFullName() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", r.FirstName, r.LastName))
}
