package dbmodels

import (
	"office-admin-backend/models"
	"time"
)

// EarlyLeaveRequest заявка на ранний уход.
// Этапы: замещающий (если указан) -> руководитель -> отдел кадров; подпись директора информационная
type EarlyLeaveRequest struct {
	BaseModel
	EmployeeID   string    `gorm:"type:varchar(36);index"`
	Employee     *Employee `gorm:"foreignKey:EmployeeID"`
	Date         time.Time `gorm:"type:date;index"`
	LeaveTime    time.Time
	Reason       string
	Status       models.EarlyLeaveStatus `gorm:"type:varchar(50);index"`
	AutoCheckout bool
	AttendanceID *string `gorm:"type:varchar(36)"`

	DelegationEmployeeID *string `gorm:"type:varchar(36);index"`
	DelegationApprovedAt *time.Time
	DelegationNotes      string

	SupervisorID         *string `gorm:"type:varchar(36)"`
	SupervisorApprovedAt *time.Time
	SupervisorNotes      string

	ApprovedBy *string `gorm:"type:varchar(36)"`
	ApprovedAt *time.Time
	HRNotes    string

	DirectorID       *string `gorm:"type:varchar(36)"`
	DirectorSignedAt *time.Time
	DirectorNotes    string

	RejectedBy      *string `gorm:"type:varchar(36)"`
	RejectedAt      *time.Time
	RejectionReason string
}

func (r EarlyLeaveRequest) HasDelegation() bool {
	return r.DelegationEmployeeID != nil && *r.DelegationEmployeeID != ""
}

func (r EarlyLeaveRequest) GetAttendanceID() string {
	if r.AttendanceID == nil {
		return ""
	}
	return *r.AttendanceID
}
