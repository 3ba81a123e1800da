package earlyleaveapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type SubmitRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"` // Дата ухода, ГГГГ-ММ-ДД
	LeaveTime string `json:"leave_time" validate:"required,datetime=15:04"` // Время ухода, ЧЧ:ММ
	Reason    string `json:"reason" validate:"required,max=1000"`
	// Замещающий сотрудник. Если указан, заявку сначала согласует он
	DelegationEmployeeID *string `json:"delegation_employee_id" validate:"omitempty,uuid"`
	// Отметить уход автоматически после согласования отделом кадров
	AutoCheckout bool `json:"auto_checkout"`
}

func (r SubmitRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type DecisionRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

func (r DecisionRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=2000"`
}

func (r RejectRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type Scope string

const (
	ScopeMine      Scope = "mine"
	ScopeToApprove Scope = "to_approve"
)

type EarlyLeaveFilter struct {
	apimodels.Pagination
	// mine - свои заявки, to_approve - ожидающие решения текущего пользователя
	Scope  Scope                   `json:"scope" validate:"omitempty,oneof=mine to_approve"`
	Status models.EarlyLeaveStatus `json:"status"`
}

func (r EarlyLeaveFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

type EarlyLeaveView struct {
	ID                   string                  `json:"id"`
	EmployeeID           string                  `json:"employee_id"`
	EmployeeName         string                  `json:"employee_name"`
	Date                 string                  `json:"date"`
	LeaveTime            string                  `json:"leave_time"`
	Reason               string                  `json:"reason"`
	Status               models.EarlyLeaveStatus `json:"status"`
	StatusName           string                  `json:"status_name"`
	AutoCheckout         bool                    `json:"auto_checkout"`
	AttendanceID         *string                 `json:"attendance_id"`
	DelegationEmployeeID *string                 `json:"delegation_employee_id"`
	DelegationApprovedAt *time.Time              `json:"delegation_approved_at"`
	DelegationNotes      string                  `json:"delegation_notes"`
	SupervisorID         *string                 `json:"supervisor_id"`
	SupervisorApprovedAt *time.Time              `json:"supervisor_approved_at"`
	SupervisorNotes      string                  `json:"supervisor_notes"`
	ApprovedBy           *string                 `json:"approved_by"`
	ApprovedAt           *time.Time              `json:"approved_at"`
	HRNotes              string                  `json:"hr_notes"`
	DirectorID           *string                 `json:"director_id"`
	DirectorSignedAt     *time.Time              `json:"director_signed_at"`
	DirectorNotes        string                  `json:"director_notes"`
	RejectedBy           *string                 `json:"rejected_by"`
	RejectedAt           *time.Time              `json:"rejected_at"`
	RejectionReason      string                  `json:"rejection_reason"`
	CreatedAt            time.Time               `json:"created_at"`
}

func EarlyLeaveConvert(rec dbmodels.EarlyLeaveRequest) EarlyLeaveView {
	result := EarlyLeaveView{
		ID:                   rec.ID,
		EmployeeID:           rec.EmployeeID,
		Date:                 rec.Date.Format("2006-01-02"),
		LeaveTime:            rec.LeaveTime.Format("15:04"),
		Reason:               rec.Reason,
		Status:               rec.Status,
		StatusName:           rec.Status.ToHuman(),
		AutoCheckout:         rec.AutoCheckout,
		AttendanceID:         rec.AttendanceID,
		DelegationEmployeeID: rec.DelegationEmployeeID,
		DelegationApprovedAt: rec.DelegationApprovedAt,
		DelegationNotes:      rec.DelegationNotes,
		SupervisorID:         rec.SupervisorID,
		SupervisorApprovedAt: rec.SupervisorApprovedAt,
		SupervisorNotes:      rec.SupervisorNotes,
		ApprovedBy:           rec.ApprovedBy,
		ApprovedAt:           rec.ApprovedAt,
		HRNotes:              rec.HRNotes,
		DirectorID:           rec.DirectorID,
		DirectorSignedAt:     rec.DirectorSignedAt,
		DirectorNotes:        rec.DirectorNotes,
		RejectedBy:           rec.RejectedBy,
		RejectedAt:           rec.RejectedAt,
		RejectionReason:      rec.RejectionReason,
		CreatedAt:            rec.CreatedAt,
	}
	if rec.Employee != nil {
		result.EmployeeName = rec.Employee.FullName
	}
	return result
}

// ActionsView доступные текущему пользователю действия по заявке
type ActionsView struct {
	CanApproveDelegation bool `json:"can_approve_delegation"`
	CanApproveSupervisor bool `json:"can_approve_supervisor"`
	CanApproveHR         bool `json:"can_approve_hr"`
	CanSignDirector      bool `json:"can_sign_director"`
	CanReject            bool `json:"can_reject"`
}

type ResultView struct {
	ID                  string                  `json:"id"`
	Status              models.EarlyLeaveStatus `json:"status"`
	StatusName          string                  `json:"status_name"`
	AutoCheckoutApplied bool                    `json:"auto_checkout_applied"`
}
