package approvalapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type ApproveRequest struct {
	Notes     string `json:"notes" validate:"max=2000"`
	Signature string `json:"signature"` // Данные подписи (для исходящих писем)
}

func (r ApproveRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RejectRequest struct {
	Notes string `json:"notes" validate:"required,max=2000"` // Причина отклонения
}

func (r RejectRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type StepView struct {
	ID           string                    `json:"id"`
	DocumentKind models.DocumentKind       `json:"document_kind"`
	DocumentID   string                    `json:"document_id"`
	StepOrder    int                       `json:"step_order"`
	UserID       string                    `json:"user_id"`
	UserName     string                    `json:"user_name"`
	Status       models.ApprovalStepStatus `json:"status"`
	StatusName   string                    `json:"status_name"`
	ActedAt      *time.Time                `json:"acted_at"`
	Notes        string                    `json:"notes"`
}

func StepConvert(rec dbmodels.ApprovalStep) StepView {
	result := StepView{
		ID:           rec.ID,
		DocumentKind: rec.DocumentKind,
		DocumentID:   rec.DocumentID,
		StepOrder:    rec.StepOrder,
		UserID:       rec.UserID,
		Status:       rec.Status,
		StatusName:   rec.Status.ToHuman(),
		ActedAt:      rec.ActedAt,
		Notes:        rec.Notes,
	}
	if rec.User != nil {
		result.UserName = rec.User.GetFullName()
	}
	return result
}

type HistoryView struct {
	StepID       string                `json:"step_id"`
	UserID       string                `json:"user_id"`
	UserName     string                `json:"user_name"`
	Action       models.ApprovalAction `json:"action"`
	StatusBefore models.DocumentStatus `json:"status_before"`
	StatusAfter  models.DocumentStatus `json:"status_after"`
	Comment      string                `json:"comment"`
	CreatedAt    time.Time             `json:"created_at"`
}

func HistoryConvert(rec dbmodels.ApprovalHistory) HistoryView {
	result := HistoryView{
		StepID:       rec.StepID,
		UserID:       rec.UserID,
		Action:       rec.Action,
		StatusBefore: rec.StatusBefore,
		StatusAfter:  rec.StatusAfter,
		Comment:      rec.Comment,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.User != nil {
		result.UserName = rec.User.GetFullName()
	}
	return result
}

// ResultView результат действия над шагом согласования
type ResultView struct {
	StepID         string                    `json:"step_id"`
	StepStatus     models.ApprovalStepStatus `json:"step_status"`
	DocumentStatus models.DocumentStatus     `json:"document_status"`
}

type CanActView struct {
	CanAct bool `json:"can_act"`
}
