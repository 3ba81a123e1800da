package dispositionapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type ForwardRequest struct {
	// Родительская диспозиция. Пустая - поручение по письму верхнего уровня
	ParentDispositionID *string    `json:"parent_disposition_id" validate:"omitempty,uuid"`
	ToUserID            string     `json:"to_user_id" validate:"required,uuid"`
	Instruction         string     `json:"instruction" validate:"required,max=2000"`
	Deadline            *time.Time `json:"deadline"`
}

func (r ForwardRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type CompleteRequest struct {
	Response string `json:"response" validate:"max=4000"` // Отчет об исполнении
}

func (r CompleteRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type InboxFilter struct {
	apimodels.Pagination
	Status models.DispositionStatus `json:"status" validate:"omitempty,oneof=pending read in_progress completed"`
}

func (r InboxFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

type DispositionView struct {
	ID                  string                   `json:"id"`
	IncomingLetterID    string                   `json:"incoming_letter_id"`
	ParentDispositionID *string                  `json:"parent_disposition_id"`
	FromUserID          string                   `json:"from_user_id"`
	FromUserName        string                   `json:"from_user_name"`
	ToUserID            string                   `json:"to_user_id"`
	ToUserName          string                   `json:"to_user_name"`
	Status              models.DispositionStatus `json:"status"`
	StatusName          string                   `json:"status_name"`
	Instruction         string                   `json:"instruction"`
	Response            string                   `json:"response"`
	Deadline            *time.Time               `json:"deadline"`
	ReadAt              *time.Time               `json:"read_at"`
	StartedAt           *time.Time               `json:"started_at"`
	CompletedAt         *time.Time               `json:"completed_at"`
	CreatedAt           time.Time                `json:"created_at"`
}

func DispositionConvert(rec dbmodels.Disposition) DispositionView {
	result := DispositionView{
		ID:                  rec.ID,
		IncomingLetterID:    rec.IncomingLetterID,
		ParentDispositionID: rec.ParentDispositionID,
		FromUserID:          rec.FromUserID,
		ToUserID:            rec.ToUserID,
		Status:              rec.Status,
		StatusName:          rec.Status.ToHuman(),
		Instruction:         rec.Instruction,
		Response:            rec.Response,
		Deadline:            rec.Deadline,
		ReadAt:              rec.ReadAt,
		StartedAt:           rec.StartedAt,
		CompletedAt:         rec.CompletedAt,
		CreatedAt:           rec.CreatedAt,
	}
	if rec.FromUser != nil {
		result.FromUserName = rec.FromUser.GetFullName()
	}
	if rec.ToUser != nil {
		result.ToUserName = rec.ToUser.GetFullName()
	}
	return result
}

// TreeNode узел дерева диспозиций письма
type TreeNode struct {
	DispositionView
	Children []TreeNode `json:"children"`
}

type ResultView struct {
	DispositionID string                   `json:"disposition_id"`
	Status        models.DispositionStatus `json:"status"`
	LetterStatus  models.DocumentStatus    `json:"letter_status"`
}
