package incomingletterapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type RegisterRequest struct {
	Number     string                `json:"number" validate:"max=100"` // Номер отправителя. Пустой - будет присвоен автоматически
	Sender     string                `json:"sender" validate:"required,max=255"`
	Subject    string                `json:"subject" validate:"required,max=255"`
	Summary    string                `json:"summary"`
	ReceivedAt *time.Time            `json:"received_at"`
	OrgUnitID  *string               `json:"org_unit_id" validate:"omitempty,uuid"`
	Priority   models.LetterPriority `json:"priority" validate:"omitempty,oneof=normal urgent important"`
}

func (r RegisterRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type IncomingLetterFilter struct {
	apimodels.Pagination
	Search string                `json:"search"`
	Status models.DocumentStatus `json:"status"`
}

func (r IncomingLetterFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

type IncomingLetterView struct {
	ID            string                `json:"id"`
	Number        string                `json:"number"`
	Sender        string                `json:"sender"`
	Subject       string                `json:"subject"`
	Summary       string                `json:"summary"`
	ReceivedAt    time.Time             `json:"received_at"`
	RegistrarID   string                `json:"registrar_id"`
	RegistrarName string                `json:"registrar_name"`
	OrgUnitID     *string               `json:"org_unit_id"`
	Priority      models.LetterPriority `json:"priority"`
	Status        models.DocumentStatus `json:"status"`
	StatusName    string                `json:"status_name"`
	CreatedAt     time.Time             `json:"created_at"`
}

func IncomingLetterConvert(rec dbmodels.IncomingLetter) IncomingLetterView {
	result := IncomingLetterView{
		ID:          rec.ID,
		Number:      rec.Number,
		Sender:      rec.Sender,
		Subject:     rec.Subject,
		Summary:     rec.Summary,
		ReceivedAt:  rec.ReceivedAt,
		RegistrarID: rec.RegistrarID,
		OrgUnitID:   rec.OrgUnitID,
		Priority:    rec.Priority,
		Status:      rec.Status,
		StatusName:  rec.Status.ToHuman(),
		CreatedAt:   rec.CreatedAt,
	}
	if rec.Registrar != nil {
		result.RegistrarName = rec.Registrar.GetFullName()
	}
	return result
}
