package letterapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type LetterData struct {
	Subject   string                `json:"subject" validate:"required,max=255"`
	Body      string                `json:"body"`
	OrgUnitID *string               `json:"org_unit_id" validate:"omitempty,uuid"` // Подразделение-отправитель
	Priority  models.LetterPriority `json:"priority" validate:"omitempty,oneof=normal urgent important"`
}

func (r LetterData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type LetterFilter struct {
	apimodels.Pagination
	Search string                `json:"search"` // Поиск по теме и номеру
	Status models.DocumentStatus `json:"status"`
	// Только письма, созданные текущим пользователем
	OnlyMine bool `json:"only_mine"`
}

func (r LetterFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

// SubmitRequest отправка на согласование, порядок в списке задает очередность
type SubmitRequest struct {
	Approvers []string `json:"approvers" validate:"required,min=1,unique,dive,uuid"`
}

func (r SubmitRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type LetterView struct {
	ID string `json:"id"`
	LetterData
	Number      string                `json:"number"`
	CreatorID   string                `json:"creator_id"`
	CreatorName string                `json:"creator_name"`
	Status      models.DocumentStatus `json:"status"`
	StatusName  string                `json:"status_name"`
	CreatedAt   time.Time             `json:"created_at"`
}

func LetterConvert(rec dbmodels.Letter) LetterView {
	result := LetterView{
		ID: rec.ID,
		LetterData: LetterData{
			Subject:   rec.Subject,
			Body:      rec.Body,
			OrgUnitID: rec.OrgUnitID,
			Priority:  rec.Priority,
		},
		Number:     rec.Number,
		CreatorID:  rec.CreatorID,
		Status:     rec.Status,
		StatusName: rec.Status.ToHuman(),
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Creator != nil {
		result.CreatorName = rec.Creator.GetFullName()
	}
	return result
}
