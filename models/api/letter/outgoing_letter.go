package letterapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type OutgoingLetterData struct {
	LetterData
	Recipients []string `json:"recipients" validate:"required,min=1,dive,required"` // Адресаты
}

func (r OutgoingLetterData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type OutgoingLetterView struct {
	ID string `json:"id"`
	OutgoingLetterData
	Number      string                `json:"number"`
	CreatorID   string                `json:"creator_id"`
	CreatorName string                `json:"creator_name"`
	Status      models.DocumentStatus `json:"status"`
	StatusName  string                `json:"status_name"`
	SentAt      *time.Time            `json:"sent_at"`
	CreatedAt   time.Time             `json:"created_at"`
}

func OutgoingLetterConvert(rec dbmodels.OutgoingLetter) OutgoingLetterView {
	result := OutgoingLetterView{
		ID: rec.ID,
		OutgoingLetterData: OutgoingLetterData{
			LetterData: LetterData{
				Subject:   rec.Subject,
				Body:      rec.Body,
				OrgUnitID: rec.OrgUnitID,
				Priority:  rec.Priority,
			},
			Recipients: rec.Recipients,
		},
		Number:     rec.Number,
		CreatorID:  rec.CreatorID,
		Status:     rec.Status,
		StatusName: rec.Status.ToHuman(),
		SentAt:     rec.SentAt,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.Creator != nil {
		result.CreatorName = rec.Creator.GetFullName()
	}
	return result
}
