package notificationapimodels

import (
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dbmodels "office-admin-backend/models/db"
	"time"
)

type NotificationFilter struct {
	apimodels.Pagination
	OnlyUnread bool `json:"only_unread"`
}

func (r NotificationFilter) Validate() error {
	return apimodels.ValidateStruct(r)
}

type MarkReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

func (r MarkReadRequest) Validate() error {
	return apimodels.ValidateStruct(r)
}

type NotificationView struct {
	ID        string                  `json:"id"`
	Code      models.NotificationCode `json:"code"`
	Name      string                  `json:"name"`
	Title     string                  `json:"title"`
	Msg       string                  `json:"msg"`
	Data      map[string]string       `json:"data"`
	ActionURL string                  `json:"action_url"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:        rec.ID,
		Code:      rec.Code,
		Name:      models.NotificationCodeMap[rec.Code].Name,
		Title:     rec.Title,
		Msg:       rec.Msg,
		Data:      rec.Data,
		ActionURL: rec.ActionURL,
		IsRead:    rec.ReadAt != nil,
		CreatedAt: rec.CreatedAt,
	}
}

type UnreadCountView struct {
	Count int64 `json:"count"`
}
