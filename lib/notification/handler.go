package notificationhandler

import (
	"office-admin-backend/config"
	"office-admin-backend/db"
	notificationstore "office-admin-backend/lib/notification/store"
	"office-admin-backend/lib/smtp"
	userstore "office-admin-backend/lib/users/store"
	initchecker "office-admin-backend/lib/utils/init-checker"
	connectionhub "office-admin-backend/lib/ws/hub/connection-hub"
	"office-admin-backend/models"
	notificationapimodels "office-admin-backend/models/api/notification"
	dbmodels "office-admin-backend/models/db"
	"time"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data models.NotificationData) error
	// Dispatch сохраняет события после фиксации транзакции, ошибки только логируются
	Dispatch(events []models.NotificationData)
	List(userID string, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error)
	MarkRead(userID string, ids []string) error
	MarkAllRead(userID string) error
	UnreadCount(userID string) (int64, error)
}

// Channel доставка сохраненного уведомления пользователю помимо ленты
type Channel interface {
	Deliver(rec dbmodels.Notification)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"connectionhub.Instance", connectionhub.Instance,
		"smtp.Instance", smtp.Instance,
	)
	channels := []Channel{connectionhub.Instance}
	if *config.Conf.Notification.EmailEnabled {
		channels = append(channels, NewEmailChannel(userstore.NewInstance(db.DB), smtp.Instance, config.Conf.Notification.FrontendURL))
	}
	Instance = NewInstance(notificationstore.NewInstance(db.DB), channels...)
}

func NewInstance(store notificationstore.Provider, channels ...Channel) Provider {
	return impl{
		store:    store,
		channels: channels,
	}
}

type impl struct {
	store    notificationstore.Provider
	channels []Channel
}

func (i impl) getLogger(userID string, code models.NotificationCode) *log.Entry {
	logger := log.
		WithField("user_id", userID).
		WithField("event_code", code)
	return logger
}

func (i impl) Create(data models.NotificationData) error {
	_, err := i.create(data)
	return err
}

func (i impl) create(data models.NotificationData) (dbmodels.Notification, error) {
	rec := dbmodels.Notification{
		UserID:    data.UserID,
		Code:      data.Code,
		Title:     data.Title,
		Msg:       data.Msg,
		Data:      data.Data,
		ActionURL: data.ActionURL,
	}
	var err error
	rec.ID, err = i.store.Create(rec)
	if err != nil {
		return rec, err
	}
	rec.CreatedAt = time.Now()
	return rec, nil
}

func (i impl) Dispatch(events []models.NotificationData) {
	for _, event := range events {
		if event.UserID == "" {
			continue
		}
		rec, err := i.create(event)
		if err != nil {
			i.getLogger(event.UserID, event.Code).WithError(err).Error("ошибка сохранения уведомления")
			continue
		}
		for _, channel := range i.channels {
			channel.Deliver(rec)
		}
	}
}

func (i impl) List(userID string, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error) {
	list, rowCount, err := i.store.List(userID, filter.OnlyUnread, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) MarkRead(userID string, ids []string) error {
	return i.store.MarkRead(userID, ids)
}

func (i impl) MarkAllRead(userID string) error {
	return i.store.MarkAllRead(userID)
}

func (i impl) UnreadCount(userID string) (int64, error) {
	return i.store.UnreadCount(userID)
}
