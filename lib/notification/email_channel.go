package notificationhandler

import (
	"office-admin-backend/lib/smtp"
	dbmodels "office-admin-backend/models/db"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
)

type UserGetter interface {
	GetByID(userID string) (*dbmodels.User, error)
}

// NewEmailChannel дублирует уведомление письмом на почту активного получателя, отправка идет в фоне
func NewEmailChannel(users UserGetter, sender smtp.Provider, frontendURL string) Channel {
	return emailChannel{
		users:       users,
		sender:      sender,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
		goFunc:      func(fn func()) { go fn() },
	}
}

type emailChannel struct {
	users       UserGetter
	sender      smtp.Provider
	frontendURL string
	goFunc      func(fn func())
}

func (e emailChannel) Deliver(rec dbmodels.Notification) {
	e.goFunc(func() {
		logger := log.
			WithField("user_id", rec.UserID).
			WithField("event_code", rec.Code)
		defer func() {
			if r := recover(); r != nil {
				logger.
					WithField("panic_stack", string(debug.Stack())).
					Errorf("panic: (%v)", r)
			}
		}()
		user, err := e.users.GetByID(rec.UserID)
		if err != nil {
			logger.WithError(err).Error("ошибка получения получателя уведомления")
			return
		}
		if user == nil || !user.IsActive || user.Email == "" {
			return
		}
		if err = e.sender.SendEMail(user.Email, rec.Title, e.message(rec)); err != nil {
			logger.WithError(err).Warn("уведомление не отправлено на почту")
		}
	})
}

func (e emailChannel) message(rec dbmodels.Notification) string {
	if rec.ActionURL == "" {
		return rec.Msg
	}
	return rec.Msg + "\r\n\r\n" + e.frontendURL + rec.ActionURL
}
