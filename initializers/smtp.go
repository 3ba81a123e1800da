package initializers

import (
	"office-admin-backend/config"
	"office-admin-backend/lib/smtp"

	log "github.com/sirupsen/logrus"
)

func InitSmtp() {
	smtp.NewHandler()
	if config.Conf.Smtp.Host == "" {
		log.Warn("SMTP не настроен, письма с уведомлениями не отправляются")
	}
}
