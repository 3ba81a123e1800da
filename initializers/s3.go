package initializers

import (
	"context"
	"office-admin-backend/config"
	s3client "office-admin-backend/s3"
	"time"

	log "github.com/sirupsen/logrus"
)

// InitS3 без настроек S3 вложения к письмам недоступны, сервис продолжает работу
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Warn("S3 не настроен, загрузка вложений отключена")
		return
	}
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}

	// Проверка соединения
	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err = client.MakeBucket(checkCtx); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет не создан")
	}

	s3client.Instance = client
	log.Info("S3 клиент успешно инициализирован")
}
