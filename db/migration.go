package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "office-admin-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.OrgUnit{}, &dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры OrgUnit/Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.Letter{}, &dbmodels.OutgoingLetter{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Letter/OutgoingLetter")
	}
	if err := DB.AutoMigrate(&dbmodels.ApprovalStep{}, &dbmodels.ApprovalHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApprovalStep/ApprovalHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.IncomingLetter{}, &dbmodels.Disposition{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры IncomingLetter/Disposition")
	}
	if err := DB.AutoMigrate(&dbmodels.Attendance{}, &dbmodels.EarlyLeaveRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Attendance/EarlyLeaveRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	if err := DB.AutoMigrate(&dbmodels.FileStorage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FileStorage")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
