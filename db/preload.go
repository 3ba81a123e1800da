package db

import (
	"office-admin-backend/config"
	userstore "office-admin-backend/lib/users/store"
	authutils "office-admin-backend/lib/utils/auth-utils"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addAdmin()
}

func addAdmin() {
	if config.Conf.Admin.Email == "" {
		log.Warn("администратор не добавлен, отсутвует настройка ADMIN_EMAIL")
		return
	}
	store := userstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existedRec != nil {
		return
	}
	hash, err := authutils.HashPassword(config.Conf.Admin.Password)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	rec := dbmodels.User{
		IsActive:  true,
		Role:      models.AdminRole,
		Password:  hash,
		FirstName: config.Conf.Admin.FirstName,
		LastName:  config.Conf.Admin.LastName,
		Email:     config.Conf.Admin.Email,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	log.Info("администратор добавлен")
}
