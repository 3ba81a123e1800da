package usershandler

import (
	"office-admin-backend/db"
	userstore "office-admin-backend/lib/users/store"
	authutils "office-admin-backend/lib/utils/auth-utils"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	authapimodels "office-admin-backend/models/api/auth"
	userapimodels "office-admin-backend/models/api/user"
	dbmodels "office-admin-backend/models/db"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Login(email, password string) (response authapimodels.JWTResponse, err error)
	Create(data userapimodels.CreateUser) (id string, err error)
	Get(userID string) (*userapimodels.UserView, error)
	List(filter userapimodels.UserFilter) ([]userapimodels.UserView, error)
	SetActive(userID string, active bool) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(userstore.NewInstance(db.DB))
}

func NewInstance(store userstore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store userstore.Provider
}

func (i impl) Login(email, password string) (response authapimodels.JWTResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.store.FindByEmail(email)
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка поиска пользователя по почте")
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		logger.Debug("пользователь с такой почтой не найден")
		return authapimodels.JWTResponse{}, workflowerrors.NewAuthorizationDenied("неверная почта или пароль")
	}
	if !authutils.CheckPassword(user.Password, password) {
		logger.Debug("пользователь не прошел проверку пароля")
		return authapimodels.JWTResponse{}, workflowerrors.NewAuthorizationDenied("неверная почта или пароль")
	}
	if !user.IsActive {
		logger.Debug("пользователь заблокирован")
		return authapimodels.JWTResponse{}, workflowerrors.NewAuthorizationDenied("пользователь заблокирован")
	}
	tokenString, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка генерации JWT")
		return authapimodels.JWTResponse{}, err
	}
	err = i.store.Update(user.ID, map[string]interface{}{"last_login": time.Now()})
	if err != nil {
		logger.
			WithError(err).
			Error("ошибка обновления даты последнего входа")
	}
	return authapimodels.JWTResponse{
		Token: tokenString,
	}, nil
}

func (i impl) Create(data userapimodels.CreateUser) (id string, err error) {
	email := strings.TrimSpace(data.Email)
	existed, err := i.store.FindByEmail(email)
	if err != nil {
		return "", errors.Wrap(err, "ошибка поиска пользователя по почте")
	}
	if existed != nil {
		return "", workflowerrors.NewValidation("пользователь с такой почтой уже существует")
	}
	hash, err := authutils.HashPassword(data.Password)
	if err != nil {
		return "", err
	}
	rec := dbmodels.User{
		Password:  hash,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     email,
		IsActive:  true,
		Role:      data.Role,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.WithField("email", email).WithError(err).Error("ошибка создания пользователя")
		return "", errors.Wrap(err, "ошибка создания пользователя")
	}
	return id, nil
}

func (i impl) Get(userID string) (*userapimodels.UserView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, workflowerrors.NewNotFound("пользователь не найден")
	}
	result := userapimodels.UserConvert(*rec)
	return &result, nil
}

func (i impl) List(filter userapimodels.UserFilter) ([]userapimodels.UserView, error) {
	list, err := i.store.List(filter.Search, filter.Page, filter.Limit)
	if err != nil {
		return nil, err
	}
	result := make([]userapimodels.UserView, 0, len(list))
	for _, rec := range list {
		result = append(result, userapimodels.UserConvert(rec))
	}
	return result, nil
}

func (i impl) SetActive(userID string, active bool) error {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return err
	}
	if rec == nil {
		return workflowerrors.NewNotFound("пользователь не найден")
	}
	return i.store.Update(userID, map[string]interface{}{"is_active": active})
}
