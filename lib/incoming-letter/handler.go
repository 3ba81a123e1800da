package incomingletterhandler

import (
	"office-admin-backend/db"
	incomingletterstore "office-admin-backend/lib/incoming-letter/store"
	letterhandler "office-admin-backend/lib/letter"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	incomingletterapimodels "office-admin-backend/models/api/incoming-letter"
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Register(actorID string, data incomingletterapimodels.RegisterRequest) (id string, err error)
	Get(id string) (*incomingletterapimodels.IncomingLetterView, error)
	List(filter incomingletterapimodels.IncomingLetterFilter) ([]incomingletterapimodels.IncomingLetterView, int64, error)
	// Archive в архив передается только исполненное письмо
	Archive(id, actorID string) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(incomingletterstore.NewInstance(db.DB))
}

func NewInstance(store incomingletterstore.Provider) Provider {
	return impl{
		store: store,
	}
}

type impl struct {
	store incomingletterstore.Provider
}

func (i impl) getLogger(letterID, actorID string) *log.Entry {
	logger := log.
		WithField("incoming_letter_id", letterID).
		WithField("actor_id", actorID)
	return logger
}

func (i impl) Register(actorID string, data incomingletterapimodels.RegisterRequest) (id string, err error) {
	rec := dbmodels.IncomingLetter{
		Number:      data.Number,
		Sender:      data.Sender,
		Subject:     data.Subject,
		Summary:     data.Summary,
		ReceivedAt:  time.Now(),
		RegistrarID: actorID,
		OrgUnitID:   data.OrgUnitID,
		Priority:    data.Priority,
		Status:      models.DocStatusNew,
	}
	if rec.Number == "" {
		rec.Number = letterhandler.NewNumber("ВХ")
	}
	if data.ReceivedAt != nil {
		rec.ReceivedAt = *data.ReceivedAt
	}
	if rec.Priority == "" {
		rec.Priority = models.PriorityNormal
	}
	id, err = i.store.Create(rec)
	if err != nil {
		i.getLogger("", actorID).WithError(err).Error("ошибка регистрации входящего письма")
		return "", errors.Wrap(err, "ошибка регистрации входящего письма")
	}
	return id, nil
}

func (i impl) Get(id string) (*incomingletterapimodels.IncomingLetterView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, workflowerrors.NewNotFound("входящее письмо не найдено")
	}
	result := incomingletterapimodels.IncomingLetterConvert(*rec)
	return &result, nil
}

func (i impl) List(filter incomingletterapimodels.IncomingLetterFilter) ([]incomingletterapimodels.IncomingLetterView, int64, error) {
	list, rowCount, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]incomingletterapimodels.IncomingLetterView, 0, len(list))
	for _, rec := range list {
		result = append(result, incomingletterapimodels.IncomingLetterConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Archive(id, actorID string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return workflowerrors.NewNotFound("входящее письмо не найдено")
	}
	if rec.Status != models.DocStatusCompleted {
		return workflowerrors.NewInvalidTransition("в архив можно передать только исполненное письмо")
	}
	ok, err := i.store.SetStatus(id, models.DocStatusCompleted, models.DocStatusArchived)
	if err != nil {
		i.getLogger(id, actorID).WithError(err).Error("ошибка передачи входящего письма в архив")
		return err
	}
	if !ok {
		return workflowerrors.NewInvalidTransition("письмо уже изменено другим пользователем")
	}
	return nil
}
