package outgoingletterhandler

import (
	"office-admin-backend/db"
	approvalengine "office-admin-backend/lib/approval-engine"
	letterhandler "office-admin-backend/lib/letter"
	outgoingletterstore "office-admin-backend/lib/outgoing-letter/store"
	initchecker "office-admin-backend/lib/utils/init-checker"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	letterapimodels "office-admin-backend/models/api/letter"
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(actorID string, data letterapimodels.OutgoingLetterData) (id string, err error)
	Update(id, actorID string, data letterapimodels.OutgoingLetterData) error
	Get(id string) (*letterapimodels.OutgoingLetterView, error)
	List(actorID string, filter letterapimodels.LetterFilter) ([]letterapimodels.OutgoingLetterView, int64, error)
	Delete(id, actorID string) error
	SubmitForApproval(id, actorID string, signerIDs []string) (approvalengine.Result, error)
	MarkSent(id, actorID string) error
	Archive(id, actorID string) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"approvalengine.Instance", approvalengine.Instance,
	)
	Instance = NewInstance(outgoingletterstore.NewInstance(db.DB), approvalengine.Instance, func(fn func(store outgoingletterstore.Provider) error) error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			return fn(outgoingletterstore.NewInstance(tx))
		})
	})
}

func NewInstance(store outgoingletterstore.Provider, engine approvalengine.Provider, withTx func(fn func(store outgoingletterstore.Provider) error) error) Provider {
	return impl{
		store:  store,
		engine: engine,
		withTx: withTx,
	}
}

type impl struct {
	store  outgoingletterstore.Provider
	engine approvalengine.Provider
	withTx func(fn func(store outgoingletterstore.Provider) error) error
}

func (i impl) getLogger(letterID, actorID string) *log.Entry {
	logger := log.
		WithField("outgoing_letter_id", letterID).
		WithField("actor_id", actorID)
	return logger
}

func (i impl) Create(actorID string, data letterapimodels.OutgoingLetterData) (id string, err error) {
	priority := data.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	rec := dbmodels.OutgoingLetter{
		Number:     letterhandler.NewNumber("ИСХ"),
		Subject:    data.Subject,
		Body:       data.Body,
		Recipients: data.Recipients,
		CreatorID:  actorID,
		OrgUnitID:  data.OrgUnitID,
		Priority:   priority,
		Status:     models.DocStatusDraft,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания исходящего письма")
	}
	return id, nil
}

func (i impl) Update(id, actorID string, data letterapimodels.OutgoingLetterData) error {
	return i.withTx(func(store outgoingletterstore.Provider) error {
		rec, err := store.GetForUpdate(id)
		if err != nil {
			return err
		}
		if err = checkEditable(rec, actorID); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"subject":     data.Subject,
			"body":        data.Body,
			"recipients":  pq.StringArray(data.Recipients),
			"org_unit_id": data.OrgUnitID,
		}
		if data.Priority != "" {
			updMap["priority"] = data.Priority
		}
		return store.Update(id, updMap)
	})
}

func (i impl) Get(id string) (*letterapimodels.OutgoingLetterView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, workflowerrors.NewNotFound("исходящее письмо не найдено")
	}
	result := letterapimodels.OutgoingLetterConvert(*rec)
	return &result, nil
}

func (i impl) List(actorID string, filter letterapimodels.LetterFilter) ([]letterapimodels.OutgoingLetterView, int64, error) {
	list, rowCount, err := i.store.List(actorID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]letterapimodels.OutgoingLetterView, 0, len(list))
	for _, rec := range list {
		result = append(result, letterapimodels.OutgoingLetterConvert(rec))
	}
	return result, rowCount, nil
}

// Delete черновик или отклоненное письмо удаляется вместе с шагами и историей согласования
func (i impl) Delete(id, actorID string) error {
	return i.engine.DeleteDocument(models.OutgoingLetterKind, id, actorID)
}

func (i impl) SubmitForApproval(id, actorID string, signerIDs []string) (approvalengine.Result, error) {
	return i.engine.Submit(models.OutgoingLetterKind, id, actorID, signerIDs)
}

// MarkSent отправить можно только письмо, подписанное всеми подписантами
func (i impl) MarkSent(id, actorID string) error {
	return i.changeStatus(id, actorID, models.DocStatusFullySigned, map[string]interface{}{
		"status":  models.DocStatusSent,
		"sent_at": time.Now(),
	})
}

func (i impl) Archive(id, actorID string) error {
	return i.changeStatus(id, actorID, models.DocStatusSent, map[string]interface{}{
		"status": models.DocStatusArchived,
	})
}

func (i impl) changeStatus(id, actorID string, from models.DocumentStatus, updMap map[string]interface{}) error {
	err := i.withTx(func(store outgoingletterstore.Provider) error {
		rec, err := store.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return workflowerrors.NewNotFound("исходящее письмо не найдено")
		}
		if rec.Status != from {
			return workflowerrors.NewInvalidTransition("операция недоступна для письма в статусе \"%v\"", rec.Status.ToHuman())
		}
		return store.Update(id, updMap)
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(id, actorID).WithError(err).Error("ошибка смены статуса исходящего письма")
		}
		return err
	}
	return nil
}

func checkEditable(rec *dbmodels.OutgoingLetter, actorID string) error {
	if rec == nil {
		return workflowerrors.NewNotFound("исходящее письмо не найдено")
	}
	if rec.CreatorID != actorID {
		return workflowerrors.NewAuthorizationDenied("изменить письмо может только автор")
	}
	if !rec.Status.IsEditable() {
		return workflowerrors.NewInvalidTransition("письмо в статусе \"%v\" нельзя изменить", rec.Status.ToHuman())
	}
	return nil
}
