package letterhandler

import (
	"fmt"
	"office-admin-backend/db"
	approvalengine "office-admin-backend/lib/approval-engine"
	letterstore "office-admin-backend/lib/letter/store"
	initchecker "office-admin-backend/lib/utils/init-checker"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	letterapimodels "office-admin-backend/models/api/letter"
	dbmodels "office-admin-backend/models/db"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(actorID string, data letterapimodels.LetterData) (id string, err error)
	Update(id, actorID string, data letterapimodels.LetterData) error
	Get(id string) (*letterapimodels.LetterView, error)
	List(actorID string, filter letterapimodels.LetterFilter) ([]letterapimodels.LetterView, int64, error)
	Delete(id, actorID string) error
	SubmitForApproval(id, actorID string, approverIDs []string) (approvalengine.Result, error)
	Archive(id, actorID string) error
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"approvalengine.Instance", approvalengine.Instance,
	)
	Instance = NewInstance(letterstore.NewInstance(db.DB), approvalengine.Instance, func(fn func(store letterstore.Provider) error) error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			return fn(letterstore.NewInstance(tx))
		})
	})
}

func NewInstance(store letterstore.Provider, engine approvalengine.Provider, withTx func(fn func(store letterstore.Provider) error) error) Provider {
	return impl{
		store:  store,
		engine: engine,
		withTx: withTx,
	}
}

type impl struct {
	store  letterstore.Provider
	engine approvalengine.Provider
	withTx func(fn func(store letterstore.Provider) error) error
}

func (i impl) getLogger(letterID, actorID string) *log.Entry {
	logger := log.
		WithField("letter_id", letterID).
		WithField("actor_id", actorID)
	return logger
}

func (i impl) Create(actorID string, data letterapimodels.LetterData) (id string, err error) {
	priority := data.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	rec := dbmodels.Letter{
		Number:    NewNumber("ВН"),
		Subject:   data.Subject,
		Body:      data.Body,
		CreatorID: actorID,
		OrgUnitID: data.OrgUnitID,
		Priority:  priority,
		Status:    models.DocStatusDraft,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания письма")
	}
	return id, nil
}

func (i impl) Update(id, actorID string, data letterapimodels.LetterData) error {
	return i.withTx(func(store letterstore.Provider) error {
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
			"org_unit_id": data.OrgUnitID,
		}
		if data.Priority != "" {
			updMap["priority"] = data.Priority
		}
		return store.Update(id, updMap)
	})
}

func (i impl) Get(id string) (*letterapimodels.LetterView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, workflowerrors.NewNotFound("письмо не найдено")
	}
	result := letterapimodels.LetterConvert(*rec)
	return &result, nil
}

func (i impl) List(actorID string, filter letterapimodels.LetterFilter) ([]letterapimodels.LetterView, int64, error) {
	list, rowCount, err := i.store.List(actorID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]letterapimodels.LetterView, 0, len(list))
	for _, rec := range list {
		result = append(result, letterapimodels.LetterConvert(rec))
	}
	return result, rowCount, nil
}

// Delete черновик или отклоненное письмо удаляется вместе с шагами и историей согласования
func (i impl) Delete(id, actorID string) error {
	return i.engine.DeleteDocument(models.LetterKind, id, actorID)
}

func (i impl) SubmitForApproval(id, actorID string, approverIDs []string) (approvalengine.Result, error) {
	return i.engine.Submit(models.LetterKind, id, actorID, approverIDs)
}

func (i impl) Archive(id, actorID string) error {
	err := i.withTx(func(store letterstore.Provider) error {
		rec, err := store.GetForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return workflowerrors.NewNotFound("письмо не найдено")
		}
		if rec.Status != models.DocStatusApproved {
			return workflowerrors.NewInvalidTransition("в архив можно передать только согласованное письмо")
		}
		return store.Update(id, map[string]interface{}{"status": models.DocStatusArchived})
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(id, actorID).WithError(err).Error("ошибка передачи письма в архив")
		}
		return err
	}
	return nil
}

func checkEditable(rec *dbmodels.Letter, actorID string) error {
	if rec == nil {
		return workflowerrors.NewNotFound("письмо не найдено")
	}
	if rec.CreatorID != actorID {
		return workflowerrors.NewAuthorizationDenied("изменить письмо может только автор")
	}
	if !rec.Status.IsEditable() {
		return workflowerrors.NewInvalidTransition("письмо в статусе \"%v\" нельзя изменить", rec.Status.ToHuman())
	}
	return nil
}

// NewNumber регистрационный номер вида ВН-20240314-3F2A9C
func NewNumber(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), strings.ToUpper(uuid.NewString()[:6]))
}
