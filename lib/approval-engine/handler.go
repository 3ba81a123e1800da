package approvalengine

import (
	"office-admin-backend/db"
	approvalhistorystore "office-admin-backend/lib/approval-engine/history-store"
	approvalstepstore "office-admin-backend/lib/approval-engine/step-store"
	letterstore "office-admin-backend/lib/letter/store"
	outgoingletterstore "office-admin-backend/lib/outgoing-letter/store"
	userstore "office-admin-backend/lib/users/store"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	approvalapimodels "office-admin-backend/models/api/approval"
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Submit(kind models.DocumentKind, documentID, actorID string, approverIDs []string) (Result, error)
	Approve(stepID, actorID, notes, signature string) (Result, error)
	Reject(stepID, actorID, notes string) (Result, error)
	ResetStep(stepID, actorID, notes string) (Result, error)
	CanAct(stepID, actorID string) (bool, error)
	Steps(kind models.DocumentKind, documentID string) ([]approvalapimodels.StepView, error)
	History(kind models.DocumentKind, documentID string) ([]approvalapimodels.HistoryView, error)
	PendingForUser(userID string) ([]approvalapimodels.StepView, error)
	// DeleteDocument удаляет документ вместе с шагами и историей согласования
	DeleteDocument(kind models.DocumentKind, documentID, actorID string) error
}

// Result итог действия; Events отправляются вызывающим после фиксации транзакции
type Result struct {
	StepID         string
	StepStatus     models.ApprovalStepStatus
	DocumentStatus models.DocumentStatus
	Events         []models.NotificationData
}

type Stores struct {
	Steps     approvalstepstore.Provider
	History   approvalhistorystore.Provider
	Users     userstore.Provider
	Documents map[models.DocumentKind]DocumentSource
}

func NewStores(tx *gorm.DB) Stores {
	return Stores{
		Steps:   approvalstepstore.NewInstance(tx),
		History: approvalhistorystore.NewInstance(tx),
		Users:   userstore.NewInstance(tx),
		Documents: map[models.DocumentKind]DocumentSource{
			models.LetterKind:         NewLetterSource(letterstore.NewInstance(tx)),
			models.OutgoingLetterKind: NewOutgoingLetterSource(outgoingletterstore.NewInstance(tx)),
		},
	}
}

// TxFunc выполняет fn в одной транзакции над хранилищами этой транзакции
type TxFunc func(fn func(s Stores) error) error

var Instance Provider

func NewHandler() {
	Instance = NewInstance(NewStores(db.DB), func(fn func(s Stores) error) error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			return fn(NewStores(tx))
		})
	})
}

func NewInstance(stores Stores, withTx TxFunc) Provider {
	return impl{
		stores: stores,
		withTx: withTx,
	}
}

type impl struct {
	stores Stores
	withTx TxFunc
}

func (i impl) getLogger(stepID, actorID string) *log.Entry {
	logger := log.
		WithField("step_id", stepID).
		WithField("actor_id", actorID)
	return logger
}

func (i impl) Submit(kind models.DocumentKind, documentID, actorID string, approverIDs []string) (result Result, err error) {
	if len(approverIDs) == 0 {
		return Result{}, workflowerrors.NewValidation("не указаны согласующие")
	}
	seen := map[string]bool{}
	for _, userID := range approverIDs {
		if userID == "" {
			return Result{}, workflowerrors.NewValidation("не указан идентификатор согласующего")
		}
		if seen[userID] {
			return Result{}, workflowerrors.NewValidation("согласующий %v указан несколько раз", userID)
		}
		seen[userID] = true
	}
	logger := log.
		WithField("document_kind", kind).
		WithField("document_id", documentID).
		WithField("actor_id", actorID)

	err = i.withTx(func(s Stores) error {
		source, err := documentSource(s, kind)
		if err != nil {
			return err
		}
		doc, err := source.Lock(documentID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения документа")
		}
		if doc == nil {
			return workflowerrors.NewNotFound("документ не найден")
		}
		if doc.OwnerID != actorID {
			return workflowerrors.NewAuthorizationDenied("отправить на согласование может только автор документа")
		}
		if !doc.Status.IsEditable() {
			return workflowerrors.NewInvalidTransition("документ в статусе \"%v\" нельзя отправить на согласование", doc.Status.ToHuman())
		}
		for _, userID := range approverIDs {
			user, err := s.Users.GetByID(userID)
			if err != nil {
				return errors.Wrap(err, "ошибка получения согласующего")
			}
			if user == nil || !user.IsActive {
				return workflowerrors.NewNotFound("согласующий %v не найден", userID)
			}
		}
		// шаги прошлого круга согласования заменяются новыми
		err = s.Steps.DeleteByDocument(kind, documentID)
		if err != nil {
			return errors.Wrap(err, "ошибка удаления шагов согласования")
		}
		steps := make([]dbmodels.ApprovalStep, 0, len(approverIDs))
		for idx, userID := range approverIDs {
			steps = append(steps, dbmodels.ApprovalStep{
				DocumentKind: kind,
				DocumentID:   documentID,
				StepOrder:    idx + 1,
				UserID:       userID,
				Status:       models.StepPending,
			})
		}
		err = s.Steps.CreateBatch(steps)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения шагов согласования")
		}
		status, fresh, err := i.recompute(s, source, *doc)
		if err != nil {
			return err
		}
		err = i.audit(s, dbmodels.ApprovalHistory{
			DocumentKind: kind,
			DocumentID:   documentID,
			UserID:       actorID,
			Action:       models.ActionSubmitted,
			StatusBefore: doc.Status,
			StatusAfter:  status,
		})
		if err != nil {
			return err
		}
		result = Result{DocumentStatus: status}
		if next := NextActionable(fresh); next != nil {
			result.StepID = next.ID
			result.StepStatus = next.Status
			result.Events = append(result.Events,
				models.GetNotifyApprovalRequired(next.UserID, doc.Title, source.ActionURL(doc.ID), eventData(*doc, next.ID)))
		}
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			logger.WithError(err).Error("ошибка отправки документа на согласование")
		}
		return Result{}, err
	}
	return result, nil
}

func (i impl) Approve(stepID, actorID, notes, signature string) (result Result, err error) {
	err = i.withTx(func(s Stores) error {
		step, doc, source, err := i.lockStep(s, stepID)
		if err != nil {
			return err
		}
		if !step.Status.IsPending() {
			return workflowerrors.NewInvalidTransition("шаг согласования уже обработан: %v", step.Status.ToHuman())
		}
		if step.UserID != actorID {
			return workflowerrors.NewAuthorizationDenied("шаг согласования назначен другому пользователю")
		}
		steps, err := s.Steps.List(step.DocumentKind, step.DocumentID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения шагов согласования")
		}
		if err = CheckTurn(steps, *step); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":    models.StepApproved,
			"acted_at":  time.Now(),
			"notes":     notes,
			"signature": signature,
		}
		ok, err := s.Steps.UpdateStatus(step.ID, models.StepPending, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления шага согласования")
		}
		if !ok {
			return workflowerrors.NewInvalidTransition("шаг согласования уже обработан")
		}
		status, fresh, err := i.recompute(s, source, *doc)
		if err != nil {
			return err
		}
		err = i.audit(s, dbmodels.ApprovalHistory{
			DocumentKind: step.DocumentKind,
			DocumentID:   step.DocumentID,
			StepID:       step.ID,
			UserID:       actorID,
			Action:       models.ActionApproved,
			StatusBefore: doc.Status,
			StatusAfter:  status,
			Comment:      notes,
		})
		if err != nil {
			return err
		}
		result = Result{
			StepID:         step.ID,
			StepStatus:     models.StepApproved,
			DocumentStatus: status,
		}
		url := source.ActionURL(doc.ID)
		if doc.OwnerID != actorID {
			result.Events = append(result.Events,
				models.GetNotifyStepApproved(doc.OwnerID, doc.Title, i.userName(s, actorID), status, url, eventData(*doc, step.ID)))
		}
		if next := NextActionable(fresh); next != nil {
			result.Events = append(result.Events,
				models.GetNotifyApprovalRequired(next.UserID, doc.Title, url, eventData(*doc, next.ID)))
		}
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(stepID, actorID).WithError(err).Error("ошибка согласования шага")
		}
		return Result{}, err
	}
	return result, nil
}

func (i impl) Reject(stepID, actorID, notes string) (result Result, err error) {
	err = i.withTx(func(s Stores) error {
		step, doc, source, err := i.lockStep(s, stepID)
		if err != nil {
			return err
		}
		if !step.Status.IsPending() {
			return workflowerrors.NewInvalidTransition("шаг согласования уже обработан: %v", step.Status.ToHuman())
		}
		if step.UserID != actorID {
			return workflowerrors.NewAuthorizationDenied("шаг согласования назначен другому пользователю")
		}
		steps, err := s.Steps.List(step.DocumentKind, step.DocumentID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения шагов согласования")
		}
		if err = CheckTurn(steps, *step); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":   models.StepRejected,
			"acted_at": time.Now(),
			"notes":    notes,
		}
		ok, err := s.Steps.UpdateStatus(step.ID, models.StepPending, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления шага согласования")
		}
		if !ok {
			return workflowerrors.NewInvalidTransition("шаг согласования уже обработан")
		}
		status, _, err := i.recompute(s, source, *doc)
		if err != nil {
			return err
		}
		err = i.audit(s, dbmodels.ApprovalHistory{
			DocumentKind: step.DocumentKind,
			DocumentID:   step.DocumentID,
			StepID:       step.ID,
			UserID:       actorID,
			Action:       models.ActionRejected,
			StatusBefore: doc.Status,
			StatusAfter:  status,
			Comment:      notes,
		})
		if err != nil {
			return err
		}
		result = Result{
			StepID:         step.ID,
			StepStatus:     models.StepRejected,
			DocumentStatus: status,
		}
		if doc.OwnerID != actorID {
			result.Events = append(result.Events,
				models.GetNotifyStepRejected(doc.OwnerID, doc.Title, i.userName(s, actorID), notes, source.ActionURL(doc.ID), eventData(*doc, step.ID)))
		}
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(stepID, actorID).WithError(err).Error("ошибка отклонения шага")
		}
		return Result{}, err
	}
	return result, nil
}

// ResetStep возвращает обработанный шаг в ожидание, статус документа пересчитывается по шагам
func (i impl) ResetStep(stepID, actorID, notes string) (result Result, err error) {
	err = i.withTx(func(s Stores) error {
		step, doc, source, err := i.lockStep(s, stepID)
		if err != nil {
			return err
		}
		if doc.OwnerID != actorID {
			return workflowerrors.NewAuthorizationDenied("вернуть шаг в ожидание может только автор документа")
		}
		if step.Status.IsPending() {
			return workflowerrors.NewInvalidTransition("шаг согласования еще не обработан")
		}
		updMap := map[string]interface{}{
			"status":    models.StepPending,
			"acted_at":  nil,
			"signature": "",
			"notes":     notes,
		}
		ok, err := s.Steps.UpdateStatus(step.ID, step.Status, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления шага согласования")
		}
		if !ok {
			return workflowerrors.NewInvalidTransition("шаг согласования изменен другим пользователем")
		}
		status, fresh, err := i.recompute(s, source, *doc)
		if err != nil {
			return err
		}
		err = i.audit(s, dbmodels.ApprovalHistory{
			DocumentKind: step.DocumentKind,
			DocumentID:   step.DocumentID,
			StepID:       step.ID,
			UserID:       actorID,
			Action:       models.ActionReset,
			StatusBefore: doc.Status,
			StatusAfter:  status,
			Comment:      notes,
		})
		if err != nil {
			return err
		}
		result = Result{
			StepID:         step.ID,
			StepStatus:     models.StepPending,
			DocumentStatus: status,
		}
		if next := NextActionable(fresh); next != nil && next.ID == step.ID {
			result.Events = append(result.Events,
				models.GetNotifyApprovalRequired(next.UserID, doc.Title, source.ActionURL(doc.ID), eventData(*doc, next.ID)))
		}
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(stepID, actorID).WithError(err).Error("ошибка сброса шага согласования")
		}
		return Result{}, err
	}
	return result, nil
}

func (i impl) CanAct(stepID, actorID string) (bool, error) {
	step, err := i.stores.Steps.GetByID(stepID)
	if err != nil {
		return false, err
	}
	if step == nil {
		return false, nil
	}
	steps, err := i.stores.Steps.List(step.DocumentKind, step.DocumentID)
	if err != nil {
		return false, err
	}
	return CanAct(steps, *step, actorID), nil
}

func (i impl) Steps(kind models.DocumentKind, documentID string) ([]approvalapimodels.StepView, error) {
	list, err := i.stores.Steps.List(kind, documentID)
	if err != nil {
		return nil, err
	}
	result := make([]approvalapimodels.StepView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.StepConvert(rec))
	}
	return result, nil
}

func (i impl) History(kind models.DocumentKind, documentID string) ([]approvalapimodels.HistoryView, error) {
	list, err := i.stores.History.List(kind, documentID)
	if err != nil {
		return nil, err
	}
	result := make([]approvalapimodels.HistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.HistoryConvert(rec))
	}
	return result, nil
}

// PendingForUser шаги пользователя, по которым уже наступила его очередь
func (i impl) PendingForUser(userID string) ([]approvalapimodels.StepView, error) {
	pending, err := i.stores.Steps.ListPendingForUser(userID)
	if err != nil {
		return nil, err
	}
	result := []approvalapimodels.StepView{}
	for _, step := range pending {
		steps, err := i.stores.Steps.List(step.DocumentKind, step.DocumentID)
		if err != nil {
			return nil, err
		}
		if CanAct(steps, step, userID) {
			result = append(result, approvalapimodels.StepConvert(step))
		}
	}
	return result, nil
}

func (i impl) DeleteDocument(kind models.DocumentKind, documentID, actorID string) error {
	err := i.withTx(func(s Stores) error {
		source, err := documentSource(s, kind)
		if err != nil {
			return err
		}
		doc, err := source.Lock(documentID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения документа")
		}
		if doc == nil {
			return workflowerrors.NewNotFound("документ не найден")
		}
		if doc.OwnerID != actorID {
			return workflowerrors.NewAuthorizationDenied("удалить документ может только автор")
		}
		if !doc.Status.IsEditable() {
			return workflowerrors.NewInvalidTransition("документ в статусе \"%v\" нельзя удалить", doc.Status.ToHuman())
		}
		if err = s.Steps.DeleteByDocument(kind, documentID); err != nil {
			return errors.Wrap(err, "ошибка удаления шагов согласования")
		}
		if err = s.History.DeleteByDocument(kind, documentID); err != nil {
			return errors.Wrap(err, "ошибка удаления истории согласования")
		}
		if err = source.Delete(documentID); err != nil {
			return errors.Wrap(err, "ошибка удаления документа")
		}
		return nil
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			log.
				WithField("document_id", documentID).
				WithField("actor_id", actorID).
				WithError(err).
				Error("ошибка удаления документа")
		}
		return err
	}
	return nil
}

// lockStep порядок блокировок как в Submit: сначала документ, затем шаг
func (i impl) lockStep(s Stores, stepID string) (*dbmodels.ApprovalStep, *Document, DocumentSource, error) {
	step, err := s.Steps.GetByID(stepID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "ошибка получения шага согласования")
	}
	if step == nil {
		return nil, nil, nil, workflowerrors.NewNotFound("шаг согласования не найден")
	}
	source, err := documentSource(s, step.DocumentKind)
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := source.Lock(step.DocumentID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "ошибка получения документа")
	}
	if doc == nil {
		return nil, nil, nil, workflowerrors.NewNotFound("документ не найден")
	}
	step, err = s.Steps.GetForUpdate(stepID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "ошибка получения шага согласования")
	}
	if step == nil {
		return nil, nil, nil, workflowerrors.NewNotFound("шаг согласования не найден")
	}
	if !source.Labels().InWorkflow(doc.Status) {
		return nil, nil, nil, workflowerrors.NewInvalidTransition("документ в статусе \"%v\" не находится на согласовании", doc.Status.ToHuman())
	}
	return step, doc, source, nil
}

// recompute статус документа всегда выводится из свежего списка шагов
func (i impl) recompute(s Stores, source DocumentSource, doc Document) (models.DocumentStatus, []dbmodels.ApprovalStep, error) {
	steps, err := s.Steps.List(doc.Kind, doc.ID)
	if err != nil {
		return "", nil, errors.Wrap(err, "ошибка получения шагов согласования")
	}
	labels := source.Labels()
	if !doc.Status.IsEditable() && !labels.InWorkflow(doc.Status) {
		return doc.Status, steps, nil
	}
	status := AggregateStatus(steps, labels)
	if status != doc.Status {
		err = source.SetStatus(doc.ID, status)
		if err != nil {
			return "", nil, errors.Wrap(err, "ошибка обновления статуса документа")
		}
	}
	return status, steps, nil
}

func (i impl) audit(s Stores, rec dbmodels.ApprovalHistory) error {
	_, err := s.History.Create(rec)
	if err != nil {
		return errors.Wrap(err, "ошибка добавления истории согласования")
	}
	return nil
}

func (i impl) userName(s Stores, userID string) string {
	user, err := s.Users.GetByID(userID)
	if err != nil || user == nil {
		return models.SystemUser
	}
	return user.GetFullName()
}

func documentSource(s Stores, kind models.DocumentKind) (DocumentSource, error) {
	source, ok := s.Documents[kind]
	if !ok {
		return nil, workflowerrors.NewValidation("неизвестный вид документа: %v", kind)
	}
	return source, nil
}

func eventData(doc Document, stepID string) map[string]string {
	return map[string]string{
		"document_kind": string(doc.Kind),
		"document_id":   doc.ID,
		"step_id":       stepID,
	}
}
