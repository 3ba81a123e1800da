package dispositionhandler

import (
	"fmt"
	"office-admin-backend/config"
	"office-admin-backend/db"
	dispositionstore "office-admin-backend/lib/disposition/store"
	incomingletterstore "office-admin-backend/lib/incoming-letter/store"
	employeestore "office-admin-backend/lib/org/employee-store"
	"office-admin-backend/lib/rbac"
	userstore "office-admin-backend/lib/users/store"
	initchecker "office-admin-backend/lib/utils/init-checker"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	dispositionapimodels "office-admin-backend/models/api/disposition"
	dbmodels "office-admin-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	// Forward поручение по письму: корневое (parentID пустой) или переадресация полученной диспозиции
	Forward(letterID, actorID string, role models.UserRole, data dispositionapimodels.ForwardRequest) (Result, error)
	MarkRead(id, actorID string) (Result, error)
	MarkInProgress(id, actorID string) (Result, error)
	Complete(id, actorID, response string) (Result, error)
	CanAccess(id, actorID string, role models.UserRole) (bool, error)
	CanAccessLetter(letterID, actorID string, role models.UserRole) (bool, error)
	RecomputeLetterStatus(letterID string) (models.DocumentStatus, error)
	Tree(letterID, actorID string, role models.UserRole) ([]dispositionapimodels.TreeNode, error)
	Inbox(actorID string, filter dispositionapimodels.InboxFilter) ([]dispositionapimodels.DispositionView, int64, error)
}

type Result struct {
	DispositionID string
	Status        models.DispositionStatus
	LetterStatus  models.DocumentStatus
	Events        []models.NotificationData
}

type Stores struct {
	Letters      incomingletterstore.Provider
	Dispositions dispositionstore.Provider
}

func NewStores(tx *gorm.DB) Stores {
	return Stores{
		Letters:      incomingletterstore.NewInstance(tx),
		Dispositions: dispositionstore.NewInstance(tx),
	}
}

type TxFunc func(fn func(s Stores) error) error

type Deps struct {
	Stores      Stores
	Users       userstore.Provider
	Employees   employeestore.Provider
	Permissions models.PermissionChecker
	// MaxDepth предельная длина цепочки переадресаций
	MaxDepth int
	Now      func() time.Time
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"rbac.Instance", rbac.Instance,
	)
	Instance = NewInstance(Deps{
		Stores:      NewStores(db.DB),
		Users:       userstore.NewInstance(db.DB),
		Employees:   employeestore.NewInstance(db.DB),
		Permissions: rbac.Instance,
		MaxDepth:    config.Conf.Workflow.MaxDispositionDepth,
		Now:         time.Now,
	}, func(fn func(s Stores) error) error {
		return db.DB.Transaction(func(tx *gorm.DB) error {
			return fn(NewStores(tx))
		})
	})
}

const defaultMaxDepth = 32

func NewInstance(deps Deps, withTx TxFunc) Provider {
	if deps.MaxDepth <= 0 {
		deps.MaxDepth = defaultMaxDepth
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return impl{
		Deps:   deps,
		withTx: withTx,
	}
}

type impl struct {
	Deps
	withTx TxFunc
}

func (i impl) getLogger(dispositionID, actorID string) *log.Entry {
	logger := log.
		WithField("disposition_id", dispositionID).
		WithField("actor_id", actorID)
	return logger
}

func (i impl) Forward(letterID, actorID string, role models.UserRole, data dispositionapimodels.ForwardRequest) (Result, error) {
	if data.ToUserID == actorID {
		return Result{}, workflowerrors.NewValidation("нельзя направить поручение самому себе")
	}
	now := i.Now()
	if data.Deadline != nil && data.Deadline.Before(now) {
		return Result{}, workflowerrors.NewValidation("срок исполнения уже истек")
	}
	toUser, err := i.Users.GetByID(data.ToUserID)
	if err != nil {
		return Result{}, errors.Wrap(err, "ошибка получения получателя")
	}
	if toUser == nil || !toUser.IsActive {
		return Result{}, workflowerrors.NewNotFound("получатель не найден")
	}
	result := Result{Status: models.DispositionPending}
	var letter *dbmodels.IncomingLetter
	err = i.withTx(func(s Stores) error {
		var err error
		letter, err = i.lockLetter(s, letterID)
		if err != nil {
			return err
		}
		if letter.Status == models.DocStatusArchived {
			return workflowerrors.NewInvalidTransition("письмо передано в архив")
		}
		list, err := s.Dispositions.ListByLetter(letterID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения диспозиций письма")
		}
		arena := NewArena(list)
		rec := dbmodels.Disposition{
			IncomingLetterID: letterID,
			FromUserID:       actorID,
			ToUserID:         data.ToUserID,
			Status:           models.DispositionPending,
			Instruction:      data.Instruction,
			Deadline:         data.Deadline,
		}
		var parent *dbmodels.Disposition
		if data.ParentDispositionID != nil && *data.ParentDispositionID != "" {
			node, ok := arena.Get(*data.ParentDispositionID)
			if !ok {
				return workflowerrors.NewNotFound("родительская диспозиция не найдена")
			}
			parent = &node
			if err = i.checkChain(arena, *parent, actorID, data.ToUserID); err != nil {
				return err
			}
			rec.ParentDispositionID = &parent.ID
		} else if !i.canDispose(*letter, actorID, role) {
			return workflowerrors.NewAuthorizationDenied("нет прав на расписание письма")
		}
		result.DispositionID, err = s.Dispositions.Create(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка создания диспозиции")
		}
		// переадресация означает, что исполнитель родительской диспозиции приступил к работе
		if parent != nil && parent.Status.IsAllowChange(models.DispositionInProgress) {
			_, err = s.Dispositions.UpdateStatus(parent.ID, parent.Status, progressFields(*parent, models.DispositionInProgress, now))
			if err != nil {
				return errors.Wrap(err, "ошибка обновления родительской диспозиции")
			}
		}
		result.LetterStatus, err = i.recompute(s, letter)
		return err
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger("", actorID).WithField("incoming_letter_id", letterID).WithError(err).Error("ошибка создания диспозиции")
		}
		return Result{}, err
	}
	result.Events = []models.NotificationData{
		models.GetNotifyDispositionNew(data.ToUserID, letter.Subject, data.Instruction, ActionURL(letterID), EventData(letterID, result.DispositionID)),
	}
	return result, nil
}

// checkChain переадресовать может только получатель незавершенной диспозиции,
// без повторного участия получателя в цепочке и в пределах MaxDepth
func (i impl) checkChain(arena Arena, parent dbmodels.Disposition, actorID, toUserID string) error {
	if parent.ToUserID != actorID {
		return workflowerrors.NewAuthorizationDenied("переадресовать может только исполнитель диспозиции")
	}
	if parent.Status.IsCompleted() {
		return workflowerrors.NewInvalidTransition("исполненную диспозицию нельзя переадресовать")
	}
	chain := append([]dbmodels.Disposition{parent}, arena.Ancestors(parent.ID)...)
	for _, node := range chain {
		if node.ToUserID == toUserID {
			return workflowerrors.NewValidation("пользователь уже участвует в цепочке поручений")
		}
	}
	if len(chain)+1 > i.MaxDepth {
		return workflowerrors.NewValidation("превышена допустимая глубина цепочки поручений (%d)", i.MaxDepth)
	}
	return nil
}

// canDispose корневое поручение дает регистратор письма или пользователь с правом управления диспозициями
func (i impl) canDispose(letter dbmodels.IncomingLetter, actorID string, role models.UserRole) bool {
	if role.IsAdmin() || letter.RegistrarID == actorID {
		return true
	}
	return i.Permissions != nil && i.Permissions.HasPermission(role, models.DispositionsModule, models.ManagePermission)
}

func (i impl) MarkRead(id, actorID string) (Result, error) {
	return i.transition(id, actorID, models.DispositionRead, "")
}

func (i impl) MarkInProgress(id, actorID string) (Result, error) {
	return i.transition(id, actorID, models.DispositionInProgress, "")
}

func (i impl) Complete(id, actorID, response string) (Result, error) {
	return i.transition(id, actorID, models.DispositionCompleted, response)
}

func (i impl) transition(id, actorID string, to models.DispositionStatus, response string) (Result, error) {
	result := Result{DispositionID: id, Status: to}
	var node *dbmodels.Disposition
	var letter *dbmodels.IncomingLetter
	err := i.withTx(func(s Stores) error {
		var err error
		node, err = i.getNode(s, id)
		if err != nil {
			return err
		}
		letter, err = i.lockLetter(s, node.IncomingLetterID)
		if err != nil {
			return err
		}
		// перечитываем после блокировки письма
		node, err = i.getNode(s, id)
		if err != nil {
			return err
		}
		if node.ToUserID != actorID {
			return workflowerrors.NewAuthorizationDenied("изменить диспозицию может только ее исполнитель")
		}
		if !node.Status.IsAllowChange(to) {
			return workflowerrors.NewInvalidTransition("диспозиция уже в статусе \"%v\"", node.Status.ToHuman())
		}
		updMap := progressFields(*node, to, i.Now())
		if to == models.DispositionCompleted {
			updMap["response"] = response
		}
		ok, err := s.Dispositions.UpdateStatus(id, node.Status, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка обновления диспозиции")
		}
		if !ok {
			return workflowerrors.NewInvalidTransition("диспозиция уже изменена")
		}
		result.LetterStatus, err = i.recompute(s, letter)
		return err
	})
	if err != nil {
		if _, ok := workflowerrors.KindOf(err); !ok {
			i.getLogger(id, actorID).WithError(err).Error("ошибка смены статуса диспозиции")
		}
		return Result{}, err
	}
	if to == models.DispositionCompleted {
		actorName := ""
		if actor, err := i.Users.GetByID(actorID); err == nil && actor != nil {
			actorName = actor.GetFullName()
		}
		result.Events = append(result.Events, models.GetNotifyDispositionCompleted(node.FromUserID, letter.Subject, actorName, ActionURL(letter.ID), EventData(letter.ID, id)))
	}
	return result, nil
}

// progressFields отметки времени для перехода в статус to. Пропущенные этапы отмечаются тем же временем
func progressFields(node dbmodels.Disposition, to models.DispositionStatus, now time.Time) map[string]interface{} {
	updMap := map[string]interface{}{
		"status": to,
	}
	if node.ReadAt == nil {
		updMap["read_at"] = now
	}
	if to == models.DispositionInProgress || to == models.DispositionCompleted {
		if node.StartedAt == nil {
			updMap["started_at"] = now
		}
	}
	if to == models.DispositionCompleted {
		updMap["completed_at"] = now
	}
	return updMap
}

func (i impl) RecomputeLetterStatus(letterID string) (status models.DocumentStatus, err error) {
	err = i.withTx(func(s Stores) error {
		letter, err := i.lockLetter(s, letterID)
		if err != nil {
			return err
		}
		status, err = i.recompute(s, letter)
		return err
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// recompute статус письма заново по всем узлам дерева. Архивное письмо не меняется
func (i impl) recompute(s Stores, letter *dbmodels.IncomingLetter) (models.DocumentStatus, error) {
	if letter.Status == models.DocStatusArchived {
		return letter.Status, nil
	}
	list, err := s.Dispositions.ListByLetter(letter.ID)
	if err != nil {
		return "", errors.Wrap(err, "ошибка получения диспозиций письма")
	}
	status := LetterStatus(list)
	if status == letter.Status {
		return status, nil
	}
	err = s.Letters.Update(letter.ID, map[string]interface{}{"status": status})
	if err != nil {
		return "", errors.Wrap(err, "ошибка обновления статуса письма")
	}
	letter.Status = status
	return status, nil
}

func (i impl) CanAccess(id, actorID string, role models.UserRole) (bool, error) {
	node, err := i.getNode(i.Stores, id)
	if err != nil {
		return false, err
	}
	if role.IsAdmin() || involves(*node, actorID) {
		return true, nil
	}
	list, err := i.Stores.Dispositions.ListByLetter(node.IncomingLetterID)
	if err != nil {
		return false, err
	}
	arena := NewArena(list)
	for _, rec := range arena.Ancestors(id) {
		if involves(rec, actorID) {
			return true, nil
		}
	}
	for _, rec := range arena.Descendants(id) {
		if involves(rec, actorID) {
			return true, nil
		}
	}
	letter, err := i.Stores.Letters.GetByID(node.IncomingLetterID)
	if err != nil {
		return false, err
	}
	if letter == nil {
		return false, nil
	}
	return i.canViewLetter(*letter, actorID, role)
}

func (i impl) CanAccessLetter(letterID, actorID string, role models.UserRole) (bool, error) {
	if role.IsAdmin() {
		return true, nil
	}
	letter, err := i.Stores.Letters.GetByID(letterID)
	if err != nil {
		return false, err
	}
	if letter == nil {
		return false, workflowerrors.NewNotFound("входящее письмо не найдено")
	}
	list, err := i.Stores.Dispositions.ListByLetter(letterID)
	if err != nil {
		return false, err
	}
	if NewArena(list).Involves(actorID) {
		return true, nil
	}
	return i.canViewLetter(*letter, actorID, role)
}

// canViewLetter регистратор письма или сотрудник того же подразделения с правом просмотра
func (i impl) canViewLetter(letter dbmodels.IncomingLetter, actorID string, role models.UserRole) (bool, error) {
	if letter.RegistrarID == actorID {
		return true, nil
	}
	if letter.GetOrgUnitID() == "" || i.Permissions == nil ||
		!i.Permissions.HasPermission(role, models.IncomingLettersModule, models.ViewPermission) {
		return false, nil
	}
	employee, err := i.Employees.GetByUserID(actorID)
	if err != nil {
		return false, err
	}
	return employee != nil && employee.OrgUnitID == letter.GetOrgUnitID(), nil
}

func (i impl) Tree(letterID, actorID string, role models.UserRole) ([]dispositionapimodels.TreeNode, error) {
	ok, err := i.CanAccessLetter(letterID, actorID, role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, workflowerrors.NewAuthorizationDenied("нет доступа к письму")
	}
	list, err := i.Stores.Dispositions.ListByLetter(letterID)
	if err != nil {
		return nil, err
	}
	return NewArena(list).Tree(), nil
}

func (i impl) Inbox(actorID string, filter dispositionapimodels.InboxFilter) ([]dispositionapimodels.DispositionView, int64, error) {
	list, rowCount, err := i.Stores.Dispositions.ListForUser(actorID, filter.Status, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dispositionapimodels.DispositionView, 0, len(list))
	for _, rec := range list {
		result = append(result, dispositionapimodels.DispositionConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) lockLetter(s Stores, letterID string) (*dbmodels.IncomingLetter, error) {
	letter, err := s.Letters.GetForUpdate(letterID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения входящего письма")
	}
	if letter == nil {
		return nil, workflowerrors.NewNotFound("входящее письмо не найдено")
	}
	return letter, nil
}

func (i impl) getNode(s Stores, id string) (*dbmodels.Disposition, error) {
	node, err := s.Dispositions.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения диспозиции")
	}
	if node == nil {
		return nil, workflowerrors.NewNotFound("диспозиция не найдена")
	}
	return node, nil
}

func ActionURL(letterID string) string {
	return fmt.Sprintf("/incoming_letters/%s", letterID)
}

func EventData(letterID, dispositionID string) map[string]string {
	return map[string]string{
		"incoming_letter_id": letterID,
		"disposition_id":     dispositionID,
	}
}
