package models

import "fmt"

type NotificationCode string

type NotificationTpl struct {
	Name  string
	Title string
	Msg   string
}

var NotificationCodeMap = map[NotificationCode]NotificationTpl{
	NotifyApprovalRequired: {Name: "Документ ожидает согласования", Title: "Требуется согласование", Msg: "Документ «%v» ожидает вашего согласования."},
	NotifyStepApproved:     {Name: "Согласование документа", Title: "Документ согласован", Msg: "Документ «%v» согласован пользователем %v. Статус: %v."},
	NotifyStepRejected:     {Name: "Отклонение документа", Title: "Документ отклонен", Msg: "Документ «%v» отклонен пользователем %v. Комментарий: %v"},

	NotifyDispositionNew:       {Name: "Новая диспозиция", Title: "Поступила диспозиция", Msg: "Вам направлено письмо «%v»: %v"},
	NotifyDispositionCompleted: {Name: "Диспозиция исполнена", Title: "Диспозиция исполнена", Msg: "Диспозиция по письму «%v» исполнена пользователем %v."},
	NotifyDispositionOverdue:   {Name: "Просрочена диспозиция", Title: "Истек срок исполнения", Msg: "Срок исполнения диспозиции по письму «%v» истек %v."},

	NotifyEarlyLeaveAction:   {Name: "Заявка на ранний уход ожидает решения", Title: "Заявка на ранний уход", Msg: "Заявка на ранний уход сотрудника %v ожидает вашего решения."},
	NotifyEarlyLeaveApproved: {Name: "Заявка на ранний уход согласована", Title: "Ранний уход согласован", Msg: "Ваша заявка на ранний уход %v согласована."},
	NotifyEarlyLeaveRejected: {Name: "Заявка на ранний уход отклонена", Title: "Ранний уход отклонен", Msg: "Ваша заявка на ранний уход %v отклонена. Комментарий: %v"},
	NotifyEarlyLeaveSigned:   {Name: "Директор подписал заявку", Title: "Заявка подписана директором", Msg: "Директор %v подписал заявку на ранний уход %v."},
}

const (
	NotifyApprovalRequired NotificationCode = "ApprovalRequired"
	NotifyStepApproved     NotificationCode = "StepApproved"
	NotifyStepRejected     NotificationCode = "StepRejected"

	NotifyDispositionNew       NotificationCode = "DispositionNew"
	NotifyDispositionCompleted NotificationCode = "DispositionCompleted"
	NotifyDispositionOverdue   NotificationCode = "DispositionOverdue"

	NotifyEarlyLeaveAction   NotificationCode = "EarlyLeaveAction"
	NotifyEarlyLeaveApproved NotificationCode = "EarlyLeaveApproved"
	NotifyEarlyLeaveRejected NotificationCode = "EarlyLeaveRejected"
	NotifyEarlyLeaveSigned   NotificationCode = "EarlyLeaveSigned"
)

// NotificationData событие для отправки после фиксации транзакции
type NotificationData struct {
	UserID    string
	Code      NotificationCode
	Title     string
	Msg       string
	Data      map[string]string
	ActionURL string
}

func newNotification(userID string, code NotificationCode, actionURL string, data map[string]string, args ...any) NotificationData {
	return NotificationData{
		UserID:    userID,
		Code:      code,
		Title:     NotificationCodeMap[code].Title,
		Msg:       fmt.Sprintf(NotificationCodeMap[code].Msg, args...),
		Data:      data,
		ActionURL: actionURL,
	}
}

func GetNotifyApprovalRequired(userID, title, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyApprovalRequired, actionURL, data, title)
}

func GetNotifyStepApproved(userID, title, actorName string, status DocumentStatus, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyStepApproved, actionURL, data, title, actorName, status.ToHuman())
}

func GetNotifyStepRejected(userID, title, actorName, comment, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyStepRejected, actionURL, data, title, actorName, comment)
}

func GetNotifyDispositionNew(userID, subject, instruction, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyDispositionNew, actionURL, data, subject, instruction)
}

func GetNotifyDispositionCompleted(userID, subject, actorName, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyDispositionCompleted, actionURL, data, subject, actorName)
}

func GetNotifyDispositionOverdue(userID, subject, deadline, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyDispositionOverdue, actionURL, data, subject, deadline)
}

func GetNotifyEarlyLeaveAction(userID, employeeName, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyEarlyLeaveAction, actionURL, data, employeeName)
}

func GetNotifyEarlyLeaveApproved(userID, date, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyEarlyLeaveApproved, actionURL, data, date)
}

func GetNotifyEarlyLeaveRejected(userID, date, comment, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyEarlyLeaveRejected, actionURL, data, date, comment)
}

func GetNotifyEarlyLeaveSigned(userID, directorName, date, actionURL string, data map[string]string) NotificationData {
	return newNotification(userID, NotifyEarlyLeaveSigned, actionURL, data, directorName, date)
}
