package models

// DocumentStatus статус письма (входящего, исходящего или внутреннего)
type DocumentStatus string

const (
	DocStatusDraft           DocumentStatus = "draft"
	DocStatusPendingApproval DocumentStatus = "pending_approval"
	DocStatusRejected        DocumentStatus = "rejected"
	DocStatusArchived        DocumentStatus = "archived"

	// внутренние письма
	DocStatusPartiallyApproved DocumentStatus = "partially_approved"
	DocStatusApproved          DocumentStatus = "approved"

	// исходящие письма
	DocStatusPartiallySigned DocumentStatus = "partially_signed"
	DocStatusFullySigned     DocumentStatus = "fully_signed"
	DocStatusSent            DocumentStatus = "sent"

	// входящие письма
	DocStatusNew        DocumentStatus = "new"
	DocStatusDisposed   DocumentStatus = "disposed"
	DocStatusInProgress DocumentStatus = "in_progress"
	DocStatusCompleted  DocumentStatus = "completed"
)

var docStatusHumanName = map[DocumentStatus]string{
	DocStatusDraft:             "Черновик",
	DocStatusPendingApproval:   "На согласовании",
	DocStatusRejected:          "Отклонено",
	DocStatusArchived:          "В архиве",
	DocStatusPartiallyApproved: "Частично согласовано",
	DocStatusApproved:          "Согласовано",
	DocStatusPartiallySigned:   "Частично подписано",
	DocStatusFullySigned:       "Подписано",
	DocStatusSent:              "Отправлено",
	DocStatusNew:               "Новое",
	DocStatusDisposed:          "Расписано",
	DocStatusInProgress:        "В работе",
	DocStatusCompleted:         "Исполнено",
}

func (s DocumentStatus) ToHuman() string {
	if human, exist := docStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsEditable письмо можно править только до отправки на согласование или после отклонения
func (s DocumentStatus) IsEditable() bool {
	return s == DocStatusDraft || s == DocStatusRejected
}

var (
	LetterLabels = AggregateLabels{
		Pending:  DocStatusPendingApproval,
		Partial:  DocStatusPartiallyApproved,
		Complete: DocStatusApproved,
		Rejected: DocStatusRejected,
	}
	OutgoingLetterLabels = AggregateLabels{
		Pending:  DocStatusPendingApproval,
		Partial:  DocStatusPartiallySigned,
		Complete: DocStatusFullySigned,
		Rejected: DocStatusRejected,
	}
)

type LetterPriority string

const (
	PriorityNormal    LetterPriority = "normal"
	PriorityUrgent    LetterPriority = "urgent"
	PriorityImportant LetterPriority = "important"
)
