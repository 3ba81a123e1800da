package models

type ApprovalStepStatus string

const (
	StepPending  ApprovalStepStatus = "pending"
	StepApproved ApprovalStepStatus = "approved"
	StepRejected ApprovalStepStatus = "rejected"
)

var stepStatusHumanName = map[ApprovalStepStatus]string{
	StepPending:  "Ожидает",
	StepApproved: "Согласовано",
	StepRejected: "Отклонено",
}

func (s ApprovalStepStatus) ToHuman() string {
	if human, exist := stepStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ApprovalStepStatus) IsPending() bool {
	return s == StepPending
}

// DocumentKind тип документа, к которому привязана цепочка согласования или вложение
type DocumentKind string

const (
	LetterKind         DocumentKind = "letter"
	OutgoingLetterKind DocumentKind = "outgoing_letter"
	IncomingLetterKind DocumentKind = "incoming_letter"
)

// AggregateLabels статусы родительского документа, вычисляемые по шагам
type AggregateLabels struct {
	Pending  DocumentStatus
	Partial  DocumentStatus
	Complete DocumentStatus
	Rejected DocumentStatus
}

// InWorkflow статус выставлен по шагам согласования
func (l AggregateLabels) InWorkflow(status DocumentStatus) bool {
	switch status {
	case l.Pending, l.Partial, l.Complete, l.Rejected:
		return true
	}
	return false
}

type ApprovalAction string

const (
	ActionSubmitted ApprovalAction = "submitted"
	ActionApproved  ApprovalAction = "approved"
	ActionRejected  ApprovalAction = "rejected"
	ActionReset     ApprovalAction = "reset"
)
