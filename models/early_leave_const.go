package models

type EarlyLeaveStatus string

const (
	ELStatusPending             EarlyLeaveStatus = "pending"
	ELStatusPendingDelegation   EarlyLeaveStatus = "pending_delegation"
	ELStatusPendingSupervisor   EarlyLeaveStatus = "pending_supervisor"
	ELStatusPendingHR           EarlyLeaveStatus = "pending_hr"
	ELStatusPendingDirectorSign EarlyLeaveStatus = "pending_director_sign"
	ELStatusApproved            EarlyLeaveStatus = "approved"
	ELStatusRejected            EarlyLeaveStatus = "rejected"
)

var earlyLeaveHumanName = map[EarlyLeaveStatus]string{
	ELStatusPending:             "Создана",
	ELStatusPendingDelegation:   "Ожидает замещающего",
	ELStatusPendingSupervisor:   "Ожидает руководителя",
	ELStatusPendingHR:           "Ожидает отдел кадров",
	ELStatusPendingDirectorSign: "Ожидает подписи директора",
	ELStatusApproved:            "Согласована",
	ELStatusRejected:            "Отклонена",
}

func (s EarlyLeaveStatus) ToHuman() string {
	if human, exist := earlyLeaveHumanName[s]; exist {
		return human
	}
	return string(s)
}

// AllowReject отклонить можно только до согласования отделом кадров
func (s EarlyLeaveStatus) AllowReject() bool {
	switch s {
	case ELStatusPending, ELStatusPendingDelegation, ELStatusPendingSupervisor, ELStatusPendingHR:
		return true
	}
	return false
}

func (s EarlyLeaveStatus) IsFinal() bool {
	return s == ELStatusApproved || s == ELStatusRejected
}

type EarlyLeaveStage string

const (
	StageDelegation EarlyLeaveStage = "delegation"
	StageSupervisor EarlyLeaveStage = "supervisor"
	StageHR         EarlyLeaveStage = "hr"
	StageDirector   EarlyLeaveStage = "director"
)

// ExpectedStatus статус заявки, из которого допустим переход на этапе
func (s EarlyLeaveStage) ExpectedStatus() EarlyLeaveStatus {
	switch s {
	case StageDelegation:
		return ELStatusPendingDelegation
	case StageSupervisor:
		return ELStatusPendingSupervisor
	case StageHR:
		return ELStatusPendingHR
	case StageDirector:
		return ELStatusApproved
	}
	return ""
}

// NextStatus статус заявки после согласования на этапе
func (s EarlyLeaveStage) NextStatus() EarlyLeaveStatus {
	switch s {
	case StageDelegation:
		return ELStatusPendingSupervisor
	case StageSupervisor:
		return ELStatusPendingHR
	case StageHR, StageDirector:
		return ELStatusApproved
	}
	return ""
}
