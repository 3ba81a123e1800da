package approvalengine

import (
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"
)

// AggregateStatus статус документа по текущему состоянию всех его шагов.
// Документ без шагов никогда не считается согласованным
func AggregateStatus(steps []dbmodels.ApprovalStep, labels models.AggregateLabels) models.DocumentStatus {
	approved := 0
	for _, step := range steps {
		switch step.Status {
		case models.StepRejected:
			return labels.Rejected
		case models.StepApproved:
			approved++
		}
	}
	switch {
	case len(steps) > 0 && approved == len(steps):
		return labels.Complete
	case approved > 0:
		return labels.Partial
	}
	return labels.Pending
}

// CheckTurn проверяет, что все предыдущие шаги согласованы.
// Отклонение любого шага документа закрывает цепочку
func CheckTurn(steps []dbmodels.ApprovalStep, step dbmodels.ApprovalStep) error {
	for _, other := range steps {
		if other.ID == step.ID {
			continue
		}
		if other.Status == models.StepRejected {
			return workflowerrors.NewInvalidTransition("документ отклонен на шаге %v", other.StepOrder)
		}
	}
	for _, other := range steps {
		if other.StepOrder >= step.StepOrder || other.ID == step.ID {
			continue
		}
		if other.Status != models.StepApproved {
			return workflowerrors.NewOutOfTurn("очередь согласования еще не наступила, ожидается шаг %v", other.StepOrder)
		}
	}
	return nil
}

func CanAct(steps []dbmodels.ApprovalStep, step dbmodels.ApprovalStep, actorID string) bool {
	if step.UserID != actorID || step.Status != models.StepPending {
		return false
	}
	return CheckTurn(steps, step) == nil
}

// NextActionable первый ожидающий шаг, если до него дошла очередь
func NextActionable(steps []dbmodels.ApprovalStep) *dbmodels.ApprovalStep {
	for idx := range steps {
		if steps[idx].Status != models.StepPending {
			continue
		}
		if CheckTurn(steps, steps[idx]) != nil {
			return nil
		}
		return &steps[idx]
	}
	return nil
}
