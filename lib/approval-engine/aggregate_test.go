package approvalengine

import (
	"testing"

	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/stretchr/testify/require"
)

func buildSteps(statuses ...models.ApprovalStepStatus) []dbmodels.ApprovalStep {
	result := make([]dbmodels.ApprovalStep, 0, len(statuses))
	for idx, status := range statuses {
		result = append(result, dbmodels.ApprovalStep{
			BaseModel: dbmodels.BaseModel{ID: string(rune('a' + idx))},
			StepOrder: idx + 1,
			UserID:    string(rune('A' + idx)),
			Status:    status,
		})
	}
	return result
}

func TestAggregateStatus(t *testing.T) {
	labels := models.OutgoingLetterLabels
	t.Run("zero steps is never complete", func(t *testing.T) {
		require.Equal(t, models.DocStatusPendingApproval, AggregateStatus(nil, labels))
		require.Equal(t, models.DocStatusPendingApproval, AggregateStatus(nil, models.LetterLabels))
		require.NotEqual(t, labels.Complete, AggregateStatus([]dbmodels.ApprovalStep{}, labels))
	})
	t.Run("all pending", func(t *testing.T) {
		steps := buildSteps(models.StepPending, models.StepPending)
		require.Equal(t, models.DocStatusPendingApproval, AggregateStatus(steps, labels))
	})
	t.Run("partial", func(t *testing.T) {
		steps := buildSteps(models.StepApproved, models.StepPending, models.StepPending)
		require.Equal(t, models.DocStatusPartiallySigned, AggregateStatus(steps, labels))
		require.Equal(t, models.DocStatusPartiallyApproved, AggregateStatus(steps, models.LetterLabels))
	})
	t.Run("all approved", func(t *testing.T) {
		steps := buildSteps(models.StepApproved, models.StepApproved)
		require.Equal(t, models.DocStatusFullySigned, AggregateStatus(steps, labels))
		require.Equal(t, models.DocStatusApproved, AggregateStatus(steps, models.LetterLabels))
	})
	t.Run("rejection wins regardless of other steps", func(t *testing.T) {
		require.Equal(t, models.DocStatusRejected, AggregateStatus(buildSteps(models.StepApproved, models.StepRejected, models.StepApproved), labels))
		require.Equal(t, models.DocStatusRejected, AggregateStatus(buildSteps(models.StepRejected, models.StepPending), labels))
		require.Equal(t, models.DocStatusRejected, AggregateStatus(buildSteps(models.StepPending, models.StepPending, models.StepRejected), labels))
	})
	t.Run("approved after reset back to pending", func(t *testing.T) {
		steps := buildSteps(models.StepPending, models.StepApproved)
		require.Equal(t, models.DocStatusPartiallySigned, AggregateStatus(steps, labels))
	})
}

func TestCheckTurn(t *testing.T) {
	t.Run("first step always in turn", func(t *testing.T) {
		steps := buildSteps(models.StepPending, models.StepPending, models.StepPending)
		require.NoError(t, CheckTurn(steps, steps[0]))
	})
	t.Run("no skip", func(t *testing.T) {
		steps := buildSteps(models.StepPending, models.StepPending, models.StepPending)
		err := CheckTurn(steps, steps[1])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.OutOfTurn))
		err = CheckTurn(steps, steps[2])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.OutOfTurn))

		steps = buildSteps(models.StepApproved, models.StepPending, models.StepPending)
		require.NoError(t, CheckTurn(steps, steps[1]))
		err = CheckTurn(steps, steps[2])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.OutOfTurn))
	})
	t.Run("earlier rejection blocks", func(t *testing.T) {
		steps := buildSteps(models.StepApproved, models.StepRejected, models.StepPending)
		err := CheckTurn(steps, steps[2])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
	t.Run("CanAct", func(t *testing.T) {
		steps := buildSteps(models.StepApproved, models.StepPending, models.StepPending)
		require.True(t, CanAct(steps, steps[1], "B"))
		require.False(t, CanAct(steps, steps[1], "C"))
		require.False(t, CanAct(steps, steps[2], "C"))
		require.False(t, CanAct(steps, steps[0], "A"))
	})
	t.Run("NextActionable", func(t *testing.T) {
		steps := buildSteps(models.StepApproved, models.StepPending, models.StepPending)
		next := NextActionable(steps)
		require.NotNil(t, next)
		require.Equal(t, 2, next.StepOrder)

		require.Nil(t, NextActionable(buildSteps(models.StepApproved, models.StepApproved)))
		require.Nil(t, NextActionable(buildSteps(models.StepRejected, models.StepPending)))
	})
}
