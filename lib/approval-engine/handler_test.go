package approvalengine

import (
	"testing"

	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"

	"github.com/stretchr/testify/require"
)

func TestEngineScenario(t *testing.T) {
	env := newTestEnv()
	signers := []string{env.addUser("Первый"), env.addUser("Второй"), env.addUser("Третий")}
	docID := env.addOutgoingLetter()

	result, err := env.engine.Submit(models.OutgoingLetterKind, docID, env.ownerID, signers)
	require.NoError(t, err)
	require.Equal(t, models.DocStatusPendingApproval, result.DocumentStatus)
	require.Len(t, result.Events, 1)
	require.Equal(t, signers[0], result.Events[0].UserID)
	require.Equal(t, models.NotifyApprovalRequired, result.Events[0].Code)

	stepIDs := env.stepIDs(models.OutgoingLetterKind, docID)
	require.Len(t, stepIDs, 3)

	t.Run("step 2 before step 1 is out of turn", func(t *testing.T) {
		_, err := env.engine.Approve(stepIDs[1], signers[1], "", "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.OutOfTurn))
		canAct, err := env.engine.CanAct(stepIDs[1], signers[1])
		require.NoError(t, err)
		require.False(t, canAct)
	})
	t.Run("foreign actor is denied", func(t *testing.T) {
		_, err := env.engine.Approve(stepIDs[0], signers[1], "", "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("signing in order", func(t *testing.T) {
		result, err := env.engine.Approve(stepIDs[0], signers[0], "", "sign-1")
		require.NoError(t, err)
		require.Equal(t, models.DocStatusPartiallySigned, result.DocumentStatus)
		require.Equal(t, models.StepApproved, result.StepStatus)
		require.Len(t, result.Events, 2)
		require.Equal(t, env.ownerID, result.Events[0].UserID)
		require.Equal(t, models.NotifyStepApproved, result.Events[0].Code)
		require.Equal(t, signers[1], result.Events[1].UserID)
		require.Equal(t, models.NotifyApprovalRequired, result.Events[1].Code)

		result, err = env.engine.Approve(stepIDs[1], signers[1], "", "sign-2")
		require.NoError(t, err)
		require.Equal(t, models.DocStatusPartiallySigned, result.DocumentStatus)

		result, err = env.engine.Approve(stepIDs[2], signers[2], "", "sign-3")
		require.NoError(t, err)
		require.Equal(t, models.DocStatusFullySigned, result.DocumentStatus)
		require.Len(t, result.Events, 1)
		require.Equal(t, models.DocStatusFullySigned, env.outgoing.docs[docID].Status)
	})
	t.Run("history", func(t *testing.T) {
		history, err := env.engine.History(models.OutgoingLetterKind, docID)
		require.NoError(t, err)
		require.Len(t, history, 4)
		require.Equal(t, models.ActionSubmitted, history[0].Action)
		require.Equal(t, models.DocStatusFullySigned, history[3].StatusAfter)
	})
}

func TestEngineRejection(t *testing.T) {
	env := newTestEnv()
	signers := []string{env.addUser("Первый"), env.addUser("Второй"), env.addUser("Третий")}
	docID := env.addOutgoingLetter()
	_, err := env.engine.Submit(models.OutgoingLetterKind, docID, env.ownerID, signers)
	require.NoError(t, err)
	stepIDs := env.stepIDs(models.OutgoingLetterKind, docID)

	_, err = env.engine.Approve(stepIDs[0], signers[0], "", "")
	require.NoError(t, err)

	result, err := env.engine.Reject(stepIDs[1], signers[1], "нет подписи руководителя")
	require.NoError(t, err)
	require.Equal(t, models.DocStatusRejected, result.DocumentStatus)
	require.Len(t, result.Events, 1)
	require.Equal(t, models.NotifyStepRejected, result.Events[0].Code)
	require.Equal(t, env.ownerID, result.Events[0].UserID)

	t.Run("downstream step can no longer act", func(t *testing.T) {
		_, err := env.engine.Approve(stepIDs[2], signers[2], "", "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
		require.Equal(t, models.DocStatusRejected, env.outgoing.docs[docID].Status)
		canAct, err := env.engine.CanAct(stepIDs[2], signers[2])
		require.NoError(t, err)
		require.False(t, canAct)
	})
	t.Run("resubmission after rejection", func(t *testing.T) {
		result, err := env.engine.Submit(models.OutgoingLetterKind, docID, env.ownerID, signers[1:])
		require.NoError(t, err)
		require.Equal(t, models.DocStatusPendingApproval, result.DocumentStatus)
		require.Len(t, env.stepIDs(models.OutgoingLetterKind, docID), 2)
	})
}

func TestEngineTerminalSteps(t *testing.T) {
	env := newTestEnv()
	signers := []string{env.addUser("Первый"), env.addUser("Второй")}
	docID := env.addLetter()
	_, err := env.engine.Submit(models.LetterKind, docID, env.ownerID, signers)
	require.NoError(t, err)
	stepIDs := env.stepIDs(models.LetterKind, docID)

	t.Run("approve twice", func(t *testing.T) {
		result, err := env.engine.Approve(stepIDs[0], signers[0], "", "")
		require.NoError(t, err)
		require.Equal(t, models.DocStatusPartiallyApproved, result.DocumentStatus)
		_, err = env.engine.Approve(stepIDs[0], signers[0], "", "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
	t.Run("reject twice", func(t *testing.T) {
		result, err := env.engine.Reject(stepIDs[1], signers[1], "ошибка в тексте")
		require.NoError(t, err)
		require.Equal(t, models.DocStatusRejected, result.DocumentStatus)
		_, err = env.engine.Reject(stepIDs[1], signers[1], "ошибка в тексте")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
	t.Run("reset by foreign user is denied", func(t *testing.T) {
		_, err := env.engine.ResetStep(stepIDs[1], signers[0], "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("reset re-derives aggregate", func(t *testing.T) {
		result, err := env.engine.ResetStep(stepIDs[1], env.ownerID, "исправлено")
		require.NoError(t, err)
		require.Equal(t, models.DocStatusPartiallyApproved, result.DocumentStatus)
		require.Len(t, result.Events, 1)
		require.Equal(t, signers[1], result.Events[0].UserID)

		result, err = env.engine.Approve(stepIDs[1], signers[1], "", "")
		require.NoError(t, err)
		require.Equal(t, models.DocStatusApproved, result.DocumentStatus)

		_, err = env.engine.ResetStep(stepIDs[1], env.ownerID, "")
		require.NoError(t, err)
		_, err = env.engine.ResetStep(stepIDs[1], env.ownerID, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
}

func TestEngineSubmitValidation(t *testing.T) {
	env := newTestEnv()
	signer := env.addUser("Первый")
	docID := env.addLetter()

	t.Run("no approvers", func(t *testing.T) {
		_, err := env.engine.Submit(models.LetterKind, docID, env.ownerID, nil)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("duplicate approvers", func(t *testing.T) {
		_, err := env.engine.Submit(models.LetterKind, docID, env.ownerID, []string{signer, signer})
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("unknown approver", func(t *testing.T) {
		_, err := env.engine.Submit(models.LetterKind, docID, env.ownerID, []string{"unknown"})
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
	t.Run("not owner", func(t *testing.T) {
		_, err := env.engine.Submit(models.LetterKind, docID, signer, []string{signer})
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("unknown document", func(t *testing.T) {
		_, err := env.engine.Submit(models.LetterKind, "missing", env.ownerID, []string{signer})
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
	t.Run("already on approval", func(t *testing.T) {
		_, err := env.engine.Submit(models.LetterKind, docID, env.ownerID, []string{signer})
		require.NoError(t, err)
		_, err = env.engine.Submit(models.LetterKind, docID, env.ownerID, []string{signer})
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
	t.Run("pending for user", func(t *testing.T) {
		list, err := env.engine.PendingForUser(signer)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, docID, list[0].DocumentID)
	})
}

func TestEngineClosedDocument(t *testing.T) {
	env := newTestEnv()
	signers := []string{env.addUser("Первый"), env.addUser("Второй")}
	docID := env.addOutgoingLetter()
	_, err := env.engine.Submit(models.OutgoingLetterKind, docID, env.ownerID, signers)
	require.NoError(t, err)
	stepIDs := env.stepIDs(models.OutgoingLetterKind, docID)
	_, err = env.engine.Approve(stepIDs[0], signers[0], "", "sign-1")
	require.NoError(t, err)

	t.Run("sent letter steps are frozen", func(t *testing.T) {
		env.outgoing.docs[docID].Status = models.DocStatusSent
		_, err := env.engine.Approve(stepIDs[1], signers[1], "", "sign-2")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
		_, err = env.engine.Reject(stepIDs[1], signers[1], "поздно")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
		require.Equal(t, models.DocStatusSent, env.outgoing.docs[docID].Status)
	})
	t.Run("archived letter is not reset", func(t *testing.T) {
		env.outgoing.docs[docID].Status = models.DocStatusArchived
		_, err := env.engine.ResetStep(stepIDs[0], env.ownerID, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
		require.Equal(t, models.DocStatusArchived, env.outgoing.docs[docID].Status)

		step, err := env.steps.GetByID(stepIDs[0])
		require.NoError(t, err)
		require.Equal(t, models.StepApproved, step.Status)
	})
}

func TestEngineLockOrder(t *testing.T) {
	env := newTestEnv()
	signer := env.addUser("Первый")
	docID := env.addLetter()
	_, err := env.engine.Submit(models.LetterKind, docID, env.ownerID, []string{signer})
	require.NoError(t, err)
	stepIDs := env.stepIDs(models.LetterKind, docID)

	env.log.calls = nil
	_, err = env.engine.Approve(stepIDs[0], signer, "", "")
	require.NoError(t, err)
	require.Equal(t, []string{"step.get", "document.lock", "step.lock"}, env.log.calls)
}

func TestEngineDeleteDocument(t *testing.T) {
	env := newTestEnv()
	signers := []string{env.addUser("Первый"), env.addUser("Второй")}

	t.Run("rejected letter is deleted with steps and history", func(t *testing.T) {
		docID := env.addLetter()
		_, err := env.engine.Submit(models.LetterKind, docID, env.ownerID, signers)
		require.NoError(t, err)
		stepIDs := env.stepIDs(models.LetterKind, docID)
		_, err = env.engine.Reject(stepIDs[0], signers[0], "не нужно")
		require.NoError(t, err)

		require.NoError(t, env.engine.DeleteDocument(models.LetterKind, docID, env.ownerID))
		require.NotContains(t, env.letters.docs, docID)
		require.Empty(t, env.stepIDs(models.LetterKind, docID))
		history, err := env.engine.History(models.LetterKind, docID)
		require.NoError(t, err)
		require.Empty(t, history)
		list, err := env.engine.PendingForUser(signers[1])
		require.NoError(t, err)
		require.Empty(t, list)
	})
	t.Run("other documents keep their steps", func(t *testing.T) {
		keptID := env.addLetter()
		_, err := env.engine.Submit(models.LetterKind, keptID, env.ownerID, signers)
		require.NoError(t, err)
		draftID := env.addLetter()

		require.NoError(t, env.engine.DeleteDocument(models.LetterKind, draftID, env.ownerID))
		require.Len(t, env.stepIDs(models.LetterKind, keptID), 2)
	})
	t.Run("foreign actor is denied", func(t *testing.T) {
		docID := env.addOutgoingLetter()
		err := env.engine.DeleteDocument(models.OutgoingLetterKind, docID, signers[0])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
		require.Contains(t, env.outgoing.docs, docID)
	})
	t.Run("letter on approval is not deleted", func(t *testing.T) {
		docID := env.addOutgoingLetter()
		_, err := env.engine.Submit(models.OutgoingLetterKind, docID, env.ownerID, signers)
		require.NoError(t, err)
		err = env.engine.DeleteDocument(models.OutgoingLetterKind, docID, env.ownerID)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
		require.Len(t, env.stepIDs(models.OutgoingLetterKind, docID), 2)
	})
	t.Run("unknown document", func(t *testing.T) {
		err := env.engine.DeleteDocument(models.LetterKind, "missing", env.ownerID)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
}
