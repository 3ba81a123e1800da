package earlyleavehandler

import (
	"testing"

	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	earlyleaveapimodels "office-admin-backend/models/api/early-leave"

	"github.com/stretchr/testify/require"
)

func submitRequest(delegationEmployeeID string, autoCheckout bool) earlyleaveapimodels.SubmitRequest {
	data := earlyleaveapimodels.SubmitRequest{
		Date:         "2024-03-14",
		LeaveTime:    "15:00",
		Reason:       "Запись к врачу",
		AutoCheckout: autoCheckout,
	}
	if delegationEmployeeID != "" {
		data.DelegationEmployeeID = &delegationEmployeeID
	}
	return data
}

func TestSubmitWithoutDelegation(t *testing.T) {
	env := newTestEnv()
	result, err := env.handler.Submit(env.staffUser, submitRequest("", false))
	require.NoError(t, err)
	require.Equal(t, models.ELStatusPendingSupervisor, result.Status)
	require.Len(t, result.Events, 1)
	require.Equal(t, env.managerUser, result.Events[0].UserID)
	require.Equal(t, models.NotifyEarlyLeaveAction, result.Events[0].Code)

	_, err = env.handler.ApproveDelegation(result.RequestID, env.delegateUser, "")
	require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))
	canApprove, err := env.handler.CanApproveAsDelegation(result.RequestID, env.delegateUser)
	require.NoError(t, err)
	require.False(t, canApprove)
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv()
	t.Run("self delegation", func(t *testing.T) {
		_, err := env.handler.Submit(env.staffUser, submitRequest(env.staffEmp, false))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("unknown delegate", func(t *testing.T) {
		_, err := env.handler.Submit(env.staffUser, submitRequest("1c7ad5b6-30e8-4b36-9d1e-3b8b1f6f0a11", false))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
	t.Run("past date", func(t *testing.T) {
		data := submitRequest("", false)
		data.Date = "2024-03-13"
		_, err := env.handler.Submit(env.staffUser, data)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("user without employee", func(t *testing.T) {
		_, err := env.handler.Submit("unknown", submitRequest("", false))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
}

func TestFullPathWithDelegation(t *testing.T) {
	env := newTestEnv()
	result, err := env.handler.Submit(env.staffUser, submitRequest(env.delegateEmp, false))
	require.NoError(t, err)
	id := result.RequestID
	require.Equal(t, models.ELStatusPendingDelegation, result.Status)
	require.Equal(t, env.delegateUser, result.Events[0].UserID)

	t.Run("delegation", func(t *testing.T) {
		_, err := env.handler.ApproveDelegation(id, env.managerUser, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
		_, err = env.handler.ApproveSupervisor(id, env.managerUser, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))

		result, err := env.handler.ApproveDelegation(id, env.delegateUser, "подменю")
		require.NoError(t, err)
		require.Equal(t, models.ELStatusPendingSupervisor, result.Status)
		require.Equal(t, env.managerUser, result.Events[0].UserID)
		require.NotNil(t, env.requests.recs[id].DelegationApprovedAt)

		_, err = env.handler.ApproveDelegation(id, env.delegateUser, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))
	})
	t.Run("supervisor", func(t *testing.T) {
		_, err := env.handler.ApproveSupervisor(id, env.directorUser, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))

		canApprove, err := env.handler.CanApproveAsSupervisor(id, env.managerUser)
		require.NoError(t, err)
		require.True(t, canApprove)

		result, err := env.handler.ApproveSupervisor(id, env.managerUser, "")
		require.NoError(t, err)
		require.Equal(t, models.ELStatusPendingHR, result.Status)
		require.Len(t, result.Events, 1)
		require.Equal(t, env.hrUser, result.Events[0].UserID)
		require.Equal(t, env.managerUser, *env.requests.recs[id].SupervisorID)
	})
	t.Run("director cannot sign before approval", func(t *testing.T) {
		_, err := env.handler.SignDirector(id, env.directorUser, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))
	})
	t.Run("hr", func(t *testing.T) {
		_, err := env.handler.ApproveHR(id, env.managerUser, models.ManagerRole, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))

		canApprove, err := env.handler.CanApproveAsHR(id, models.HRRole)
		require.NoError(t, err)
		require.True(t, canApprove)

		result, err := env.handler.ApproveHR(id, env.hrUser, models.HRRole, "")
		require.NoError(t, err)
		require.Equal(t, models.ELStatusApproved, result.Status)
		require.False(t, result.AutoCheckoutApplied)
		require.Len(t, result.Events, 2)
		require.Equal(t, env.staffUser, result.Events[0].UserID)
		require.Equal(t, models.NotifyEarlyLeaveApproved, result.Events[0].Code)
		require.Equal(t, env.directorUser, result.Events[1].UserID)

		_, err = env.handler.ApproveHR(id, env.hrUser, models.HRRole, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))
	})
	t.Run("director sign", func(t *testing.T) {
		_, err := env.handler.SignDirector(id, env.managerUser, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))

		canSign, err := env.handler.CanSignAsDirector(id, env.directorUser)
		require.NoError(t, err)
		require.True(t, canSign)

		result, err := env.handler.SignDirector(id, env.directorUser, "ознакомлен")
		require.NoError(t, err)
		require.Equal(t, models.ELStatusApproved, result.Status)
		require.Equal(t, models.ELStatusApproved, env.requests.recs[id].Status)
		require.NotNil(t, env.requests.recs[id].DirectorSignedAt)
		require.Equal(t, models.NotifyEarlyLeaveSigned, result.Events[0].Code)

		_, err = env.handler.SignDirector(id, env.directorUser, "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
		canSign, err = env.handler.CanSignAsDirector(id, env.directorUser)
		require.NoError(t, err)
		require.False(t, canSign)
	})
	t.Run("approved request cannot be rejected", func(t *testing.T) {
		_, err := env.handler.Reject(id, env.hrUser, models.HRRole, "поздно")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))
	})
}

func TestAutoCheckout(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		env := newTestEnv()
		attendanceID := env.clockIn(env.staffEmp)
		result, err := env.handler.Submit(env.staffUser, submitRequest("", true))
		require.NoError(t, err)
		require.Equal(t, attendanceID, *env.requests.recs[result.RequestID].AttendanceID)

		_, err = env.handler.ApproveSupervisor(result.RequestID, env.managerUser, "")
		require.NoError(t, err)
		require.Nil(t, env.attendance.Recs[attendanceID].ClockOut)

		result, err = env.handler.ApproveHR(result.RequestID, env.hrUser, models.HRRole, "")
		require.NoError(t, err)
		require.True(t, result.AutoCheckoutApplied)
		rec := env.attendance.Recs[attendanceID]
		require.NotNil(t, rec.ClockOut)
		require.Equal(t, env.now, *rec.ClockOut)
		require.GreaterOrEqual(t, rec.EarlyLeaveMinutes, 0)
		require.Equal(t, 420, rec.EarlyLeaveMinutes)
		require.Equal(t, 120, rec.WorkDurationMinutes)
		require.Equal(t, models.AttendanceEarlyLeave, rec.Status)
	})
	t.Run("attendance found at hr approval", func(t *testing.T) {
		env := newTestEnv()
		result, err := env.handler.Submit(env.staffUser, submitRequest("", true))
		require.NoError(t, err)
		require.Nil(t, env.requests.recs[result.RequestID].AttendanceID)
		attendanceID := env.clockIn(env.staffEmp)

		_, err = env.handler.ApproveSupervisor(result.RequestID, env.managerUser, "")
		require.NoError(t, err)
		_, err = env.handler.ApproveHR(result.RequestID, env.hrUser, models.HRRole, "")
		require.NoError(t, err)
		require.Equal(t, attendanceID, *env.requests.recs[result.RequestID].AttendanceID)
		require.NotNil(t, env.attendance.Recs[attendanceID].ClockOut)
	})
	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv()
		attendanceID := env.clockIn(env.staffEmp)
		result, err := env.handler.Submit(env.staffUser, submitRequest("", false))
		require.NoError(t, err)
		_, err = env.handler.ApproveSupervisor(result.RequestID, env.managerUser, "")
		require.NoError(t, err)
		result, err = env.handler.ApproveHR(result.RequestID, env.hrUser, models.HRRole, "")
		require.NoError(t, err)
		require.False(t, result.AutoCheckoutApplied)
		rec := env.attendance.Recs[attendanceID]
		require.Nil(t, rec.ClockOut)
		require.Equal(t, models.AttendancePresent, rec.Status)
	})
}

func TestSupervisorEscalation(t *testing.T) {
	env := newTestEnv()
	result, err := env.handler.Submit(env.managerUser, submitRequest("", false))
	require.NoError(t, err)
	require.Equal(t, env.directorUser, result.Events[0].UserID)

	_, err = env.handler.ApproveSupervisor(result.RequestID, env.managerUser, "")
	require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	result, err = env.handler.ApproveSupervisor(result.RequestID, env.directorUser, "")
	require.NoError(t, err)
	require.Equal(t, models.ELStatusPendingHR, result.Status)
}

func TestReject(t *testing.T) {
	env := newTestEnv()
	result, err := env.handler.Submit(env.staffUser, submitRequest("", false))
	require.NoError(t, err)
	id := result.RequestID

	_, err = env.handler.Reject(id, env.managerUser, models.ManagerRole, "")
	require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	_, err = env.handler.Reject(id, env.delegateUser, models.StaffRole, "нет")
	require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))

	result, err = env.handler.Reject(id, env.managerUser, models.ManagerRole, "квартальный отчет")
	require.NoError(t, err)
	require.Equal(t, models.ELStatusRejected, result.Status)
	require.Equal(t, env.staffUser, result.Events[0].UserID)
	require.Equal(t, models.NotifyEarlyLeaveRejected, result.Events[0].Code)
	require.Equal(t, "квартальный отчет", env.requests.recs[id].RejectionReason)

	_, err = env.handler.ApproveSupervisor(id, env.managerUser, "")
	require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))
	_, err = env.handler.Reject(id, env.managerUser, models.ManagerRole, "повторно")
	require.True(t, workflowerrors.IsKind(err, workflowerrors.StageMismatch))
}

func TestListAndActions(t *testing.T) {
	env := newTestEnv()
	first, err := env.handler.Submit(env.staffUser, submitRequest("", false))
	require.NoError(t, err)
	_, err = env.handler.Submit(env.delegateUser, submitRequest(env.staffEmp, false))
	require.NoError(t, err)

	t.Run("mine", func(t *testing.T) {
		list, rowCount, err := env.handler.List(env.staffUser, models.StaffRole, earlyleaveapimodels.EarlyLeaveFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 1, rowCount)
		require.Equal(t, first.RequestID, list[0].ID)
	})
	t.Run("to approve", func(t *testing.T) {
		list, rowCount, err := env.handler.List(env.managerUser, models.ManagerRole, earlyleaveapimodels.EarlyLeaveFilter{Scope: earlyleaveapimodels.ScopeToApprove})
		require.NoError(t, err)
		require.EqualValues(t, 1, rowCount)
		require.Equal(t, first.RequestID, list[0].ID)

		list, _, err = env.handler.List(env.staffUser, models.StaffRole, earlyleaveapimodels.EarlyLeaveFilter{Scope: earlyleaveapimodels.ScopeToApprove})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, models.ELStatusPendingDelegation, list[0].Status)
	})
	t.Run("actions", func(t *testing.T) {
		actions, err := env.handler.Actions(first.RequestID, env.managerUser, models.ManagerRole)
		require.NoError(t, err)
		require.True(t, actions.CanApproveSupervisor)
		require.True(t, actions.CanReject)
		require.False(t, actions.CanApproveHR)
		require.False(t, actions.CanSignDirector)

		_, err = env.handler.Actions("missing", env.managerUser, models.ManagerRole)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
}
