package dispositionhandler

import (
	"testing"
	"time"

	dispositionfakes "office-admin-backend/lib/disposition/disposition-fakes"
	orgfakes "office-admin-backend/lib/org/org-fakes"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	dispositionapimodels "office-admin-backend/models/api/disposition"
	dbmodels "office-admin-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakePermissions struct{}

func (fakePermissions) HasPermission(role models.UserRole, module models.Module, permission models.Permission) bool {
	switch role {
	case models.DirectorRole:
		return module == models.DispositionsModule && permission == models.ManagePermission
	case models.ManagerRole:
		return module == models.IncomingLettersModule && permission == models.ViewPermission
	}
	return false
}

func (fakePermissions) RolesWithPermission(module models.Module, permission models.Permission) []models.UserRole {
	return nil
}

type testEnv struct {
	handler      Provider
	org          *orgfakes.Org
	letters      *dispositionfakes.Letters
	dispositions *dispositionfakes.Dispositions
	unitID       string
	registrar    string
	director     string
	users        []string
	now          time.Time
}

func newTestEnv(maxDepth int) *testEnv {
	env := &testEnv{
		org:          orgfakes.NewOrg(),
		letters:      dispositionfakes.NewLetters(),
		dispositions: dispositionfakes.NewDispositions(),
		now:          time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	env.unitID = env.org.AddUnit("Канцелярия", "")
	_, env.registrar = env.org.AddEmployee("Регистратор", env.unitID, models.RegistrarRole)
	_, env.director = env.org.AddEmployee("Директор", env.unitID, models.DirectorRole)
	for _, name := range []string{"Первый", "Второй", "Третий", "Четвертый"} {
		_, userID := env.org.AddEmployee(name, env.unitID, models.StaffRole)
		env.users = append(env.users, userID)
	}
	stores := Stores{Letters: env.letters, Dispositions: env.dispositions}
	env.handler = NewInstance(Deps{
		Stores:      stores,
		Users:       env.org.Users,
		Employees:   env.org.Employees,
		Permissions: fakePermissions{},
		MaxDepth:    maxDepth,
		Now:         func() time.Time { return env.now },
	}, func(fn func(s Stores) error) error {
		return fn(stores)
	})
	return env
}

func (env *testEnv) addLetter() string {
	id, _ := env.letters.Create(dbmodels.IncomingLetter{
		Number:      "ВХ-1",
		Subject:     "Запрос документов",
		RegistrarID: env.registrar,
		OrgUnitID:   &env.unitID,
		Status:      models.DocStatusNew,
	})
	return id
}

func forward(parentID, toUserID string) dispositionapimodels.ForwardRequest {
	data := dispositionapimodels.ForwardRequest{
		ToUserID:    toUserID,
		Instruction: "Подготовить ответ",
	}
	if parentID != "" {
		data.ParentDispositionID = &parentID
	}
	return data
}

func TestDispositionChain(t *testing.T) {
	env := newTestEnv(0)
	letterID := env.addLetter()
	u := env.users

	root, err := env.handler.Forward(letterID, env.registrar, models.RegistrarRole, forward("", u[0]))
	require.NoError(t, err)
	require.Equal(t, models.DocStatusDisposed, root.LetterStatus)
	require.Len(t, root.Events, 1)
	require.Equal(t, u[0], root.Events[0].UserID)
	require.Equal(t, models.NotifyDispositionNew, root.Events[0].Code)

	t.Run("fan out", func(t *testing.T) {
		child1, err := env.handler.Forward(letterID, u[0], models.StaffRole, forward(root.DispositionID, u[1]))
		require.NoError(t, err)
		require.Equal(t, models.DocStatusInProgress, child1.LetterStatus)
		require.Equal(t, models.DispositionInProgress, env.dispositions.Recs[root.DispositionID].Status)

		child2, err := env.handler.Forward(letterID, u[0], models.StaffRole, forward(root.DispositionID, u[2]))
		require.NoError(t, err)

		grandchild, err := env.handler.Forward(letterID, u[1], models.StaffRole, forward(child1.DispositionID, u[3]))
		require.NoError(t, err)

		t.Run("completion order does not matter", func(t *testing.T) {
			result, err := env.handler.Complete(child2.DispositionID, u[2], "готово")
			require.NoError(t, err)
			require.Equal(t, models.DocStatusInProgress, result.LetterStatus)
			require.Equal(t, u[0], result.Events[0].UserID)
			require.Equal(t, models.NotifyDispositionCompleted, result.Events[0].Code)

			_, err = env.handler.Complete(root.DispositionID, u[0], "")
			require.NoError(t, err)
			_, err = env.handler.Complete(child1.DispositionID, u[1], "")
			require.NoError(t, err)
			status, err := env.handler.RecomputeLetterStatus(letterID)
			require.NoError(t, err)
			require.Equal(t, models.DocStatusInProgress, status)

			result, err = env.handler.Complete(grandchild.DispositionID, u[3], "")
			require.NoError(t, err)
			require.Equal(t, models.DocStatusCompleted, result.LetterStatus)
			require.Equal(t, models.DocStatusCompleted, env.letters.Recs[letterID].Status)
		})
		t.Run("tree", func(t *testing.T) {
			tree, err := env.handler.Tree(letterID, env.registrar, models.RegistrarRole)
			require.NoError(t, err)
			require.Len(t, tree, 1)
			require.Len(t, tree[0].Children, 2)
		})
	})
}

func TestDispositionTransitions(t *testing.T) {
	env := newTestEnv(0)
	letterID := env.addLetter()
	u := env.users
	root, err := env.handler.Forward(letterID, env.registrar, models.RegistrarRole, forward("", u[0]))
	require.NoError(t, err)
	id := root.DispositionID

	t.Run("only receiver", func(t *testing.T) {
		_, err := env.handler.MarkRead(id, u[1])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("monotonic", func(t *testing.T) {
		result, err := env.handler.MarkRead(id, u[0])
		require.NoError(t, err)
		require.Equal(t, models.DocStatusInProgress, result.LetterStatus)
		require.NotNil(t, env.dispositions.Recs[id].ReadAt)

		_, err = env.handler.MarkRead(id, u[0])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))

		_, err = env.handler.MarkInProgress(id, u[0])
		require.NoError(t, err)
		_, err = env.handler.MarkRead(id, u[0])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))

		_, err = env.handler.Complete(id, u[0], "исполнено")
		require.NoError(t, err)
		require.NotNil(t, env.dispositions.Recs[id].CompletedAt)
		require.Equal(t, "исполнено", env.dispositions.Recs[id].Response)

		_, err = env.handler.Complete(id, u[0], "")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
		_, err = env.handler.MarkInProgress(id, u[0])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
	t.Run("completed disposition cannot be forwarded", func(t *testing.T) {
		_, err := env.handler.Forward(letterID, u[0], models.StaffRole, forward(id, u[1]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
	t.Run("missing", func(t *testing.T) {
		_, err := env.handler.MarkRead("missing", u[0])
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
}

func TestForwardGuards(t *testing.T) {
	env := newTestEnv(3)
	letterID := env.addLetter()
	u := env.users
	root, err := env.handler.Forward(letterID, env.registrar, models.RegistrarRole, forward("", u[0]))
	require.NoError(t, err)

	t.Run("root requires registrar or manage permission", func(t *testing.T) {
		_, err := env.handler.Forward(letterID, u[1], models.StaffRole, forward("", u[2]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
		_, err = env.handler.Forward(letterID, env.director, models.DirectorRole, forward("", u[2]))
		require.NoError(t, err)
	})
	t.Run("self", func(t *testing.T) {
		_, err := env.handler.Forward(letterID, u[0], models.StaffRole, forward(root.DispositionID, u[0]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("only receiver forwards", func(t *testing.T) {
		_, err := env.handler.Forward(letterID, u[1], models.StaffRole, forward(root.DispositionID, u[2]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("cycle and depth", func(t *testing.T) {
		child, err := env.handler.Forward(letterID, u[0], models.StaffRole, forward(root.DispositionID, u[1]))
		require.NoError(t, err)
		_, err = env.handler.Forward(letterID, u[1], models.StaffRole, forward(child.DispositionID, u[0]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))

		grandchild, err := env.handler.Forward(letterID, u[1], models.StaffRole, forward(child.DispositionID, u[2]))
		require.NoError(t, err)
		_, err = env.handler.Forward(letterID, u[2], models.StaffRole, forward(grandchild.DispositionID, u[3]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("inactive receiver", func(t *testing.T) {
		env.org.Users.Recs[u[3]].IsActive = false
		_, err := env.handler.Forward(letterID, env.registrar, models.RegistrarRole, forward("", u[3]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
	t.Run("expired deadline", func(t *testing.T) {
		data := forward("", u[2])
		deadline := env.now.Add(-time.Hour)
		data.Deadline = &deadline
		_, err := env.handler.Forward(letterID, env.registrar, models.RegistrarRole, data)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("archived letter", func(t *testing.T) {
		env.letters.Recs[letterID].Status = models.DocStatusArchived
		_, err := env.handler.Forward(letterID, env.registrar, models.RegistrarRole, forward("", u[2]))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))
	})
}

func TestCanAccess(t *testing.T) {
	env := newTestEnv(0)
	letterID := env.addLetter()
	u := env.users
	root, err := env.handler.Forward(letterID, env.registrar, models.RegistrarRole, forward("", u[0]))
	require.NoError(t, err)
	child, err := env.handler.Forward(letterID, u[0], models.StaffRole, forward(root.DispositionID, u[1]))
	require.NoError(t, err)
	grandchild, err := env.handler.Forward(letterID, u[1], models.StaffRole, forward(child.DispositionID, u[2]))
	require.NoError(t, err)

	check := func(id, userID string, role models.UserRole) bool {
		ok, err := env.handler.CanAccess(id, userID, role)
		require.NoError(t, err)
		return ok
	}
	require.True(t, check(child.DispositionID, u[1], models.StaffRole), "receiver")
	require.True(t, check(child.DispositionID, u[0], models.StaffRole), "sender")
	require.True(t, check(grandchild.DispositionID, u[0], models.StaffRole), "ancestor")
	require.True(t, check(root.DispositionID, u[2], models.StaffRole), "descendant")
	require.True(t, check(grandchild.DispositionID, env.registrar, models.RegistrarRole), "registrar")
	require.True(t, check(grandchild.DispositionID, u[3], models.AdminRole), "admin")
	require.False(t, check(grandchild.DispositionID, u[3], models.StaffRole), "outsider")

	_, managerUser := env.org.AddEmployee("Руководитель", env.unitID, models.ManagerRole)
	require.True(t, check(grandchild.DispositionID, managerUser, models.ManagerRole), "same unit with view permission")
	otherUnit := env.org.AddUnit("Склад", "")
	_, otherManager := env.org.AddEmployee("Кладовщик", otherUnit, models.ManagerRole)
	require.False(t, check(grandchild.DispositionID, otherManager, models.ManagerRole), "other unit")

	t.Run("letter", func(t *testing.T) {
		ok, err := env.handler.CanAccessLetter(letterID, u[2], models.StaffRole)
		require.NoError(t, err)
		require.True(t, ok)
		_, err = env.handler.Tree(letterID, u[3], models.StaffRole)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))
	})
	t.Run("inbox", func(t *testing.T) {
		list, rowCount, err := env.handler.Inbox(u[1], dispositionapimodels.InboxFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 1, rowCount)
		require.Equal(t, child.DispositionID, list[0].ID)
	})
}
