package incomingletterhandler

import (
	"testing"

	dispositionfakes "office-admin-backend/lib/disposition/disposition-fakes"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	incomingletterapimodels "office-admin-backend/models/api/incoming-letter"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndArchive(t *testing.T) {
	store := dispositionfakes.NewLetters()
	handler := NewInstance(store)

	id, err := handler.Register("registrar", incomingletterapimodels.RegisterRequest{
		Sender:  "ООО Ромашка",
		Subject: "Запрос документов",
	})
	require.NoError(t, err)
	rec := store.Recs[id]
	require.Equal(t, models.DocStatusNew, rec.Status)
	require.Equal(t, models.PriorityNormal, rec.Priority)
	require.Contains(t, rec.Number, "ВХ-")
	require.False(t, rec.ReceivedAt.IsZero())

	view, err := handler.Get(id)
	require.NoError(t, err)
	require.Equal(t, "ООО Ромашка", view.Sender)

	t.Run("only completed letter is archived", func(t *testing.T) {
		err := handler.Archive(id, "registrar")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.InvalidTransition))

		rec.Status = models.DocStatusCompleted
		require.NoError(t, handler.Archive(id, "registrar"))
		require.Equal(t, models.DocStatusArchived, store.Recs[id].Status)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := handler.Get("missing")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
		err = handler.Archive("missing", "registrar")
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
}
