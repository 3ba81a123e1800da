package dispositionhandler

import (
	"testing"

	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/stretchr/testify/require"
)

func node(id, parentID, from, to string, status models.DispositionStatus) dbmodels.Disposition {
	rec := dbmodels.Disposition{
		BaseModel:  dbmodels.BaseModel{ID: id},
		FromUserID: from,
		ToUserID:   to,
		Status:     status,
	}
	if parentID != "" {
		rec.ParentDispositionID = &parentID
	}
	return rec
}

func TestLetterStatus(t *testing.T) {
	t.Run("empty tree is new", func(t *testing.T) {
		require.Equal(t, models.DocStatusNew, LetterStatus(nil))
		require.Equal(t, models.DocStatusNew, LetterStatus([]dbmodels.Disposition{}))
	})
	t.Run("nothing started", func(t *testing.T) {
		list := []dbmodels.Disposition{
			node("a", "", "reg", "u1", models.DispositionPending),
			node("b", "", "reg", "u2", models.DispositionPending),
		}
		require.Equal(t, models.DocStatusDisposed, LetterStatus(list))
	})
	t.Run("deep pending leaf keeps letter open", func(t *testing.T) {
		list := []dbmodels.Disposition{
			node("a", "", "reg", "u1", models.DispositionCompleted),
			node("b", "a", "u1", "u2", models.DispositionCompleted),
			node("c", "b", "u2", "u3", models.DispositionCompleted),
			node("d", "c", "u3", "u4", models.DispositionPending),
		}
		require.Equal(t, models.DocStatusInProgress, LetterStatus(list))
		list[3].Status = models.DispositionCompleted
		require.Equal(t, models.DocStatusCompleted, LetterStatus(list))
	})
	t.Run("read counts as started", func(t *testing.T) {
		list := []dbmodels.Disposition{
			node("a", "", "reg", "u1", models.DispositionRead),
			node("b", "", "reg", "u2", models.DispositionPending),
		}
		require.Equal(t, models.DocStatusInProgress, LetterStatus(list))
	})
}

func TestArenaWalks(t *testing.T) {
	arena := NewArena([]dbmodels.Disposition{
		node("root", "", "reg", "u1", models.DispositionPending),
		node("child1", "root", "u1", "u2", models.DispositionPending),
		node("child2", "root", "u1", "u3", models.DispositionPending),
		node("grandchild", "child1", "u2", "u4", models.DispositionPending),
		node("orphan", "missing", "u5", "u6", models.DispositionPending),
	})

	ancestors := arena.Ancestors("grandchild")
	require.Len(t, ancestors, 2)
	require.Equal(t, "child1", ancestors[0].ID)
	require.Equal(t, "root", ancestors[1].ID)
	require.Equal(t, 3, arena.Depth("grandchild"))
	require.Equal(t, 1, arena.Depth("orphan"))
	require.Equal(t, 0, arena.Depth("unknown"))

	require.Len(t, arena.Descendants("root"), 3)
	require.Empty(t, arena.Descendants("child2"))

	tree := arena.Tree()
	require.Len(t, tree, 2)
	require.Equal(t, "root", tree[0].ID)
	require.Len(t, tree[0].Children, 2)
	require.Len(t, tree[0].Children[0].Children, 1)

	require.True(t, arena.Involves("u4"))
	require.False(t, arena.Involves("u7"))
}

func TestArenaCycle(t *testing.T) {
	arena := NewArena([]dbmodels.Disposition{
		node("a", "b", "u1", "u2", models.DispositionPending),
		node("b", "a", "u2", "u1", models.DispositionPending),
	})
	require.Len(t, arena.Ancestors("a"), 1)
	require.Len(t, arena.Descendants("a"), 1)
	require.Empty(t, arena.Tree())
}
