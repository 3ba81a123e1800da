package connectionhub

import (
	"sync"
	"testing"
	"time"

	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"
	wsmodels "office-admin-backend/models/ws"

	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	sync.Mutex
	messages []wsmodels.ServerMessage
	closed   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.Lock()
	defer f.Unlock()
	f.messages = append(f.messages, v.(wsmodels.ServerMessage))
	return nil
}

func (f *fakeConn) WriteControl(messageType int, data []byte, deadline time.Time) error {
	f.Lock()
	defer f.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []wsmodels.ServerMessage {
	f.Lock()
	defer f.Unlock()
	return append([]wsmodels.ServerMessage{}, f.messages...)
}

func (f *fakeConn) isClosed() bool {
	f.Lock()
	defer f.Unlock()
	return f.closed
}

type fakeStore struct {
	unread int64
}

func (f *fakeStore) Create(rec dbmodels.Notification) (string, error) { return "", nil }

func (f *fakeStore) List(userID string, onlyUnread bool, page, limit int) ([]dbmodels.Notification, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) MarkRead(userID string, ids []string) error { return nil }

func (f *fakeStore) MarkAllRead(userID string) error { return nil }

func (f *fakeStore) UnreadCount(userID string) (int64, error) { return f.unread, nil }

func TestHub(t *testing.T) {
	store := &fakeStore{unread: 2}
	hub := NewInstance(store)
	first := &fakeConn{}
	second := &fakeConn{}

	firstID := hub.AddClient("user-1", first)
	secondID := hub.AddClient("user-1", second)
	require.NotEqual(t, firstID, secondID)
	require.True(t, hub.IsConnected("user-1"))
	require.False(t, hub.IsConnected("user-2"))

	t.Run("unread count on connect", func(t *testing.T) {
		require.Eventually(t, func() bool { return len(first.received()) == 1 }, time.Second, 5*time.Millisecond)
		msg := first.received()[0]
		require.Equal(t, wsmodels.UnreadCountCode, msg.Code)
		require.EqualValues(t, 2, *msg.UnreadCount)
	})
	t.Run("deliver to all sessions", func(t *testing.T) {
		store.unread = 3
		hub.Deliver(dbmodels.Notification{
			BaseModel: dbmodels.BaseModel{ID: "n1"},
			UserID:    "user-1",
			Code:      models.NotifyApprovalRequired,
			Title:     "Требуется согласование",
			Msg:       "Документ ожидает вашего согласования.",
			ActionURL: "/letters/1",
		})
		require.Eventually(t, func() bool { return len(second.received()) == 3 }, time.Second, 5*time.Millisecond)
		msg := second.received()[1]
		require.Equal(t, "n1", msg.ID)
		require.Equal(t, string(models.NotifyApprovalRequired), msg.Code)
		require.Equal(t, "/letters/1", msg.ActionURL)
		require.EqualValues(t, 3, *second.received()[2].UnreadCount)
	})
	t.Run("not connected user is skipped", func(t *testing.T) {
		require.Zero(t, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user-2", Code: "test"}))
	})
	t.Run("delete client", func(t *testing.T) {
		hub.DeleteClient("user-1", firstID)
		require.Eventually(t, first.isClosed, time.Second, 5*time.Millisecond)
		require.True(t, hub.IsConnected("user-1"))
		require.Equal(t, 1, hub.SendMessage(wsmodels.ServerMessage{ToUserID: "user-1", Code: "test"}))

		hub.DeleteClient("user-1", secondID)
		require.False(t, hub.IsConnected("user-1"))
		hub.DeleteClient("user-1", secondID)
	})
}
