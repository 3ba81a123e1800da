package notificationhandler

import (
	"sync"
	"testing"

	"office-admin-backend/models"
	notificationapimodels "office-admin-backend/models/api/notification"
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	created []dbmodels.Notification
	failFor string
}

func (f *fakeStore) Create(rec dbmodels.Notification) (string, error) {
	if rec.UserID == f.failFor {
		return "", errors.New("connection refused")
	}
	f.created = append(f.created, rec)
	return rec.UserID, nil
}

func (f *fakeStore) List(userID string, onlyUnread bool, page, limit int) ([]dbmodels.Notification, int64, error) {
	return f.created, int64(len(f.created)), nil
}

func (f *fakeStore) MarkRead(userID string, ids []string) error { return nil }

func (f *fakeStore) MarkAllRead(userID string) error { return nil }

func (f *fakeStore) UnreadCount(userID string) (int64, error) { return 0, nil }

func TestDispatch(t *testing.T) {
	t.Run("store failure does not stop dispatch", func(t *testing.T) {
		store := &fakeStore{failFor: "user-2"}
		handler := NewInstance(store)
		handler.Dispatch([]models.NotificationData{
			models.GetNotifyApprovalRequired("user-1", "Письмо", "/letters/1", nil),
			models.GetNotifyApprovalRequired("user-2", "Письмо", "/letters/1", nil),
			models.GetNotifyEarlyLeaveApproved("", "01.03.2024", "", nil),
			models.GetNotifyStepRejected("user-3", "Письмо", "Иванов", "опечатка", "/letters/1", map[string]string{"step_id": "s1"}),
		})
		require.Len(t, store.created, 2)
		require.Equal(t, "user-1", store.created[0].UserID)
		require.Equal(t, "Документ «Письмо» ожидает вашего согласования.", store.created[0].Msg)
		require.Equal(t, "user-3", store.created[1].UserID)
		require.Equal(t, "s1", store.created[1].Data["step_id"])
	})
	t.Run("list converts records", func(t *testing.T) {
		store := &fakeStore{}
		handler := NewInstance(store)
		handler.Dispatch([]models.NotificationData{
			models.GetNotifyDispositionNew("user-1", "Запрос", "Подготовить ответ", "/incoming_letters/1", nil),
		})
		list, count, err := handler.List("user-1", notificationFilter())
		require.NoError(t, err)
		require.EqualValues(t, 1, count)
		require.Equal(t, models.NotifyDispositionNew, list[0].Code)
		require.Equal(t, "Новая диспозиция", list[0].Name)
		require.False(t, list[0].IsRead)
	})
}

type fakeChannel struct {
	delivered []dbmodels.Notification
}

func (f *fakeChannel) Deliver(rec dbmodels.Notification) {
	f.delivered = append(f.delivered, rec)
}

func TestDispatchChannels(t *testing.T) {
	store := &fakeStore{failFor: "user-2"}
	channel := &fakeChannel{}
	handler := NewInstance(store, channel)
	handler.Dispatch([]models.NotificationData{
		models.GetNotifyApprovalRequired("user-1", "Письмо", "/letters/1", nil),
		models.GetNotifyApprovalRequired("user-2", "Письмо", "/letters/1", nil),
	})
	require.Len(t, channel.delivered, 1)
	require.Equal(t, "user-1", channel.delivered[0].ID)
	require.Equal(t, "/letters/1", channel.delivered[0].ActionURL)
	require.False(t, channel.delivered[0].CreatedAt.IsZero())
}

type fakeUsers struct {
	users map[string]*dbmodels.User
}

func (f fakeUsers) GetByID(userID string) (*dbmodels.User, error) {
	return f.users[userID], nil
}

type fakeSender struct {
	sync.Mutex
	to       []string
	messages []string
}

func (f *fakeSender) SendEMail(to, subject, message string) error {
	f.Lock()
	defer f.Unlock()
	f.to = append(f.to, to)
	f.messages = append(f.messages, message)
	return nil
}

func TestEmailChannel(t *testing.T) {
	users := fakeUsers{users: map[string]*dbmodels.User{
		"active":   {Email: "active@office.local", IsActive: true},
		"blocked":  {Email: "blocked@office.local"},
		"no-email": {IsActive: true},
	}}
	sender := &fakeSender{}
	channel := NewEmailChannel(users, sender, "https://office.local/").(emailChannel)
	channel.goFunc = func(fn func()) { fn() }

	for _, userID := range []string{"active", "blocked", "no-email", "unknown"} {
		channel.Deliver(dbmodels.Notification{UserID: userID, Title: "Новая диспозиция", Msg: "Вам поручено письмо.", ActionURL: "/incoming_letters/1"})
	}
	require.Equal(t, []string{"active@office.local"}, sender.to)
	require.Equal(t, "Вам поручено письмо.\r\n\r\nhttps://office.local/incoming_letters/1", sender.messages[0])
}

func notificationFilter() notificationapimodels.NotificationFilter {
	return notificationapimodels.NotificationFilter{}
}
