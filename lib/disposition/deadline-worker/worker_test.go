package dispositiondeadlineworker

import (
	"context"
	"testing"
	"time"

	dispositionfakes "office-admin-backend/lib/disposition/disposition-fakes"
	"office-admin-backend/models"
	notificationapimodels "office-admin-backend/models/api/notification"
	dbmodels "office-admin-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	events []models.NotificationData
}

func (f *fakeNotifier) Create(data models.NotificationData) error {
	f.events = append(f.events, data)
	return nil
}

func (f *fakeNotifier) Dispatch(events []models.NotificationData) {
	f.events = append(f.events, events...)
}

func (f *fakeNotifier) List(userID string, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error) {
	return nil, 0, nil
}

func (f *fakeNotifier) MarkRead(userID string, ids []string) error {
	return nil
}

func (f *fakeNotifier) MarkAllRead(userID string) error {
	return nil
}

func (f *fakeNotifier) UnreadCount(userID string) (int64, error) {
	return 0, nil
}

func TestOverdueNotifiedOnce(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	letters := dispositionfakes.NewLetters()
	dispositions := dispositionfakes.NewDispositions()
	letterID, _ := letters.Create(dbmodels.IncomingLetter{Subject: "Запрос документов", Status: models.DocStatusDisposed})

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	overdueID, _ := dispositions.Create(dbmodels.Disposition{IncomingLetterID: letterID, ToUserID: "u1", Status: models.DispositionRead, Deadline: &past})
	_, _ = dispositions.Create(dbmodels.Disposition{IncomingLetterID: letterID, ToUserID: "u2", Status: models.DispositionPending, Deadline: &future})
	_, _ = dispositions.Create(dbmodels.Disposition{IncomingLetterID: letterID, ToUserID: "u3", Status: models.DispositionCompleted, Deadline: &past})
	_, _ = dispositions.Create(dbmodels.Disposition{IncomingLetterID: letterID, ToUserID: "u4", Status: models.DispositionPending})

	notifier := &fakeNotifier{}
	worker := newInstance(dispositions, letters, notifier, time.Minute)
	worker.now = func() time.Time { return now }

	worker.handle(context.Background())
	require.Len(t, notifier.events, 1)
	require.Equal(t, "u1", notifier.events[0].UserID)
	require.Equal(t, models.NotifyDispositionOverdue, notifier.events[0].Code)
	require.Contains(t, notifier.events[0].Msg, "Запрос документов")
	require.NotNil(t, dispositions.Recs[overdueID].OverdueNotifiedAt)

	worker.handle(context.Background())
	require.Len(t, notifier.events, 1)
}
