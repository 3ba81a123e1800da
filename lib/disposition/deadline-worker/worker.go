package dispositiondeadlineworker

import (
	"context"
	"office-admin-backend/config"
	"office-admin-backend/db"
	dispositionhandler "office-admin-backend/lib/disposition"
	dispositionstore "office-admin-backend/lib/disposition/store"
	incomingletterstore "office-admin-backend/lib/incoming-letter/store"
	notificationhandler "office-admin-backend/lib/notification"
	baseworker "office-admin-backend/lib/utils/base-worker"
	"office-admin-backend/lib/utils/helpers"
	initchecker "office-admin-backend/lib/utils/init-checker"
	"office-admin-backend/models"
	"time"
)

const batchSize = 200

// StartWorker уведомляет исполнителей о просроченных диспозициях, по одному разу на диспозицию
func StartWorker(ctx context.Context) {
	initchecker.CheckInit(
		"notificationhandler.Instance", notificationhandler.Instance,
	)
	period := time.Duration(config.Conf.Workflow.DeadlineCheckPeriodMin) * time.Minute
	if period <= 0 {
		period = 15 * time.Minute
	}
	i := newInstance(
		dispositionstore.NewInstance(db.DB),
		incomingletterstore.NewInstance(db.DB),
		notificationhandler.Instance,
		period,
	)
	go i.Run(ctx, i.handle)
}

func newInstance(store dispositionstore.Provider, letters incomingletterstore.Provider, notifier notificationhandler.Provider, period time.Duration) *impl {
	return &impl{
		BaseImpl: *baseworker.NewInstance("DispositionDeadlineWorker", 30*time.Second, period),
		store:    store,
		letters:  letters,
		notifier: notifier,
		now:      time.Now,
	}
}

type impl struct {
	baseworker.BaseImpl
	store    dispositionstore.Provider
	letters  incomingletterstore.Provider
	notifier notificationhandler.Provider
	now      func() time.Time
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	now := i.now()
	list, err := i.store.ListOverdue(now, batchSize)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка просроченных диспозиций")
		return
	}
	subjects := map[string]string{}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		ok, err := i.store.SetOverdueNotified(rec.ID, now)
		if err != nil {
			logger.
				WithError(err).
				WithField("disposition_id", rec.ID).
				Error("ошибка отметки уведомления о просрочке диспозиции")
			continue
		}
		if !ok {
			continue
		}
		subject, found := subjects[rec.IncomingLetterID]
		if !found {
			letter, err := i.letters.GetByID(rec.IncomingLetterID)
			if err != nil {
				logger.
					WithError(err).
					WithField("incoming_letter_id", rec.IncomingLetterID).
					Warn("ошибка получения входящего письма для уведомления о просрочке")
			}
			if letter != nil {
				subject = letter.Subject
			}
			subjects[rec.IncomingLetterID] = subject
		}
		i.notifier.Dispatch([]models.NotificationData{
			models.GetNotifyDispositionOverdue(rec.ToUserID, subject, rec.Deadline.Format("02.01.2006 15:04"),
				dispositionhandler.ActionURL(rec.IncomingLetterID), dispositionhandler.EventData(rec.IncomingLetterID, rec.ID)),
		})
	}
}
