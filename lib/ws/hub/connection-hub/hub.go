package connectionhub

import (
	"office-admin-backend/db"
	notificationstore "office-admin-backend/lib/notification/store"
	dbmodels "office-admin-backend/models/db"
	wsmodels "office-admin-backend/models/ws"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Provider открытые websocket сессии пользователей, у пользователя может быть несколько вкладок
type Provider interface {
	AddClient(userID string, conn Conn) (sessionID string)
	DeleteClient(userID, sessionID string)
	SendMessage(msg wsmodels.ServerMessage) (delivered int)
	IsConnected(userID string) bool
	// Deliver отправляет сохраненное уведомление во все сессии получателя
	Deliver(rec dbmodels.Notification)
	// RefreshUnreadCount количество непрочитанных во все сессии пользователя
	RefreshUnreadCount(userID string)
}

var Instance Provider

func Init() {
	Instance = NewInstance(notificationstore.NewInstance(db.DB))
}

func NewInstance(store notificationstore.Provider) Provider {
	return &impl{
		clients: map[string]map[string]*clientSession{},
		store:   store,
	}
}

type impl struct {
	sync.RWMutex
	clients map[string]map[string]*clientSession //map[userID]map[sessionID]
	store   notificationstore.Provider
}

func (i *impl) AddClient(userID string, conn Conn) string {
	sessionID := uuid.NewString()
	i.Lock()
	sessions, ok := i.clients[userID]
	if !ok {
		sessions = map[string]*clientSession{}
		i.clients[userID] = sessions
	}
	sessions[sessionID] = newSession(userID, conn)
	i.Unlock()
	i.RefreshUnreadCount(userID)
	return sessionID
}

func (i *impl) DeleteClient(userID, sessionID string) {
	i.Lock()
	defer i.Unlock()
	sessions, ok := i.clients[userID]
	if !ok {
		return
	}
	sess, ok := sessions[sessionID]
	if !ok {
		return
	}
	sess.stop()
	delete(sessions, sessionID)
	if len(sessions) == 0 {
		delete(i.clients, userID)
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) (delivered int) {
	i.RLock()
	defer i.RUnlock()
	for _, sess := range i.clients[msg.ToUserID] {
		if sess.enqueue(msg) {
			delivered++
		}
	}
	return delivered
}

func (i *impl) IsConnected(userID string) bool {
	i.RLock()
	defer i.RUnlock()
	return len(i.clients[userID]) != 0
}

func (i *impl) Deliver(rec dbmodels.Notification) {
	if !i.IsConnected(rec.UserID) {
		return
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	i.SendMessage(wsmodels.ServerMessage{
		ToUserID:  rec.UserID,
		ID:        rec.ID,
		Time:      createdAt.Format("02.01.2006 15:04:05"),
		Code:      string(rec.Code),
		Title:     rec.Title,
		Msg:       rec.Msg,
		ActionURL: rec.ActionURL,
	})
	i.RefreshUnreadCount(rec.UserID)
}

func (i *impl) RefreshUnreadCount(userID string) {
	if !i.IsConnected(userID) {
		return
	}
	count, err := i.store.UnreadCount(userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("ошибка получения количества непрочитанных уведомлений")
		return
	}
	i.SendMessage(wsmodels.ServerMessage{
		ToUserID:    userID,
		Time:        time.Now().Format("02.01.2006 15:04:05"),
		Code:        wsmodels.UnreadCountCode,
		UnreadCount: &count,
	})
}
