package wsclient

import (
	"encoding/json"
	wsmodels "office-admin-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
}

type NotificationReader interface {
	MarkRead(userID string, ids []string) error
	MarkAllRead(userID string) error
}

type UnreadCounter interface {
	RefreshUnreadCount(userID string)
}

func NewClient(userID string, conn Conn, reader NotificationReader, counter UnreadCounter) *WsClient {
	return &WsClient{
		conn:    conn,
		userID:  userID,
		reader:  reader,
		counter: counter,
	}
}

// WsClient входящий поток сессии: отметки о прочтении уведомлений
type WsClient struct {
	conn    Conn
	userID  string
	reader  NotificationReader
	counter UnreadCounter
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch читает до закрытия соединения
func (c *WsClient) Dispatch() {
	logger := log.WithField("user_id", c.userID)
	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				logger.WithError(err).Error("ошибка получения сообщения")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		c.handle(logger, data)
	}
}

func (c *WsClient) handle(logger *log.Entry, data []byte) {
	var msg wsmodels.ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logger.WithError(err).Warn("некорректное сообщение от клиента")
		return
	}
	var err error
	switch msg.Code {
	case wsmodels.MarkReadCode:
		if len(msg.IDs) == 0 {
			return
		}
		err = c.reader.MarkRead(c.userID, msg.IDs)
	case wsmodels.MarkAllReadCode:
		err = c.reader.MarkAllRead(c.userID)
	default:
		logger.WithField("code", msg.Code).Debug("неизвестная команда клиента")
		return
	}
	if err != nil {
		logger.WithError(err).Error("ошибка отметки уведомлений прочитанными")
		return
	}
	c.counter.RefreshUnreadCount(c.userID)
}
