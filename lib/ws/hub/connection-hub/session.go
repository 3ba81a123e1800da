package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn часть *websocket.Conn, нужная для отправки
type Conn interface {
	WriteJSON(v interface{}) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
}

const sendBufferSize = 16

type clientSession struct {
	userID string
	conn   Conn

	// Outbound mesages, buffered.
	sendCh chan any
	stop   func()
}

func newSession(userID string, conn Conn) *clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &clientSession{
		userID: userID,
		stop:   cancelFn,
		conn:   conn,
		sendCh: make(chan any, sendBufferSize),
	}
	go sess.startSend(ctx)
	return sess
}

// enqueue не блокирует отправителя, при переполненной очереди сообщение теряется
func (s *clientSession) enqueue(msg any) bool {
	select {
	case s.sendCh <- msg:
		return true
	default:
		log.WithField("user_id", s.userID).Warn("очередь отправки переполнена, сообщение пропущено")
		return false
	}
}

func (s *clientSession) startSend(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.conn.WriteJSON(msg); err != nil {
				log.WithError(err).WithField("user_id", s.userID).Error("ошибка отправки сообщения")
			}
		}
	}
}

func (s *clientSession) close() {
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	if err != nil {
		log.WithError(err).WithField("user_id", s.userID).Debug("cant close")
	}
}
