package wsclient

import (
	"io"
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type frame struct {
	messageType int
	data        string
}

type scriptedConn struct {
	frames []frame
}

func (s *scriptedConn) ReadMessage() (int, []byte, error) {
	if len(s.frames) == 0 {
		return 0, nil, io.EOF
	}
	next := s.frames[0]
	s.frames = s.frames[1:]
	return next.messageType, []byte(next.data), nil
}

type fakeReader struct {
	marked  [][]string
	markAll int
	err     error
}

func (f *fakeReader) MarkRead(userID string, ids []string) error {
	f.marked = append(f.marked, ids)
	return f.err
}

func (f *fakeReader) MarkAllRead(userID string) error {
	f.markAll++
	return f.err
}

type fakeCounter struct {
	refreshed []string
}

func (f *fakeCounter) RefreshUnreadCount(userID string) {
	f.refreshed = append(f.refreshed, userID)
}

func TestDispatch(t *testing.T) {
	t.Run("read commands", func(t *testing.T) {
		conn := &scriptedConn{frames: []frame{
			{websocket.TextMessage, `{"code":"mark_read","ids":["n1","n2"]}`},
			{websocket.TextMessage, `{"code":"mark_read"}`},
			{websocket.TextMessage, `{"code":"mark_all_read"}`},
			{websocket.TextMessage, `{"code":"ping"}`},
			{websocket.TextMessage, `not json`},
			{websocket.BinaryMessage, `{"code":"mark_all_read"}`},
		}}
		reader := &fakeReader{}
		counter := &fakeCounter{}
		NewClient("user-1", conn, reader, counter).Dispatch()

		require.Equal(t, [][]string{{"n1", "n2"}}, reader.marked)
		require.Equal(t, 1, reader.markAll)
		require.Equal(t, []string{"user-1", "user-1"}, counter.refreshed)
	})
	t.Run("no refresh on error", func(t *testing.T) {
		conn := &scriptedConn{frames: []frame{
			{websocket.TextMessage, `{"code":"mark_all_read"}`},
		}}
		reader := &fakeReader{err: errors.New("db down")}
		counter := &fakeCounter{}
		NewClient("user-1", conn, reader, counter).Dispatch()

		require.Equal(t, 1, reader.markAll)
		require.Empty(t, counter.refreshed)
	})
}
