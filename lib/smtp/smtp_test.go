package smtp

import (
	"io"
	"mime"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/emersion/go-sasl"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	addr string
	from string
	to   []string
	body string
	auth bool
}

func newTestInstance(host string, sendErr error) (*impl, *[]sentMail) {
	sent := []sentMail{}
	i := NewInstance("robot@office.local", "secret", host, "25", "", false).(*impl)
	i.send = func(addr string, a sasl.Client, from string, to []string, r io.Reader) error {
		body, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		sent = append(sent, sentMail{addr: addr, from: from, to: to, body: string(body), auth: a != nil})
		return sendErr
	}
	return i, &sent
}

func TestSendEMail(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		i, sent := newTestInstance("", nil)
		require.NoError(t, i.SendEMail("user@office.local", "тема", "текст"))
		require.Empty(t, *sent)
	})
	t.Run("send", func(t *testing.T) {
		i, sent := newTestInstance("mail.office.local", nil)
		require.NoError(t, i.SendEMail("user@office.local", "Требуется согласование", "Документ ожидает вашего согласования."))
		require.Len(t, *sent, 1)
		mail := (*sent)[0]
		require.Equal(t, "mail.office.local:25", mail.addr)
		require.Equal(t, "robot@office.local", mail.from)
		require.Equal(t, []string{"user@office.local"}, mail.to)
		require.True(t, mail.auth)
		require.Equal(t, "Канцелярия - Требуется согласование", decodeSubject(t, mail.body))
		require.Contains(t, mail.body, "charset=\"UTF-8\"")
		require.Contains(t, mail.body, "\r\n\r\nДокумент ожидает вашего согласования.")
	})
	t.Run("headers are ascii", func(t *testing.T) {
		i, sent := newTestInstance("mail.office.local", nil)
		require.NoError(t, i.SendEMail("user@office.local", "Письмо «О графике» №5", "текст"))
		mail := (*sent)[0]
		headers, _, ok := strings.Cut(mail.body, "\r\n\r\n")
		require.True(t, ok)
		for _, c := range headers {
			require.Less(t, c, rune(utf8.RuneSelf), "non-ascii in headers: %q", headers)
		}
		require.Equal(t, "Канцелярия - Письмо «О графике» №5", decodeSubject(t, mail.body))
	})
	t.Run("send error", func(t *testing.T) {
		i, _ := newTestInstance("mail.office.local", errors.New("connection refused"))
		require.Error(t, i.SendEMail("user@office.local", "тема", "текст"))
	})
}

func decodeSubject(t *testing.T, body string) string {
	for _, line := range strings.Split(body, "\r\n") {
		if value, ok := strings.CutPrefix(line, "Subject: "); ok {
			subject, err := new(mime.WordDecoder).DecodeHeader(value)
			require.NoError(t, err)
			return subject
		}
	}
	t.Fatal("no Subject header")
	return ""
}
