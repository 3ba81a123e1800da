package smtp

import (
	"fmt"
	"io"
	"mime"
	"office-admin-backend/config"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	// SendEMail письмо в кодировке UTF-8, без настроенного сервера только пишет предупреждение
	SendEMail(to, subject, message string) error
}

type sendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

func NewHandler() {
	Instance = NewInstance(
		config.Conf.Smtp.User,
		config.Conf.Smtp.Password,
		config.Conf.Smtp.Host,
		config.Conf.Smtp.Port,
		config.Conf.Smtp.From,
		*config.Conf.Smtp.TLSEnabled,
	)
}

func NewInstance(user, password, host, port, from string, tlsEnabled bool) Provider {
	send := sendFunc(smtp.SendMail)
	if tlsEnabled {
		send = smtp.SendMailTLS
	}
	if from == "" {
		from = user
	}
	return &impl{
		user:     user,
		password: password,
		host:     host,
		port:     port,
		from:     from,
		send:     send,
	}
}

type impl struct {
	user     string
	password string
	host     string
	port     string
	from     string
	send     sendFunc
}

func (i impl) SendEMail(to, subject, message string) (err error) {
	logger := log.WithField("recipient", to)
	if i.host == "" || i.port == "" {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	var auth sasl.Client
	if i.user != "" {
		auth = sasl.NewPlainClient("", i.user, i.password)
	}
	err = i.send(i.host+":"+i.port, auth, i.from, []string{to}, strings.NewReader(buildMessage(i.from, to, subject, message)))
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, to, subject, message string) string {
	headers := []string{
		fmt.Sprintf("From: %s", from),
		fmt.Sprintf("To: %s", to),
		// заголовки только ASCII, кириллица кодируется по RFC 2047
		fmt.Sprintf("Subject: %s", mime.QEncoding.Encode("utf-8", "Канцелярия - "+subject)),
		"MIME-version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}
	return strings.Join(headers, "\r\n") + "\r\n\r\n" + message + "\r\n"
}
