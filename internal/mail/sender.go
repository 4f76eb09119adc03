package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/yakoovad/hackathon-registration/internal/config"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, msg *Message) error
	// Live reports whether Send actually delivers mail.
	Live() bool
}

type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
	timeout  time.Duration
}

func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		host:     cfg.Host,
		port:     cfg.Port,
		user:     cfg.User,
		password: cfg.Password,
		from:     cfg.From,
		timeout:  cfg.Timeout,
	}
}

func (s *SMTPSender) Live() bool { return true }

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	body, err := encode(s.from, msg)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	d := net.Dialer{Timeout: s.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "dial %s", addr)
	}

	deadline := time.Now().Add(s.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err = conn.SetDeadline(deadline); err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "set deadline")
	}

	c, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "smtp handshake")
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err = c.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
			return errors.Wrap(err, "starttls")
		}
	}
	if s.user != "" {
		if err = c.Auth(smtp.PlainAuth("", s.user, s.password, s.host)); err != nil {
			return errors.Wrap(err, "smtp auth")
		}
	}
	if err = c.Mail(s.from); err != nil {
		return errors.Wrap(err, "mail from")
	}
	if err = c.Rcpt(msg.To); err != nil {
		return errors.Wrap(err, "rcpt to")
	}

	w, err := c.Data()
	if err != nil {
		return errors.Wrap(err, "data")
	}
	if _, err = w.Write(body); err != nil {
		return errors.Wrap(err, "write body")
	}
	if err = w.Close(); err != nil {
		return errors.Wrap(err, "close body")
	}

	return c.Quit()
}

// LogSender stands in for SMTP when e-mail is disabled.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(l *zap.Logger) *LogSender {
	return &LogSender{logger: l}
}

func (s *LogSender) Live() bool { return false }

func (s *LogSender) Send(_ context.Context, msg *Message) error {
	s.logger.Info("email disabled, confirmation not sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

// encode builds a multipart/alternative message with plain and HTML parts.
func encode(from string, msg *Message) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{contentType: "text/plain; charset=utf-8", content: msg.Plain},
		{contentType: "text/html; charset=utf-8", content: msg.HTML},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, errors.Wrap(err, "create part")
		}
		if _, err = w.Write([]byte(part.content)); err != nil {
			return nil, errors.Wrap(err, "write part")
		}
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "close multipart")
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", mime.QEncoding.Encode("utf-8", "StraveX '26")+" <"+from+">")
	fmt.Fprintf(&out, "To: %s\r\n", msg.To)
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&out, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
	out.Write(body.Bytes())

	return out.Bytes(), nil
}
