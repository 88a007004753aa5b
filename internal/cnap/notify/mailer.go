// Package notify renders and delivers outbound facility email.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"github.com/aussiebroadwan/cnap/pkg/slogx"
)

// Email is one rendered message for one recipient.
type Email struct {
	From     string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type Mailer interface {
	Send(ctx context.Context, e Email) error
}

type SMTPConfig struct {
	Addr     string // host:port
	Username string
	Password string
	From     string
}

// SMTPMailer delivers multipart/alternative messages via net/smtp.
type SMTPMailer struct {
	cfg  SMTPConfig
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.From == "" {
		e.From = m.cfg.From
	}

	raw, err := buildMIME(e, time.Now())
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		host := m.cfg.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, host)
	}
	if err := m.send(m.cfg.Addr, auth, e.From, []string{e.To}, raw); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return nil
}

// buildMIME renders e as an RFC 5322 message with text and html alternatives.
func buildMIME(e Email, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	var hdr bytes.Buffer
	fmt.Fprintf(&hdr, "From: %s\r\n", e.From)
	fmt.Fprintf(&hdr, "To: %s\r\n", e.To)
	fmt.Fprintf(&hdr, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", e.Subject))
	fmt.Fprintf(&hdr, "Date: %s\r\n", now.UTC().Format(time.RFC1123Z))
	hdr.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&hdr, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())

	for _, part := range []struct{ ctype, body string }{
		{"text/plain; charset=utf-8", e.TextBody},
		{"text/html; charset=utf-8", e.HTMLBody},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.ctype},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.body)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return append(hdr.Bytes(), buf.Bytes()...), nil
}

// LogMailer logs messages instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, e Email) error {
	slogx.FromContext(ctx).InfoContext(ctx, "email not sent (log mailer)",
		"to", e.To,
		"subject", e.Subject,
		"body", e.TextBody,
	)
	return nil
}
