// internal/app/system/mailer/mailer.go

// Package mailer sends outbound email over SMTP. The check-in digest it
// builds embeds a tracking pixel so opens can be recorded against the
// recipient's profile.
package mailer

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a single outbound message. TextBody and HTMLBody are sent as
// a multipart/alternative pair; either may be empty.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender delivers email via an SMTP relay.
type Sender struct {
	cfg Config
	log *zap.Logger
}

// NewSender creates a Sender. It does not dial until Send is called.
func NewSender(cfg Config, log *zap.Logger) *Sender {
	return &Sender{cfg: cfg, log: log}
}

const boundary = "np-alt-9f3b2c"

// Send delivers the email. The context is checked before dialing; the
// SMTP exchange itself uses net/smtp's internal deadlines.
func (s *Sender) Send(ctx context.Context, email Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if email.To == "" {
		return fmt.Errorf("mailer: empty recipient")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := buildMessage(s.cfg.From, email)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{email.To}, msg); err != nil {
		s.log.Error("send email failed",
			zap.String("to", email.To),
			zap.String("subject", email.Subject),
			zap.Error(err),
		)
		return fmt.Errorf("send email to %s: %w", email.To, err)
	}

	s.log.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)
	return nil
}

func buildMessage(from string, email Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case email.HTMLBody != "" && email.TextBody != "":
		fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
		fmt.Fprintf(&b, "--%s\r\n", boundary)
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(email.TextBody)
		fmt.Fprintf(&b, "\r\n--%s\r\n", boundary)
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(email.HTMLBody)
		fmt.Fprintf(&b, "\r\n--%s--\r\n", boundary)
	case email.HTMLBody != "":
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(email.HTMLBody)
	default:
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(email.TextBody)
	}
	return []byte(b.String())
}
