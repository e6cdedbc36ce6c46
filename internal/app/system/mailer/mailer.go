// internal/app/system/mailer/mailer.go

// Package mailer builds and sends MeetHub's transactional email: meeting
// notifications, welcome mail and password-reset links. Sending is
// best-effort; a broken SMTP channel is logged and never propagates to the
// operation that triggered the mail.
package mailer

import (
	"context"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Email is one outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. Implementations own their transport errors.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string // empty disables auth (local Mailpit)
	Password string
	From     string
	FromName string
}

// SMTPSender sends mail over SMTP.
type SMTPSender struct {
	cfg Config
	log *zap.Logger
}

// NewSMTPSender builds a sender from config.
func NewSMTPSender(cfg Config, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: logger}
}

// Send delivers one message, dialing per call. Volume is low (one mail per
// meeting event), so connection reuse is not worth the bookkeeping.
func (s *SMTPSender) Send(ctx context.Context, e Email) error {
	m := mail.NewMsg()
	if err := m.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
		return err
	}
	if err := m.To(e.To); err != nil {
		return err
	}
	m.Subject(e.Subject)
	m.SetBodyString(mail.TypeTextPlain, e.TextBody)
	if e.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, e.HTMLBody)
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}

// NopSender discards mail. Wired in when no SMTP host is configured.
type NopSender struct{}

// Send discards the message.
func (NopSender) Send(ctx context.Context, e Email) error { return nil }
