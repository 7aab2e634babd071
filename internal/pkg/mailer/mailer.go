package mailer

import (
	"context"
	"time"

	"github.com/wneessen/go-mail"
)

// Mailer sends a single plain-text message.
type Mailer interface {
	Send(ctx context.Context, to, subject, text string) error
}

// SMTPConfig holds SMTP transport settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	Insecure bool
}

// SMTPMailer sends mail over SMTP
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers one message. The caller decides what to do with failures;
// nothing is retried here.
func (s *SMTPMailer) Send(ctx context.Context, to, subject, text string) error {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return err
	}
	if err := m.To(to); err != nil {
		return err
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, text)

	tlsPolicy := mail.TLSMandatory
	if s.cfg.Insecure {
		tlsPolicy = mail.TLSOpportunistic
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPolicy(tlsPolicy),
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
