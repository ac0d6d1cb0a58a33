// Package mailer delivers notification emails through an SMTP relay.
package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Sender delivers a plain-text message to a recipient. Delivery failure is
// reported as an error, never as a panic; callers turn it into a user-visible
// error response.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
	Configured() bool
}

// Config holds SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender is a Sender backed by an SMTP relay. The dial-and-send cycle is
// bounded by the configured timeout so a slow relay cannot block a request
// indefinitely.
type SMTPSender struct {
	client *mail.Client
	from   string
}

// New creates an SMTPSender. When cfg.Host is empty the sender is returned
// unconfigured and every Send fails fast.
func New(cfg Config) (*SMTPSender, error) {
	if cfg.Host == "" {
		return &SMTPSender{}, nil
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.From}, nil
}

// Configured reports whether an SMTP relay has been set up.
func (s *SMTPSender) Configured() bool {
	return s.client != nil
}

// Send delivers a plain-text message, honoring ctx cancellation and the
// client timeout.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if !s.Configured() {
		return fmt.Errorf("mailer not configured: missing SMTP host")
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
