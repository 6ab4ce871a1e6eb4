package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/archive-alert/internal/config"
	"github.com/archive-alert/internal/domain"
	gomail "github.com/wneessen/go-mail"
)

const defaultTimeout = 30 * time.Second

type smtpTransport struct {
	host    string
	port    int
	timeout time.Duration
}

// NewSMTPTransport sends over implicit TLS with PLAIN auth.
func NewSMTPTransport(cfg *config.MailConfig) Transport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &smtpTransport{host: cfg.Host, port: cfg.Port, timeout: timeout}
}

func (t *smtpTransport) Send(ctx context.Context, msg domain.EmailMessage, password string) error {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("invalid recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	c, err := gomail.NewClient(t.host,
		gomail.WithPort(t.port),
		gomail.WithSSL(),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(msg.From),
		gomail.WithPassword(password),
		gomail.WithTimeout(t.timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	return c.DialAndSendWithContext(ctx, m)
}
