package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/template"

	"github.com/archive-alert/internal/config"
	"github.com/archive-alert/internal/domain"
	"github.com/archive-alert/internal/domain/repository"
	"go.uber.org/zap"
)

// Transport delivers a rendered message.
type Transport interface {
	Send(ctx context.Context, msg domain.EmailMessage, password string) error
}

type secrets struct {
	EmailPassword string `json:"email_password"`
}

type notifier struct {
	sender      string
	recipients  []string
	subject     *template.Template
	body        *template.Template
	secretsFile string
	transport   Transport
	logger      *zap.Logger
}

// NewNotifier создает email-оповещатель; шаблоны разбираются сразу
func NewNotifier(cfg *config.MailConfig, transport Transport, logger *zap.Logger) (repository.Notifier, error) {
	subject, err := template.New("subject").Parse(cfg.SubjectTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subject template: %w", err)
	}
	body, err := template.New("body").Parse(cfg.BodyTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse body template: %w", err)
	}

	return &notifier{
		sender:      cfg.Sender,
		recipients:  cfg.Recipients,
		subject:     subject,
		body:        body,
		secretsFile: cfg.SecretsFile,
		transport:   transport,
		logger:      logger,
	}, nil
}

// Notify never returns an error: every failure ends up in the result.
func (n *notifier) Notify(ctx context.Context, notification domain.Notification) domain.NotifyResult {
	msg, err := n.Render(notification)
	if err != nil {
		return domain.Failed(err)
	}

	password, err := n.readPassword()
	if err != nil {
		return domain.Failed(err)
	}

	if err := n.transport.Send(ctx, msg, password); err != nil {
		n.logger.Error("Failed to send email",
			zap.String("aoi", notification.AOIName),
			zap.Strings("to", msg.To),
			zap.Error(err))
		return domain.Failed(fmt.Errorf("failed to send email: %w", err))
	}

	n.logger.Info("Email notification sent!",
		zap.String("aoi", notification.AOIName),
		zap.Int("new_scenes", notification.NewScenes),
		zap.Strings("to", msg.To))
	return domain.Sent()
}

// Render fills the subject and body templates.
func (n *notifier) Render(notification domain.Notification) (domain.EmailMessage, error) {
	if n.sender == "" || len(n.recipients) == 0 {
		return domain.EmailMessage{}, fmt.Errorf("sender and recipients must be configured")
	}

	var subject, body bytes.Buffer
	if err := n.subject.Execute(&subject, notification); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("failed to render subject: %w", err)
	}
	if err := n.body.Execute(&body, notification); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("failed to render body: %w", err)
	}

	return domain.EmailMessage{
		From:    n.sender,
		To:      n.recipients,
		Subject: subject.String(),
		Body:    body.String(),
	}, nil
}

func (n *notifier) readPassword() (string, error) {
	raw, err := os.ReadFile(n.secretsFile)
	if err != nil {
		return "", fmt.Errorf("failed to read mail secrets: %w", err)
	}

	var s secrets
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("failed to parse mail secrets: %w", err)
	}
	if s.EmailPassword == "" {
		return "", fmt.Errorf("mail secrets file %s has no email_password", n.secretsFile)
	}

	return s.EmailPassword, nil
}

type nopNotifier struct {
	logger *zap.Logger
}

// NewNop returns a notifier that only logs and reports Skipped; used when mail is disabled.
func NewNop(logger *zap.Logger) repository.Notifier {
	return &nopNotifier{logger: logger}
}

func (n *nopNotifier) Notify(_ context.Context, notification domain.Notification) domain.NotifyResult {
	n.logger.Info("Mail disabled, notification skipped",
		zap.String("aoi", notification.AOIName),
		zap.Int("new_scenes", notification.NewScenes))
	return domain.Skipped()
}
