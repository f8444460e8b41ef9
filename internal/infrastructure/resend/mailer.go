// Package resend relays outbound mail through the Resend transactional-email
// API. Delivery failures are reported distinctly from a missing credential so
// callers can choose between failing the request and logging and moving on.
package resend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/harmonyhub/portal-api/internal/config"
	"github.com/harmonyhub/portal-api/internal/domain"
)

// Mailer sends a formatted notification.
type Mailer interface {
	Send(ctx context.Context, n domain.Notification) error
}

type mailer struct {
	client *resend.Client
	from   string
	to     string // default recipient (admin inbox)
	prefix string
}

// NewMailer builds a Resend-backed mailer. With no API key configured the
// mailer is still constructed, and every Send fails with ErrUnconfigured;
// the endpoints decide how fatal that is.
func NewMailer(cfg *config.Config) Mailer {
	m := &mailer{
		from:   cfg.MailFrom,
		to:     cfg.MailTo,
		prefix: cfg.SubjectPrefix,
	}
	if cfg.ResendAPIKey != "" {
		httpClient := &http.Client{Timeout: cfg.MailTimeout}
		if httpClient.Timeout == 0 {
			httpClient.Timeout = 10 * time.Second
		}
		m.client = resend.NewCustomClient(httpClient, cfg.ResendAPIKey)
	}
	return m
}

func (m *mailer) Send(ctx context.Context, n domain.Notification) error {
	if m.client == nil {
		return fmt.Errorf("missing RESEND_API_KEY: %w", domain.ErrUnconfigured)
	}

	to := n.To
	if to == "" {
		to = m.to
	}
	subject := n.Subject
	if m.prefix != "" {
		subject = m.prefix + " - " + subject
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    n.Text,
		Html:    n.HTML,
		ReplyTo: n.ReplyTo,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	return nil
}
