package resend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmonyhub/portal-api/internal/config"
	"github.com/harmonyhub/portal-api/internal/domain"
)

func TestSend_UnconfiguredWithoutAPIKey(t *testing.T) {
	m := NewMailer(&config.Config{
		MailFrom:    "Resource Hub <noreply@example.com>",
		MailTo:      "admin@example.com",
		MailTimeout: 10 * time.Second,
	})

	err := m.Send(context.Background(), domain.Notification{Subject: "hi", Text: "hi"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnconfigured)
}
