package mail

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zyna-b/portfolio/internal/config"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_NoopWithoutHostOrFrom(t *testing.T) {
	cases := []config.SMTPConfig{
		{},
		{Host: "smtp.example.com"},
		{Host: "smtp.example.com", From: "site@example.com"},
		{From: "site@example.com", To: "owner@example.com"},
	}
	for _, cfg := range cases {
		m := New(cfg, discard())
		assert.False(t, m.Enabled(), "%+v", cfg)
		assert.NoError(t, m.SendContactMessage(ContactMessage{Subject: "hi"}))
	}
}

func TestNew_EnabledWithFullConfig(t *testing.T) {
	m := New(config.SMTPConfig{
		Host: "smtp.example.com",
		From: "site@example.com",
		To:   "owner@example.com",
	}, discard())
	assert.True(t, m.Enabled())
}

func TestBuildMessage_Headers(t *testing.T) {
	raw := string(buildMessage("site@example.com", "owner@example.com", "visitor@example.com", "Portfolio contact: Hello", "body text"))
	assert.Contains(t, raw, "From: site@example.com\r\n")
	assert.Contains(t, raw, "To: owner@example.com\r\n")
	assert.Contains(t, raw, "Reply-To: visitor@example.com\r\n")
	assert.Contains(t, raw, "Subject: Portfolio contact: Hello\r\n")
	assert.Contains(t, raw, "\r\n\r\nbody text\r\n")
}

func TestBuildMessage_OmitsEmptyReplyTo(t *testing.T) {
	raw := string(buildMessage("a@b.c", "d@e.f", "", "s", "b"))
	assert.NotContains(t, raw, "Reply-To")
}
