package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func validConfig() Config {
	return Config{Host: "smtp.example.com", Port: 587, From: "no-reply@example.com"}
}

func TestNewMailer_ValidatesConfig(t *testing.T) {
	_, err := NewMailer(Config{})
	assert.ErrorContains(t, err, "SMTP_HOST")

	_, err = NewMailer(Config{Host: "h"})
	assert.ErrorContains(t, err, "SMTP_PORT")

	_, err = NewMailer(Config{Host: "h", Port: 25})
	assert.ErrorContains(t, err, "SMTP_FROM")

	m, err := NewMailer(validConfig())
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USERNAME", "user")
	t.Setenv("SMTP_PASSWORD", "pass")
	t.Setenv("SMTP_FROM", "no-reply@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2525, cfg.Port)
	assert.Equal(t, "user", cfg.Username)
}

func TestMailer_Send(t *testing.T) {
	d := &recordingDialer{}
	m := &Mailer{from: "no-reply@example.com", dialer: d}

	err := m.Send(context.Background(), Notification{
		Subject: "Reset Your Password",
		Body:    "Click Following Link to Reset Your Password http://x/y/z",
		ToEmail: "alice@example.com",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"alice@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Reset Your Password"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"no-reply@example.com"}, msg.GetHeader("From"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "http://x/y/z")
}

func TestMailer_Send_Errors(t *testing.T) {
	d := &recordingDialer{err: errors.New("smtp down")}
	m := &Mailer{from: "f@example.com", dialer: d}

	assert.ErrorIs(t, m.Send(context.Background(), Notification{}), ErrNoRecipient)
	assert.EqualError(t, m.Send(context.Background(), Notification{ToEmail: "a@example.com"}), "smtp down")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, Notification{ToEmail: "a@example.com"}), context.Canceled)
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s := NewLogSender(&logger)

	require.NoError(t, s.Send(context.Background(), Notification{
		Subject: "Reset Your Password",
		Body:    "Click Following Link to Reset Your Password http://localhost:3000/api/user/reset/MQ/secret-token",
		ToEmail: "alice@example.com",
	}))

	out := buf.String()
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "Reset Your Password")
	assert.False(t, strings.Contains(out, "secret-token"), "body must not be logged at any level")

	assert.ErrorIs(t, s.Send(context.Background(), Notification{}), ErrNoRecipient)
}
