package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// ErrNoRecipient is returned when a notification has no destination address.
var ErrNoRecipient = errors.New("no recipient specified")

// Notification is the payload handed to the email collaborator.
type Notification struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	ToEmail string `json:"to_email"`
}

// Sender delivers notifications. The account service only builds notifications; how they
// travel is up to the Sender.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// LoadConfig reads the SMTP settings from environment variables.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse SMTP environment variables: %w", err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.Port == 0 {
		return fmt.Errorf("missing SMTP_PORT environment variable")
	}
	if c.From == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}

// dialer is the subset of *gomail.Dialer the Mailer uses.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends notifications over SMTP.
type Mailer struct {
	from   string
	dialer dialer
}

// NewMailer creates a Mailer from cfg.
func NewMailer(cfg Config) (*Mailer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Mailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

// Send delivers n as a plain-text email.
func (m *Mailer) Send(ctx context.Context, n Notification) error {
	if n.ToEmail == "" {
		return ErrNoRecipient
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.dialer.DialAndSend(m.newMessage(n))
}

func (m *Mailer) newMessage(n Notification) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", n.ToEmail)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/plain", n.Body)
	return msg
}

// LogSender writes notifications to the log instead of sending them. It is used when SMTP is
// not configured, e.g. in local development.
type LogSender struct {
	logger *zerolog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the recipient and subject. The body may carry a reset link and is never logged.
func (s *LogSender) Send(_ context.Context, n Notification) error {
	if n.ToEmail == "" {
		return ErrNoRecipient
	}

	s.logger.Info().Str("to", n.ToEmail).Str("subject", n.Subject).Msg("email delivery skipped: SMTP disabled")
	return nil
}
