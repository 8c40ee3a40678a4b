// Package mail renders and delivers transactional email.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// Provider names a delivery backend.
type Provider string

const (
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"
	ProviderLog      Provider = "log"
)

var ErrUnsupportedProvider = errors.New("mail: unsupported provider")

// Message is a rendered email with both HTML and plaintext bodies.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

//go:generate mockgen -source=mailer.go -destination=mailmock/mailer_mock.go -package=mailmock

// Mailer delivers a single message. Implementations do not retry.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Sender is the envelope sender shared by every provider.
type Sender struct {
	Address string
	Name    string
}

// Config selects and configures a provider.
type Config struct {
	Provider Provider
	From     Sender

	SMTP           SMTPConfig
	SendgridAPIKey string
}

// New builds the Mailer for cfg.Provider.
func New(cfg Config) (Mailer, error) {
	switch cfg.Provider {
	case ProviderSMTP:
		return NewSMTPMailer(cfg.SMTP, cfg.From), nil
	case ProviderSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, errors.New("mail: sendgrid provider requires an API key")
		}
		return NewSendgridMailer(cfg.SendgridAPIKey, cfg.From), nil
	case ProviderLog, "":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, cfg.Provider)
	}
}
