package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Sender defines the interface for outbound email delivery.
type Sender interface {
	Send(toEmail, subject, body string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSender creates an SMTP-backed Sender
func NewSender(config SMTPConfig, logger zerolog.Logger) Sender {
	return &smtpSender{config: config, logger: logger}
}

// Send delivers a single plain-text email. When SMTP credentials are not
// configured the message is logged instead so development setups keep
// working without a mail relay.
func (s *smtpSender) Send(toEmail, subject, body string) error {
	if s.config.Host == "" || s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email logged instead of sent")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	from := s.config.From
	if from == "" {
		from = s.config.Username
	}

	message := fmt.Sprintf("From: %s\r\n", from)
	message += fmt.Sprintf("To: %s\r\n", toEmail)
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "MIME-Version: 1.0\r\n"
	message += "Content-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n" + body

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	if err := smtp.SendMail(serverAddress, auth, from, []string{toEmail}, []byte(message)); err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Str("toEmail", toEmail).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Debug().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}
