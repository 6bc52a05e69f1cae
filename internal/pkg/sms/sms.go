package sms

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sender defines the interface for outbound SMS delivery.
type Sender interface {
	Send(toNumber, message string) error
}

// TwilioConfig holds credentials for the Twilio Messages API
type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

type twilioSender struct {
	config TwilioConfig
	client *http.Client
	logger zerolog.Logger
}

// NewSender creates a Twilio-backed Sender
func NewSender(config TwilioConfig, logger zerolog.Logger) Sender {
	return &twilioSender{
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Send delivers a single SMS through the Twilio REST API. When credentials
// are not configured the message is logged instead so development setups
// keep working without a Twilio account.
func (s *twilioSender) Send(toNumber, message string) error {
	if s.config.AccountSID == "" || s.config.AuthToken == "" {
		s.logger.Warn().
			Str("toNumber", toNumber).
			Str("message", message).
			Msg("Twilio credentials not configured - SMS logged instead of sent")
		return nil
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.config.AccountSID)

	form := url.Values{}
	form.Set("To", toNumber)
	form.Set("From", s.config.PhoneNumber)
	form.Set("Body", message)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(s.config.AccountSID, s.config.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error().Err(err).Str("toNumber", toNumber).Msg("Failed to send SMS")
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Error().Int("status", resp.StatusCode).Str("toNumber", toNumber).Msg("Twilio rejected SMS")
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}

	s.logger.Debug().Str("toNumber", toNumber).Msg("SMS sent")
	return nil
}
