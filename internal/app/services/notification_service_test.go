package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories/memory"
)

type fakeEmailSender struct {
	sent    []string
	failFor map[string]bool
}

func (f *fakeEmailSender) Send(toEmail, subject, body string) error {
	if f.failFor[toEmail] {
		return errors.New("relay refused")
	}
	f.sent = append(f.sent, toEmail)
	return nil
}

type fakeSMSSender struct {
	sent []string
}

func (f *fakeSMSSender) Send(toNumber, message string) error {
	f.sent = append(f.sent, toNumber)
	return nil
}

func TestSendEmailFanOutContinuesPastFailures(t *testing.T) {
	store := memory.New()
	emailSender := &fakeEmailSender{failFor: map[string]bool{"bad@example.com": true}}
	service := NewNotificationService(store, emailSender, &fakeSMSSender{})

	response, err := service.SendEmail(context.Background(), 1, dto.SendEmailRequest{
		Recipients: []string{"a@example.com", "bad@example.com", "b@example.com"},
		Subject:    "Enrollment update",
		Message:    "Your application was reviewed.",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, response.Sent)
	assert.Equal(t, 1, response.Failed)
	require.Len(t, response.Results, 3)
	assert.False(t, response.Results[1].Sent)
	assert.NotEmpty(t, response.Results[1].Error)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, emailSender.sent)

	// One audit row per recipient, failures marked as such.
	notifications, err := store.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 3)

	var failed int
	for _, n := range notifications {
		assert.Equal(t, models.NotificationEmail, n.Type)
		assert.Equal(t, int64(1), n.SentBy)
		if n.Status == models.NotificationFailed {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}

func TestSendSMSWritesAuditRows(t *testing.T) {
	store := memory.New()
	smsSender := &fakeSMSSender{}
	service := NewNotificationService(store, &fakeEmailSender{}, smsSender)

	response, err := service.SendSMS(context.Background(), 2, dto.SendSMSRequest{
		Recipients: []string{"+15550100", "+15550101"},
		Message:    "Enrollment approved",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, response.Sent)
	assert.Zero(t, response.Failed)
	assert.Equal(t, []string{"+15550100", "+15550101"}, smsSender.sent)

	notifications, err := store.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	for _, n := range notifications {
		assert.Equal(t, models.NotificationSMS, n.Type)
		assert.Equal(t, models.NotificationSent, n.Status)
		assert.Nil(t, n.Subject)
	}
}
