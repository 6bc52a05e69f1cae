package services

import (
	"context"
	"time"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/pkg/email"
	"github.com/campusflow/enroll/internal/pkg/logger"
	"github.com/campusflow/enroll/internal/pkg/sms"
)

// NotificationService fans messages out to recipients and keeps the
// notification audit log
type NotificationService struct {
	store       repositories.Store
	emailSender email.Sender
	smsSender   sms.Sender
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store repositories.Store, emailSender email.Sender, smsSender sms.Sender) *NotificationService {
	return &NotificationService{
		store:       store,
		emailSender: emailSender,
		smsSender:   smsSender,
	}
}

// SendEmail delivers the message to every recipient and writes one audit
// row per recipient. A failed recipient does not stop the rest of the
// fan-out.
func (s *NotificationService) SendEmail(ctx context.Context, sentBy int64, req dto.SendEmailRequest) (*dto.SendResponse, error) {
	response := &dto.SendResponse{Results: make([]dto.SendResult, 0, len(req.Recipients))}

	for _, recipient := range req.Recipients {
		err := s.emailSender.Send(recipient, req.Subject, req.Message)
		s.record(ctx, models.NotificationEmail, &req.Subject, req.Message, sentBy, err)
		response.Results = append(response.Results, toResult(recipient, err))
		if err != nil {
			response.Failed++
			continue
		}
		response.Sent++
	}
	return response, nil
}

// SendSMS delivers the message to every recipient phone number and writes
// one audit row per recipient.
func (s *NotificationService) SendSMS(ctx context.Context, sentBy int64, req dto.SendSMSRequest) (*dto.SendResponse, error) {
	response := &dto.SendResponse{Results: make([]dto.SendResult, 0, len(req.Recipients))}

	for _, recipient := range req.Recipients {
		err := s.smsSender.Send(recipient, req.Message)
		s.record(ctx, models.NotificationSMS, nil, req.Message, sentBy, err)
		response.Results = append(response.Results, toResult(recipient, err))
		if err != nil {
			response.Failed++
			continue
		}
		response.Sent++
	}
	return response, nil
}

// ListNotifications returns the notification audit log, newest first
func (s *NotificationService) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	return s.store.ListNotifications(ctx)
}

func (s *NotificationService) record(ctx context.Context, kind models.NotificationType, subject *string, message string, sentBy int64, sendErr error) {
	status := models.NotificationSent
	if sendErr != nil {
		status = models.NotificationFailed
	}
	notification := &models.Notification{
		Type:    kind,
		Subject: subject,
		Message: message,
		Status:  status,
		SentBy:  sentBy,
		SentAt:  time.Now(),
	}
	if err := s.store.CreateNotification(ctx, notification); err != nil {
		logger.Error().Err(err).Str("type", string(kind)).Msg("Failed to record notification")
	}
}

func toResult(recipient string, err error) dto.SendResult {
	result := dto.SendResult{Recipient: recipient, Sent: err == nil}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}
