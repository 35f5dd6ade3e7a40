package notification

import (
	"context"
	"fmt"

	"cleanhaven/database/repository"
	"cleanhaven/models"
	"cleanhaven/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error
	SendCustomerPush(ctx context.Context, email, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	customers repository.CustomerRepository
}

func NewDefaultNotificationService(customers repository.CustomerRepository) (*DefaultNotificationService, error) {
	if customers == nil {
		return nil, fmt.Errorf("notification service initialization error: customer repository is nil")
	}
	return &DefaultNotificationService{customers: customers}, nil
}

// NotifyBookingConfirmed pushes the confirmation to the customer who made
// the booking, matched by email. Guests without an account get nothing.
func (s *DefaultNotificationService) NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error {
	title := "Booking confirmed"
	body := fmt.Sprintf("Your %s clean on %s at %s is confirmed. Reference %s.",
		booking.ServiceType, booking.ScheduledDate, booking.ScheduledTime, booking.Reference)
	data := map[string]string{
		"reference":     booking.Reference,
		"scheduledDate": booking.ScheduledDate,
		"type":          "booking_confirmed",
	}
	return s.SendCustomerPush(ctx, booking.Email, title, body, data)
}

// SendCustomerPush looks up a customer's FCM token by email and sends a
// push.
func (s *DefaultNotificationService) SendCustomerPush(ctx context.Context, email, title, body string, data map[string]string) error {
	cust, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("SendCustomerPush: could not find customer %s: %w", email, err)
	}
	if cust.FCMToken == "" {
		return fmt.Errorf("SendCustomerPush: customer %s has no FCM token", email)
	}

	if utils.FCMClient == nil {
		return fmt.Errorf("SendCustomerPush: FCM client not initialized")
	}

	msg := &messaging.Message{
		Token: cust.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	resp, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendCustomerPush: send failed: %w", err)
	}
	utils.GetLogger().Info("push notification sent",
		zap.String("email", email),
		zap.String("messageID", resp))
	return nil
}
