package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"cleanhaven/config"
	"cleanhaven/models"
	"cleanhaven/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "reminder:send"

// reminderLeadTime is how long before the scheduled clean the reminder
// fires.
const reminderLeadTime = 24 * time.Hour

// NewReminderTask builds the asynq task for a reminder payload, scheduled
// to run at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
	}
	return asynq.NewTask(TypeReminderSend, data), opts, nil
}

// ReminderService enqueues cleaning-day reminders on the asynq queue.
type ReminderService struct {
	client *asynq.Client
}

// NewReminderService connects an asynq client to the reminder queue DB.
func NewReminderService() *ReminderService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderService{client: client}
}

// ScheduleReminder enqueues a reminder to fire the day before the
// booking's scheduled date. Bookings less than a day away get no
// reminder.
func (s *ReminderService) ScheduleReminder(booking models.Booking) error {
	logger := utils.GetLogger()

	scheduled, err := time.Parse("2006-01-02", booking.ScheduledDate)
	if err != nil {
		return fmt.Errorf("cannot parse scheduled date %q: %w", booking.ScheduledDate, err)
	}
	fireAt := scheduled.Add(-reminderLeadTime)
	if fireAt.Before(time.Now()) {
		logger.Debug("booking too soon for a reminder",
			zap.String("reference", booking.Reference))
		return nil
	}

	payload := models.ReminderPayload{
		BookingReference: booking.Reference,
		CustomerID:       booking.CustomerID,
		Email:            booking.Email,
		Title:            "Your clean is tomorrow",
		Body: fmt.Sprintf("Reminder: your %s clean is scheduled for %s at %s.",
			booking.ServiceType, booking.ScheduledDate, booking.ScheduledTime),
		FireDate: fireAt.Format(time.RFC3339),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	info, err := s.client.Enqueue(task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	logger.Info("cleaning reminder scheduled",
		zap.String("reference", booking.Reference),
		zap.String("taskID", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

// Close releases the underlying asynq client.
func (s *ReminderService) Close() error {
	return s.client.Close()
}
