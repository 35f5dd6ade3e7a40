package tasks

import (
	"encoding/json"
	"testing"
	"time"

	"cleanhaven/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReminderTask(t *testing.T) {
	fireAt := time.Now().Add(48 * time.Hour)
	payload := models.ReminderPayload{
		BookingReference: "CH-AB12CD34",
		Email:            "thandi@example.com",
		Title:            "Your clean is tomorrow",
		Body:             "Reminder body",
		FireDate:         fireAt.Format(time.RFC3339),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	require.NoError(t, err)
	assert.Equal(t, TypeReminderSend, task.Type())
	assert.NotEmpty(t, opts)

	var decoded models.ReminderPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, payload, decoded)
}

func TestScheduleReminder_SkipsImminentBookings(t *testing.T) {
	// No asynq client needed: both paths return before enqueueing.
	svc := &ReminderService{client: &asynq.Client{}}

	tomorrow := models.Booking{
		Reference:     "CH-AB12CD34",
		ScheduledDate: time.Now().Format("2006-01-02"),
		ScheduledTime: "09:00",
	}
	assert.NoError(t, svc.ScheduleReminder(tomorrow))

	unparseable := models.Booking{
		Reference:     "CH-AB12CD34",
		ScheduledDate: "next tuesday",
	}
	assert.Error(t, svc.ScheduleReminder(unparseable))
}
