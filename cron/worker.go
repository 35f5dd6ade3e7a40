package cron

import (
	"context"
	"encoding/json"
	"time"

	"cleanhaven/config"
	"cleanhaven/models"
	"cleanhaven/services/notification"
	"cleanhaven/services/tasks"
	"cleanhaven/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService) {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReminderSend, handleReminderTask(notifSvc))

	go func() {
		logger.Info("starting reminder worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("reminder worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))
				if attempts == maxAttempts {
					logger.Fatal("reminder worker exhausted retries")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		logger.Info("firing cleaning reminder",
			zap.String("reference", p.BookingReference),
			zap.String("email", p.Email))

		data := map[string]string{
			"reference": p.BookingReference,
			"fireDate":  p.FireDate,
			"type":      "cleaning_reminder",
		}
		if err := notifSvc.SendCustomerPush(ctx, p.Email, p.Title, p.Body, data); err != nil {
			logger.Warn("reminder push failed",
				zap.String("reference", p.BookingReference), zap.Error(err))
			return err
		}
		return nil
	}
}
