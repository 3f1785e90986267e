package cron

import (
	"quadras/config"
	"quadras/services/notification"
	"quadras/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewTaskClient creates the asynq client used to enqueue background tasks.
func NewTaskClient() *asynq.Client {
	return asynq.NewClient(taskRedisOpt())
}

func taskRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}

// StartNotificationWorker runs the asynq server that delivers queued
// notifications. It returns the server so main can shut it down.
func StartNotificationWorker() *asynq.Server {
	srv := asynq.NewServer(taskRedisOpt(), asynq.Config{
		Concurrency: 5,
		Queues: map[string]int{
			"notifications": 5,
			"default":       1,
		},
	})

	dispatcher := &notification.Dispatcher{
		Email:    notification.NewEmailSender(),
		WhatsApp: notification.NewWhatsAppSender(),
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotifyEvent, dispatcher.HandleNotifyEvent)

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("notification worker stopped", zap.Error(err))
		}
	}()

	utils.GetLogger().Info("notification worker started")
	return srv
}
