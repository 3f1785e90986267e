package notification

import (
	"encoding/json"
	"fmt"
	"time"

	"quadras/models"
	"quadras/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeNotifyEvent is the asynq task type for outbound notifications.
const TypeNotifyEvent = "notification:event"

// Enqueuer implements Notifier on top of an asynq client backed by Redis.
type Enqueuer struct {
	Client *asynq.Client
}

// NewEnqueuer creates a Notifier that queues tasks on the given client.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{Client: client}
}

// Notify marshals the payload and queues it for the notification worker.
func (e *Enqueuer) Notify(payload models.NotificationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	task := asynq.NewTask(TypeNotifyEvent, body)
	info, err := e.Client.Enqueue(task,
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
		asynq.Queue("notifications"),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	utils.GetLogger().Debug("notification queued",
		zap.String("task_id", info.ID),
		zap.String("event", string(payload.Event)))
	return nil
}
