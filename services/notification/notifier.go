package notification

import "quadras/models"

// Notifier queues an outbound notification for asynchronous delivery.
// Delivery failures never fail the triggering request.
type Notifier interface {
	Notify(payload models.NotificationPayload) error
}
