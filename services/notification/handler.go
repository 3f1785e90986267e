package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"quadras/models"
	"quadras/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher renders notification payloads and fans them out over the
// configured channels. It is the asynq-side counterpart of Enqueuer.
type Dispatcher struct {
	Email    *EmailSender
	WhatsApp *WhatsAppSender
}

// HandleNotifyEvent processes one queued notification task.
func (d *Dispatcher) HandleNotifyEvent(ctx context.Context, t *asynq.Task) error {
	var payload models.NotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal notification payload: %v: %w", err, asynq.SkipRetry)
	}

	subject, body := renderMessage(&payload)
	logger := utils.GetLogger()

	if payload.Email != "" && d.Email != nil {
		if err := d.Email.Send(ctx, payload.Email, subject, body); err != nil {
			logger.Error("email delivery failed",
				zap.String("event", string(payload.Event)),
				zap.Error(err))
			return err
		}
	}
	if payload.Phone != "" && d.WhatsApp != nil {
		if err := d.WhatsApp.Send(ctx, payload.Phone, body); err != nil {
			// WhatsApp is best effort; email already went out.
			logger.Warn("whatsapp delivery failed",
				zap.String("event", string(payload.Event)),
				zap.Error(err))
		}
	}
	return nil
}

// renderMessage builds the subject and body for a notification event.
func renderMessage(p *models.NotificationPayload) (subject, body string) {
	where := p.CourtName
	if p.ArenaName != "" {
		where = fmt.Sprintf("%s at %s", p.CourtName, p.ArenaName)
	}
	when := p.Date
	if p.Time != "" {
		when = fmt.Sprintf("%s, %s", p.Date, p.Time)
	}

	switch p.Event {
	case models.EventBookingRequested:
		subject = "New booking request"
		body = fmt.Sprintf("Hi %s, you have a new booking request for %s on %s.",
			p.Recipient, where, when)
	case models.EventBookingConfirmed:
		subject = "Booking confirmed"
		body = fmt.Sprintf("Hi %s, your booking for %s on %s is confirmed.",
			p.Recipient, where, when)
	case models.EventBookingCancelled:
		subject = "Booking cancelled"
		body = fmt.Sprintf("Hi %s, your booking for %s on %s was cancelled.",
			p.Recipient, where, when)
		if p.Reason != "" {
			body += " Reason: " + p.Reason
		}
	case models.EventPaymentApproved:
		subject = "Payment received"
		body = fmt.Sprintf("Hi %s, we received your %s payment of %.2f for %s on %s.",
			p.Recipient, p.Method, p.Amount, where, when)
	default:
		subject = "Notification"
		body = fmt.Sprintf("Hi %s, there is an update on your booking %s.",
			p.Recipient, p.BookingID)
	}
	return subject, body
}
