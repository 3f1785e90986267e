package models

// NotificationEvent is what happened, for templating the outbound message.
type NotificationEvent string

const (
	EventBookingRequested NotificationEvent = "booking_requested"
	EventBookingConfirmed NotificationEvent = "booking_confirmed"
	EventBookingCancelled NotificationEvent = "booking_cancelled"
	EventPaymentApproved  NotificationEvent = "payment_approved"
)

// NotificationPayload is the task body queued for asynchronous delivery.
type NotificationPayload struct {
	Event     NotificationEvent `json:"event"`
	Email     string            `json:"email,omitempty"`
	Phone     string            `json:"phone,omitempty"`
	Recipient string            `json:"recipient"` // display name

	CourtName string  `json:"court_name,omitempty"`
	ArenaName string  `json:"arena_name,omitempty"`
	Date      string  `json:"date,omitempty"`
	Time      string  `json:"time,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Method    string  `json:"method,omitempty"`
	Reason    string  `json:"reason,omitempty"`
	BookingID string  `json:"booking_id,omitempty"`
}
