package models

import "time"

// PaymentMethod is how a booking is paid.
type PaymentMethod string

const (
	MethodPix        PaymentMethod = "pix"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodOnSite     PaymentMethod = "on_site"
)

// PaymentStatus tracks a charge through the gateway.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
	PaymentRefunded PaymentStatus = "refunded"
)

// CardData is the credit-card payload accepted from clients: a gateway token
// and the displayable last four digits. Raw card numbers are never accepted.
type CardData struct {
	Token        string `json:"token" binding:"required"`
	Last4        string `json:"last4"`
	Installments int    `json:"installments"`
}

// PaymentCreate is the POST /payments payload.
type PaymentCreate struct {
	BookingID     string        `json:"booking_id" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	Amount        float64       `json:"amount" binding:"required"`
	CardData      *CardData     `json:"card_data,omitempty"`
}

// Payment is the persisted charge record.
type Payment struct {
	ID            string        `bson:"id" json:"id"`
	BookingID     string        `bson:"booking_id" json:"booking_id"`
	UserID        string        `bson:"user_id" json:"user_id"`
	ArenaID       string        `bson:"arena_id" json:"arena_id"`
	PaymentMethod PaymentMethod `bson:"payment_method" json:"payment_method"`
	Amount        float64       `bson:"amount" json:"amount"`
	Status        PaymentStatus `bson:"status" json:"status"`
	GatewayID     string        `bson:"gateway_id,omitempty" json:"gateway_id,omitempty"`

	PixQRCode       string `bson:"pix_qrcode,omitempty" json:"pix_qrcode,omitempty"`
	PixCopyPaste    string `bson:"pix_copy_paste,omitempty" json:"pix_copy_paste,omitempty"`
	CreditCardLast4 string `bson:"credit_card_last4,omitempty" json:"credit_card_last4,omitempty"`

	PaymentDate *time.Time `bson:"payment_date,omitempty" json:"payment_date,omitempty"`
	ExpiresAt   *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`

	// Attached on reads, never stored.
	Booking *BookingRef `bson:"-" json:"booking,omitempty"`
}

// BookingRef is the booking summary embedded in payment reads.
type BookingRef struct {
	ID          string        `json:"id"`
	Status      BookingStatus `json:"status"`
	TotalAmount float64       `json:"total_amount"`
	Court       *CourtRef     `json:"court,omitempty"`
	Arena       *ArenaRef     `json:"arena,omitempty"`
}

// GatewayWebhook is the payload the payment gateway posts back.
type GatewayWebhook struct {
	Action string `json:"action"`
	Data   struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"data"`
}

// BookingPaymentStatus is the GET /bookings/{id}/payment-status response.
type BookingPaymentStatus struct {
	BookingID       string        `json:"booking_id"`
	Status          BookingStatus `json:"status"`
	RequiresPayment bool          `json:"requires_payment"`
	PaymentDeadline *time.Time    `json:"payment_deadline,omitempty"`
	Payment         *Payment      `json:"payment"`
}
