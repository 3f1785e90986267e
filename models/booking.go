package models

import "time"

// BookingType distinguishes one-off slots from monthly recurrences.
type BookingType string

const (
	BookingSingle  BookingType = "single"
	BookingMonthly BookingType = "monthly"
)

// BookingStatus is the booking state machine's state.
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"         // waiting for arena confirmation
	StatusWaitingPayment BookingStatus = "waiting_payment" // created, payment outstanding
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusCompleted      BookingStatus = "completed"
)

// ActiveBookingStatuses are the states that occupy court time.
var ActiveBookingStatuses = []BookingStatus{StatusPending, StatusWaitingPayment, StatusConfirmed}

// BookingTimeslot is a single-occurrence window: one calendar date plus a
// same-day "HH:MM" range with start < end.
type BookingTimeslot struct {
	Date      string `bson:"date" json:"date"` // YYYY-MM-DD
	StartTime string `bson:"start_time" json:"start_time"`
	EndTime   string `bson:"end_time" json:"end_time"`
}

// MonthlyBookingConfig is a recurring pattern: selected weekdays (0 = Monday)
// with a fixed time range, from start_date until end_date (open-ended when nil).
type MonthlyBookingConfig struct {
	Weekdays  []int   `bson:"weekdays" json:"weekdays"`
	StartTime string  `bson:"start_time" json:"start_time"`
	EndTime   string  `bson:"end_time" json:"end_time"`
	StartDate string  `bson:"start_date" json:"start_date"`
	EndDate   *string `bson:"end_date,omitempty" json:"end_date,omitempty"`
}

// ExtraServiceSelection is the client's request line: a service and a quantity.
// Prices are resolved server-side from the catalogue.
type ExtraServiceSelection struct {
	ServiceID string `json:"service_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// BookingExtraService is a priced line on a persisted booking.
type BookingExtraService struct {
	ServiceID  string  `bson:"service_id" json:"service_id"`
	Name       string  `bson:"name" json:"name"`
	Quantity   int     `bson:"quantity" json:"quantity"`
	UnitPrice  float64 `bson:"unit_price" json:"unit_price"`
	TotalPrice float64 `bson:"total_price" json:"total_price"`
}

// BookingCreate is the POST /bookings payload. Exactly one of Timeslot /
// MonthlyConfig must be set, matching BookingType.
type BookingCreate struct {
	CourtID       string                  `json:"court_id" binding:"required"`
	BookingType   BookingType             `json:"booking_type" binding:"required"`
	Timeslot      *BookingTimeslot        `json:"timeslot,omitempty"`
	MonthlyConfig *MonthlyBookingConfig   `json:"monthly_config,omitempty"`
	ExtraServices []ExtraServiceSelection `json:"extra_services,omitempty"`
}

// Booking is the persisted reservation record.
type Booking struct {
	ID            string                `bson:"id" json:"id"`
	UserID        string                `bson:"user_id" json:"user_id"`
	CourtID       string                `bson:"court_id" json:"court_id"`
	ArenaID       string                `bson:"arena_id" json:"arena_id"`
	BookingType   BookingType           `bson:"booking_type" json:"booking_type"`
	Timeslot      *BookingTimeslot      `bson:"timeslot,omitempty" json:"timeslot,omitempty"`
	MonthlyConfig *MonthlyBookingConfig `bson:"monthly_config,omitempty" json:"monthly_config,omitempty"`
	Status        BookingStatus         `bson:"status" json:"status"`

	PricePerHour   float64               `bson:"price_per_hour" json:"price_per_hour"`
	TotalHours     float64               `bson:"total_hours" json:"total_hours"`
	Subtotal       float64               `bson:"subtotal" json:"subtotal"`
	ExtraServices  []BookingExtraService `bson:"extra_services" json:"extra_services"`
	DiscountAmount float64               `bson:"discount_amount" json:"discount_amount"`
	TotalAmount    float64               `bson:"total_amount" json:"total_amount"`

	RequiresPayment bool       `bson:"requires_payment" json:"requires_payment"`
	PaymentDeadline *time.Time `bson:"payment_deadline,omitempty" json:"payment_deadline,omitempty"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`

	// Denormalized context attached on reads, never stored.
	Court *CourtRef `bson:"-" json:"court,omitempty"`
	Arena *ArenaRef `bson:"-" json:"arena,omitempty"`
	User  *UserRef  `bson:"-" json:"user,omitempty"`
}

// CourtRef, ArenaRef and UserRef are the summary shapes embedded in booking reads.
type CourtRef struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Type CourtType `json:"type"`
}

type ArenaRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// DateStr returns the booking's display date: the slot date for single
// bookings, the recurrence start for monthly ones.
func (b *Booking) DateStr() string {
	if b.BookingType == BookingSingle && b.Timeslot != nil {
		return b.Timeslot.Date
	}
	if b.MonthlyConfig != nil {
		return b.MonthlyConfig.StartDate
	}
	return ""
}

// TimeStr returns the booking's display time range.
func (b *Booking) TimeStr() string {
	if b.BookingType == BookingSingle && b.Timeslot != nil {
		return b.Timeslot.StartTime + " - " + b.Timeslot.EndTime
	}
	if b.MonthlyConfig != nil {
		return b.MonthlyConfig.StartTime + " - " + b.MonthlyConfig.EndTime
	}
	return ""
}

// BookingStatusUpdate is the PUT /bookings/{id}/status payload.
type BookingStatusUpdate struct {
	Status BookingStatus `json:"status" binding:"required"`
	Notes  string        `json:"notes,omitempty"`
}

// BookingCancellation is the POST /bookings/{id}/cancel payload.
type BookingCancellation struct {
	Reason        string `json:"reason,omitempty"`
	RequestRefund bool   `json:"request_refund"`
}

// BookingFilter is the query surface of booking listings.
type BookingFilter struct {
	UserID       string
	ArenaID      string
	CourtID      string
	Status       string
	Page         int
	ItemsPerPage int
}

// PaginatedBookings is the admin/user listing envelope.
type PaginatedBookings struct {
	Bookings     []Booking `json:"bookings"`
	TotalPages   int       `json:"total_pages"`
	CurrentPage  int       `json:"current_page"`
	TotalItems   int       `json:"total_items"`
	ItemsPerPage int       `json:"items_per_page"`
}
