package booking

import "quadras/models"

// BookingService is the application surface for reservations: creation with
// server-side pricing and conflict checks, reads gated by ownership, the
// status state machine, cancellation and slot availability.
type BookingService interface {
	Create(actor models.Actor, req *models.BookingCreate) (*models.Booking, error)
	Get(actor models.Actor, id string) (*models.Booking, error)
	ListForUser(userID, status string, page, perPage int) (*models.PaginatedBookings, error)
	ListForArena(actor models.Actor, filter models.BookingFilter) (*models.PaginatedBookings, error)
	UpdateStatus(actor models.Actor, id string, update *models.BookingStatusUpdate) (*models.Booking, error)
	Cancel(actor models.Actor, id string, req *models.BookingCancellation) (*models.Booking, error)
	Availability(courtID, startDate, endDate string) (models.Availability, error)
	PaymentStatus(actor models.Actor, id string) (*models.BookingPaymentStatus, error)
}
