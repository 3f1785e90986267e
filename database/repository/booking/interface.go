package bookingRepo

import (
	"time"

	"quadras/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines persistence operations for bookings.
//
// The Find* methods return candidate bookings for conflict and availability
// checks; overlap decisions are made by the caller so they stay testable
// without a database.
type BookingRepository interface {
	Create(booking *models.Booking) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	GetByID(id string) (*models.Booking, error)
	List(filter models.BookingFilter) ([]models.Booking, int64, error)

	// FindActiveSingleOnDate returns slot-holding single bookings for a court
	// on one calendar date.
	FindActiveSingleOnDate(courtID, date string) ([]models.Booking, error)
	// FindActiveSingleInRange returns slot-holding single bookings for a court
	// with dates in [startDate, endDate]; a nil endDate leaves the range open.
	FindActiveSingleInRange(courtID, startDate string, endDate *string) ([]models.Booking, error)
	// FindActiveMonthlyCovering returns slot-holding monthly bookings whose
	// recurrence range includes the given date.
	FindActiveMonthlyCovering(courtID, date string) ([]models.Booking, error)
	// FindActiveMonthlyOverlapping returns slot-holding monthly bookings whose
	// recurrence range intersects [startDate, endDate].
	FindActiveMonthlyOverlapping(courtID, startDate string, endDate *string) ([]models.Booking, error)

	CountActiveForUser(userID string) (int64, error)
	// FindExpiredWaitingPayment returns bookings still waiting for payment past
	// their deadline, for the cancellation sweep.
	FindExpiredWaitingPayment(now time.Time) ([]models.Booking, error)
}
