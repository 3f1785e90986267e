package cron

import (
	"testing"
	"time"

	"quadras/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type sweepBookingRepo struct {
	expired []models.Booking
	updates map[string]bson.M
}

func (f *sweepBookingRepo) Create(b *models.Booking) error { return nil }
func (f *sweepBookingRepo) UpdateSetDocument(id string, doc bson.M) error {
	if f.updates == nil {
		f.updates = map[string]bson.M{}
	}
	f.updates[id] = doc
	return nil
}
func (f *sweepBookingRepo) GetByID(id string) (*models.Booking, error) { return nil, nil }
func (f *sweepBookingRepo) List(filter models.BookingFilter) ([]models.Booking, int64, error) {
	return nil, 0, nil
}
func (f *sweepBookingRepo) FindActiveSingleOnDate(courtID, date string) ([]models.Booking, error) {
	return nil, nil
}
func (f *sweepBookingRepo) FindActiveSingleInRange(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return nil, nil
}
func (f *sweepBookingRepo) FindActiveMonthlyCovering(courtID, date string) ([]models.Booking, error) {
	return nil, nil
}
func (f *sweepBookingRepo) FindActiveMonthlyOverlapping(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return nil, nil
}
func (f *sweepBookingRepo) CountActiveForUser(userID string) (int64, error) { return 0, nil }
func (f *sweepBookingRepo) FindExpiredWaitingPayment(now time.Time) ([]models.Booking, error) {
	return f.expired, nil
}

type sweepUserRepo struct {
	users map[string]*models.User
}

func (f *sweepUserRepo) Create(u *models.User) error                     { return nil }
func (f *sweepUserRepo) Update(u *models.User) error                     { return nil }
func (f *sweepUserRepo) UpdateSetDocument(id string, doc bson.M) error   { return nil }
func (f *sweepUserRepo) Delete(id string) error                          { return nil }
func (f *sweepUserRepo) GetByID(id string) (*models.User, error)         { return f.users[id], nil }
func (f *sweepUserRepo) GetByEmail(email string) (*models.User, error)   { return nil, nil }
func (f *sweepUserRepo) GetByUsername(name string) (*models.User, error) { return nil, nil }
func (f *sweepUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.users[id], nil
}
func (f *sweepUserRepo) List(role, search string, page, perPage int) ([]models.User, int64, error) {
	return nil, 0, nil
}

type sweepNotifier struct {
	events []models.NotificationPayload
}

func (f *sweepNotifier) Notify(payload models.NotificationPayload) error {
	f.events = append(f.events, payload)
	return nil
}

func TestSweepCancelsExpiredBookings(t *testing.T) {
	bookings := &sweepBookingRepo{
		expired: []models.Booking{
			{
				ID: "b1", UserID: "u1",
				BookingType: models.BookingSingle,
				Timeslot:    &models.BookingTimeslot{Date: "2026-09-10", StartTime: "19:00", EndTime: "21:00"},
				Status:      models.StatusWaitingPayment,
			},
			{
				ID: "b2", UserID: "u2",
				BookingType: models.BookingSingle,
				Timeslot:    &models.BookingTimeslot{Date: "2026-09-12", StartTime: "10:00", EndTime: "11:00"},
				Status:      models.StatusWaitingPayment,
			},
		},
	}
	notifier := &sweepNotifier{}
	sweeper := &DeadlineSweeper{
		Bookings: bookings,
		Users: &sweepUserRepo{users: map[string]*models.User{
			"u1": {ID: "u1", FirstName: "Ana", LastName: "Souza", Email: "ana@example.com"},
		}},
		Notifier: notifier,
	}

	sweeper.Sweep()

	require.Len(t, bookings.updates, 2)
	assert.Equal(t, models.StatusCancelled, bookings.updates["b1"]["status"])
	assert.Equal(t, "Cancelled: payment deadline expired", bookings.updates["b1"]["notes"])
	assert.Equal(t, models.StatusCancelled, bookings.updates["b2"]["status"])

	// Only u1 exists, so only one notification goes out.
	require.Len(t, notifier.events, 1)
	assert.Equal(t, models.EventBookingCancelled, notifier.events[0].Event)
	assert.Equal(t, "ana@example.com", notifier.events[0].Email)
	assert.Equal(t, "payment deadline expired", notifier.events[0].Reason)
}

func TestSweepWithNothingExpired(t *testing.T) {
	bookings := &sweepBookingRepo{}
	sweeper := &DeadlineSweeper{Bookings: bookings, Users: &sweepUserRepo{}}

	sweeper.Sweep()
	assert.Empty(t, bookings.updates)
}
