package booking

import (
	"testing"
	"time"

	"quadras/models"
	"quadras/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// In-memory fakes over the repository interfaces. The Find* fields are
// returned verbatim so conflict scenarios can be staged directly.

type fakeBookingRepo struct {
	stored      map[string]*models.Booking
	singles     []models.Booking
	monthlies   []models.Booking
	activeCount int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{stored: map[string]*models.Booking{}}
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	f.stored[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	b := f.stored[id]
	if b == nil {
		return nil
	}
	if status, ok := updateDoc["status"].(models.BookingStatus); ok {
		b.Status = status
	}
	if notes, ok := updateDoc["notes"].(string); ok {
		b.Notes = notes
	}
	return nil
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	return f.stored[id], nil
}

func (f *fakeBookingRepo) List(filter models.BookingFilter) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range f.stored {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.ArenaID != "" && b.ArenaID != filter.ArenaID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) FindActiveSingleOnDate(courtID, date string) ([]models.Booking, error) {
	return f.singles, nil
}

func (f *fakeBookingRepo) FindActiveSingleInRange(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return f.singles, nil
}

func (f *fakeBookingRepo) FindActiveMonthlyCovering(courtID, date string) ([]models.Booking, error) {
	return f.monthlies, nil
}

func (f *fakeBookingRepo) FindActiveMonthlyOverlapping(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return f.monthlies, nil
}

func (f *fakeBookingRepo) CountActiveForUser(userID string) (int64, error) {
	return f.activeCount, nil
}

func (f *fakeBookingRepo) FindExpiredWaitingPayment(now time.Time) ([]models.Booking, error) {
	return nil, nil
}

type fakeCourtRepo struct {
	courts map[string]*models.Court
}

func (f *fakeCourtRepo) Create(c *models.Court) error                       { return nil }
func (f *fakeCourtRepo) UpdateSetDocument(id string, doc bson.M) error      { return nil }
func (f *fakeCourtRepo) Delete(id string) error                             { return nil }
func (f *fakeCourtRepo) GetByID(id string) (*models.Court, error)           { return f.courts[id], nil }
func (f *fakeCourtRepo) ListByArena(arenaID string) ([]models.Court, error) { return nil, nil }
func (f *fakeCourtRepo) List(filter models.CourtFilter, arenaIDs []string) ([]models.Court, int64, error) {
	return nil, 0, nil
}

type fakeArenaRepo struct {
	arenas map[string]*models.Arena
}

func (f *fakeArenaRepo) Create(a *models.Arena) error                        { return nil }
func (f *fakeArenaRepo) UpdateSetDocument(id string, doc bson.M) error       { return nil }
func (f *fakeArenaRepo) Delete(id string) error                              { return nil }
func (f *fakeArenaRepo) GetByID(id string) (*models.Arena, error)            { return f.arenas[id], nil }
func (f *fakeArenaRepo) ListByOwner(ownerID string) ([]models.Arena, error)  { return nil, nil }
func (f *fakeArenaRepo) ApplyRating(id string, rating float64) error         { return nil }
func (f *fakeArenaRepo) List(filter models.ArenaFilter) ([]models.Arena, int64, error) {
	return nil, 0, nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(u *models.User) error                    { return nil }
func (f *fakeUserRepo) Update(u *models.User) error                    { return nil }
func (f *fakeUserRepo) UpdateSetDocument(id string, doc bson.M) error  { return nil }
func (f *fakeUserRepo) Delete(id string) error                         { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error)        { return f.users[id], nil }
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error)  { return nil, nil }
func (f *fakeUserRepo) GetByUsername(name string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) List(role, search string, page, perPage int) ([]models.User, int64, error) {
	return nil, 0, nil
}

type fakeExtraRepo struct {
	catalogue []models.ExtraService
}

func (f *fakeExtraRepo) Create(s *models.ExtraService) error              { return nil }
func (f *fakeExtraRepo) UpdateSetDocument(id string, doc bson.M) error    { return nil }
func (f *fakeExtraRepo) Delete(id string) error                           { return nil }
func (f *fakeExtraRepo) GetByID(id string) (*models.ExtraService, error)  { return nil, nil }
func (f *fakeExtraRepo) GetByIDs(ids []string) ([]models.ExtraService, error) {
	return f.catalogue, nil
}
func (f *fakeExtraRepo) ListByArena(arenaID string) ([]models.ExtraService, error) {
	return f.catalogue, nil
}

type fakePaymentRepo struct {
	open    *models.Payment
	latest  *models.Payment
	updates map[string]bson.M
}

func (f *fakePaymentRepo) Create(p *models.Payment) error { return nil }
func (f *fakePaymentRepo) UpdateSetDocument(id string, doc bson.M) error {
	if f.updates == nil {
		f.updates = map[string]bson.M{}
	}
	f.updates[id] = doc
	return nil
}
func (f *fakePaymentRepo) GetByID(id string) (*models.Payment, error)        { return nil, nil }
func (f *fakePaymentRepo) GetByGatewayID(id string) (*models.Payment, error) { return nil, nil }
func (f *fakePaymentRepo) GetOpenForBooking(bookingID string) (*models.Payment, error) {
	return f.open, nil
}
func (f *fakePaymentRepo) GetLatestForBooking(bookingID string) (*models.Payment, error) {
	return f.latest, nil
}
func (f *fakePaymentRepo) ListForArena(arenaID string, page, perPage int) ([]models.Payment, int64, error) {
	return nil, 0, nil
}

type fakeNotifier struct {
	events []models.NotificationPayload
}

func (f *fakeNotifier) Notify(payload models.NotificationPayload) error {
	f.events = append(f.events, payload)
	return nil
}

// bookingFixture wires a service around one active arena with a Thursday
// evening window and one available court.
type bookingFixture struct {
	svc      *DefaultBookingService
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	notifier *fakeNotifier
	arena    *models.Arena
	court    *models.Court
	now      time.Time
}

func newBookingFixture() *bookingFixture {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	arena := &models.Arena{
		ID:      "a1",
		OwnerID: "owner1",
		Name:    "Arena Central",
		Active:  true,
		BusinessHours: models.WeeklySchedule{
			Thursday: []models.HourRange{{Start: "18:00", End: "23:00"}},
		},
		AdvancePaymentRequired: true,
		PaymentDeadlineHours:   48,
	}
	court := &models.Court{
		ID:                  "c1",
		ArenaID:             "a1",
		Name:                "Quadra 1",
		Type:                models.CourtFutsal,
		PricePerHour:        100,
		MinimumBookingHours: 1,
		IsAvailable:         true,
	}
	bookings := newFakeBookingRepo()
	payments := &fakePaymentRepo{}
	notifier := &fakeNotifier{}
	svc := &DefaultBookingService{
		Bookings: bookings,
		Courts:   &fakeCourtRepo{courts: map[string]*models.Court{court.ID: court}},
		Arenas:   &fakeArenaRepo{arenas: map[string]*models.Arena{arena.ID: arena}},
		Users: &fakeUserRepo{users: map[string]*models.User{
			"u1":     {ID: "u1", FirstName: "Ana", LastName: "Souza", Email: "ana@example.com"},
			"owner1": {ID: "owner1", FirstName: "Bruno", LastName: "Lima", Email: "bruno@example.com"},
		}},
		Extras:   &fakeExtraRepo{},
		Payments: payments,
		Notifier: notifier,
		Now:      func() time.Time { return now },
	}
	return &bookingFixture{
		svc:      svc,
		bookings: bookings,
		payments: payments,
		notifier: notifier,
		arena:    arena,
		court:    court,
		now:      now,
	}
}

func singleRequest() *models.BookingCreate {
	// 2026-09-10 is a Thursday, inside the fixture's opening window.
	return &models.BookingCreate{
		CourtID:     "c1",
		BookingType: models.BookingSingle,
		Timeslot:    &models.BookingTimeslot{Date: "2026-09-10", StartTime: "19:00", EndTime: "21:00"},
	}
}

var customer = models.Actor{ID: "u1", Role: models.RoleCustomer}
var owner = models.Actor{ID: "owner1", Role: models.RoleArenaOwner}

func TestCreateBookingWaitsForPayment(t *testing.T) {
	fx := newBookingFixture()

	b, err := fx.svc.Create(customer, singleRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusWaitingPayment, b.Status)
	assert.True(t, b.RequiresPayment)
	require.NotNil(t, b.PaymentDeadline)
	assert.Equal(t, fx.now.Add(48*time.Hour), *b.PaymentDeadline)
	assert.Equal(t, 200.0, b.TotalAmount)
	assert.Equal(t, "u1", b.UserID)
	assert.Equal(t, "a1", b.ArenaID)

	require.Len(t, fx.notifier.events, 1)
	assert.Equal(t, models.EventBookingRequested, fx.notifier.events[0].Event)
	assert.Equal(t, "bruno@example.com", fx.notifier.events[0].Email)
}

func TestCreateBookingCourtOverridesAdvancePayment(t *testing.T) {
	fx := newBookingFixture()
	noAdvance := false
	fx.court.AdvancePaymentRequired = &noAdvance

	b, err := fx.svc.Create(customer, singleRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, b.Status)
	assert.False(t, b.RequiresPayment)
	assert.Nil(t, b.PaymentDeadline)
}

func TestCreateBookingSlotConflict(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.singles = []models.Booking{{
		BookingType: models.BookingSingle,
		Status:      models.StatusConfirmed,
		Timeslot:    &models.BookingTimeslot{Date: "2026-09-10", StartTime: "20:00", EndTime: "22:00"},
	}}

	_, err := fx.svc.Create(customer, singleRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreateBookingMonthlyConflict(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.monthlies = []models.Booking{{
		BookingType: models.BookingMonthly,
		Status:      models.StatusPending,
		MonthlyConfig: &models.MonthlyBookingConfig{
			Weekdays:  []int{3},
			StartTime: "19:00",
			EndTime:   "20:00",
			StartDate: "2026-09-03",
		},
	}}

	_, err := fx.svc.Create(customer, singleRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestCreateBookingTooManyActive(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.activeCount = utils.MaxActiveBookingsPerUser

	_, err := fx.svc.Create(customer, singleRequest())
	assert.ErrorIs(t, err, ErrTooManyActive)
}

func TestCreateBookingOutsideBusinessHours(t *testing.T) {
	fx := newBookingFixture()
	req := singleRequest()
	req.Timeslot.StartTime = "08:00"
	req.Timeslot.EndTime = "09:00"

	_, err := fx.svc.Create(customer, req)
	assert.ErrorIs(t, err, ErrOutsideHours)
}

func TestCreateBookingInactiveArena(t *testing.T) {
	fx := newBookingFixture()
	fx.arena.Active = false

	_, err := fx.svc.Create(customer, singleRequest())
	assert.ErrorIs(t, err, ErrArenaInactive)
}

func TestCreateBookingCourtUnavailable(t *testing.T) {
	fx := newBookingFixture()
	fx.court.IsAvailable = false

	_, err := fx.svc.Create(customer, singleRequest())
	assert.ErrorIs(t, err, ErrCourtUnavailable)
}

func TestCreateBookingUnknownCourt(t *testing.T) {
	fx := newBookingFixture()
	req := singleRequest()
	req.CourtID = "missing"

	_, err := fx.svc.Create(customer, req)
	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestUpdateStatusConfirm(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		BookingType: models.BookingSingle,
		Timeslot:    &models.BookingTimeslot{Date: "2026-09-10", StartTime: "19:00", EndTime: "21:00"},
		Status:      models.StatusPending,
	}

	b, err := fx.svc.UpdateStatus(owner, "b1", &models.BookingStatusUpdate{Status: models.StatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)

	require.Len(t, fx.notifier.events, 1)
	assert.Equal(t, models.EventBookingConfirmed, fx.notifier.events[0].Event)
	assert.Equal(t, "ana@example.com", fx.notifier.events[0].Email)
}

func TestUpdateStatusCustomerCannotConfirm(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		Status: models.StatusPending,
	}

	_, err := fx.svc.UpdateStatus(customer, "b1", &models.BookingStatusUpdate{Status: models.StatusConfirmed})
	assert.ErrorIs(t, err, ErrNotPermitted)
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		Status: models.StatusPending,
	}

	_, err := fx.svc.UpdateStatus(owner, "b1", &models.BookingStatusUpdate{Status: models.StatusCompleted})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelByCustomerNotifiesOwner(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		BookingType: models.BookingSingle,
		Timeslot:    &models.BookingTimeslot{Date: "2026-09-10", StartTime: "19:00", EndTime: "21:00"},
		Status:      models.StatusConfirmed,
	}

	b, err := fx.svc.Cancel(customer, "b1", &models.BookingCancellation{Reason: "heavy rain"})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, b.Status)
	assert.Equal(t, "Cancelled: heavy rain", b.Notes)
	assert.Equal(t, models.StatusCancelled, fx.bookings.stored["b1"].Status)

	require.Len(t, fx.notifier.events, 1)
	assert.Equal(t, models.EventBookingCancelled, fx.notifier.events[0].Event)
	assert.Equal(t, "bruno@example.com", fx.notifier.events[0].Email)
	assert.Equal(t, "heavy rain", fx.notifier.events[0].Reason)
}

func TestCancelWithRefundFlagsApprovedPayment(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		Status: models.StatusConfirmed,
	}
	fx.payments.open = &models.Payment{ID: "p1", BookingID: "b1", Status: models.PaymentApproved}

	_, err := fx.svc.Cancel(customer, "b1", &models.BookingCancellation{RequestRefund: true})
	require.NoError(t, err)

	require.Contains(t, fx.payments.updates, "p1")
	assert.Equal(t, models.PaymentRefunded, fx.payments.updates["p1"]["status"])
}

func TestCancelTerminalBookingRejected(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		Status: models.StatusCompleted,
	}

	_, err := fx.svc.Cancel(customer, "b1", &models.BookingCancellation{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelForeignBookingRejected(t *testing.T) {
	fx := newBookingFixture()
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "someone-else", CourtID: "c1", ArenaID: "a1",
		Status: models.StatusPending,
	}

	_, err := fx.svc.Cancel(customer, "b1", &models.BookingCancellation{})
	assert.ErrorIs(t, err, ErrNotPermitted)
}

func TestAvailability(t *testing.T) {
	fx := newBookingFixture()

	avail, err := fx.svc.Availability("c1", "2026-09-10", "2026-09-11")
	require.NoError(t, err)
	require.Len(t, avail, 2)

	// Thursday has the 18-23 window, Friday is closed.
	require.Len(t, avail["2026-09-10"], 5)
	assert.Equal(t, "18:00", avail["2026-09-10"][0].Start)
	assert.Empty(t, avail["2026-09-11"])
}

func TestAvailabilityRejectsInvertedRange(t *testing.T) {
	fx := newBookingFixture()

	_, err := fx.svc.Availability("c1", "2026-09-11", "2026-09-10")
	assert.ErrorIs(t, err, ErrInvalidTimeslot)
}

func TestPaymentStatus(t *testing.T) {
	fx := newBookingFixture()
	deadline := fx.now.Add(48 * time.Hour)
	fx.bookings.stored["b1"] = &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		Status:          models.StatusWaitingPayment,
		RequiresPayment: true,
		PaymentDeadline: &deadline,
	}
	fx.payments.latest = &models.Payment{ID: "p1", BookingID: "b1", Status: models.PaymentPending}

	status, err := fx.svc.PaymentStatus(customer, "b1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusWaitingPayment, status.Status)
	assert.True(t, status.RequiresPayment)
	require.NotNil(t, status.Payment)
	assert.Equal(t, "p1", status.Payment.ID)
}
