package payment

import (
	"testing"
	"time"

	"quadras/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakePaymentStore struct {
	stored  map[string]*models.Payment
	open    *models.Payment
	latest  *models.Payment
	updates map[string]bson.M
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{
		stored:  map[string]*models.Payment{},
		updates: map[string]bson.M{},
	}
}

func (f *fakePaymentStore) Create(p *models.Payment) error {
	f.stored[p.ID] = p
	return nil
}

func (f *fakePaymentStore) UpdateSetDocument(id string, doc bson.M) error {
	f.updates[id] = doc
	if p := f.stored[id]; p != nil {
		if status, ok := doc["status"].(models.PaymentStatus); ok {
			p.Status = status
		}
	}
	return nil
}

func (f *fakePaymentStore) GetByID(id string) (*models.Payment, error) {
	return f.stored[id], nil
}

func (f *fakePaymentStore) GetByGatewayID(gatewayID string) (*models.Payment, error) {
	for _, p := range f.stored {
		if p.GatewayID == gatewayID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentStore) GetOpenForBooking(bookingID string) (*models.Payment, error) {
	return f.open, nil
}

func (f *fakePaymentStore) GetLatestForBooking(bookingID string) (*models.Payment, error) {
	return f.latest, nil
}

func (f *fakePaymentStore) ListForArena(arenaID string, page, perPage int) ([]models.Payment, int64, error) {
	return nil, 0, nil
}

type fakeBookingStore struct {
	stored map[string]*models.Booking
}

func (f *fakeBookingStore) Create(b *models.Booking) error { return nil }
func (f *fakeBookingStore) UpdateSetDocument(id string, doc bson.M) error {
	if b := f.stored[id]; b != nil {
		if status, ok := doc["status"].(models.BookingStatus); ok {
			b.Status = status
		}
	}
	return nil
}
func (f *fakeBookingStore) GetByID(id string) (*models.Booking, error) { return f.stored[id], nil }
func (f *fakeBookingStore) List(filter models.BookingFilter) ([]models.Booking, int64, error) {
	return nil, 0, nil
}
func (f *fakeBookingStore) FindActiveSingleOnDate(courtID, date string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) FindActiveSingleInRange(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) FindActiveMonthlyCovering(courtID, date string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) FindActiveMonthlyOverlapping(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return nil, nil
}
func (f *fakeBookingStore) CountActiveForUser(userID string) (int64, error) { return 0, nil }
func (f *fakeBookingStore) FindExpiredWaitingPayment(now time.Time) ([]models.Booking, error) {
	return nil, nil
}

type fakeArenaStore struct {
	arenas map[string]*models.Arena
}

func (f *fakeArenaStore) Create(a *models.Arena) error                       { return nil }
func (f *fakeArenaStore) UpdateSetDocument(id string, doc bson.M) error      { return nil }
func (f *fakeArenaStore) Delete(id string) error                             { return nil }
func (f *fakeArenaStore) GetByID(id string) (*models.Arena, error)           { return f.arenas[id], nil }
func (f *fakeArenaStore) ListByOwner(ownerID string) ([]models.Arena, error) { return nil, nil }
func (f *fakeArenaStore) ApplyRating(id string, rating float64) error        { return nil }
func (f *fakeArenaStore) List(filter models.ArenaFilter) ([]models.Arena, int64, error) {
	return nil, 0, nil
}

type fakeUserStore struct {
	users map[string]*models.User
}

func (f *fakeUserStore) Create(u *models.User) error                     { return nil }
func (f *fakeUserStore) Update(u *models.User) error                     { return nil }
func (f *fakeUserStore) UpdateSetDocument(id string, doc bson.M) error   { return nil }
func (f *fakeUserStore) Delete(id string) error                          { return nil }
func (f *fakeUserStore) GetByID(id string) (*models.User, error)         { return f.users[id], nil }
func (f *fakeUserStore) GetByEmail(email string) (*models.User, error)   { return nil, nil }
func (f *fakeUserStore) GetByUsername(name string) (*models.User, error) { return nil, nil }
func (f *fakeUserStore) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.users[id], nil
}
func (f *fakeUserStore) List(role, search string, page, perPage int) ([]models.User, int64, error) {
	return nil, 0, nil
}

type fakeGateway struct {
	pix  *Charge
	card *Charge
}

func (f *fakeGateway) CreatePixCharge(amount float64, bookingID string) (*Charge, error) {
	return f.pix, nil
}

func (f *fakeGateway) ChargeCard(amount float64, card *models.CardData, bookingID string) (*Charge, error) {
	return f.card, nil
}

type fakeLocker struct {
	available bool
	released  []string
}

func (f *fakeLocker) Acquire(bookingID string, ttl time.Duration) (bool, error) {
	return f.available, nil
}

func (f *fakeLocker) Release(bookingID string) {
	f.released = append(f.released, bookingID)
}

type captureNotifier struct {
	events []models.NotificationPayload
}

func (c *captureNotifier) Notify(payload models.NotificationPayload) error {
	c.events = append(c.events, payload)
	return nil
}

type paymentFixture struct {
	svc      *DefaultPaymentService
	payments *fakePaymentStore
	bookings *fakeBookingStore
	gateway  *fakeGateway
	locker   *fakeLocker
	notifier *captureNotifier
	booking  *models.Booking
	now      time.Time
}

func newPaymentFixture() *paymentFixture {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(24 * time.Hour)
	booking := &models.Booking{
		ID: "b1", UserID: "u1", CourtID: "c1", ArenaID: "a1",
		BookingType:     models.BookingSingle,
		Timeslot:        &models.BookingTimeslot{Date: "2026-09-10", StartTime: "19:00", EndTime: "21:00"},
		Status:          models.StatusWaitingPayment,
		TotalAmount:     200,
		RequiresPayment: true,
		PaymentDeadline: &deadline,
	}
	payments := newFakePaymentStore()
	bookings := &fakeBookingStore{stored: map[string]*models.Booking{"b1": booking}}
	gateway := &fakeGateway{}
	locker := &fakeLocker{available: true}
	notifier := &captureNotifier{}
	svc := &DefaultPaymentService{
		Payments: payments,
		Bookings: bookings,
		Arenas: &fakeArenaStore{arenas: map[string]*models.Arena{
			"a1": {ID: "a1", OwnerID: "owner1", Name: "Arena Central"},
		}},
		Users: &fakeUserStore{users: map[string]*models.User{
			"u1": {ID: "u1", FirstName: "Ana", LastName: "Souza", Email: "ana@example.com"},
		}},
		Gateway:  gateway,
		Locker:   locker,
		Notifier: notifier,
		Now:      func() time.Time { return now },
	}
	return &paymentFixture{
		svc:      svc,
		payments: payments,
		bookings: bookings,
		gateway:  gateway,
		locker:   locker,
		notifier: notifier,
		booking:  booking,
		now:      now,
	}
}

var payer = models.Actor{ID: "u1", Role: models.RoleCustomer}

func TestCreatePixPayment(t *testing.T) {
	fx := newPaymentFixture()
	expires := fx.now.Add(24 * time.Hour)
	fx.gateway.pix = &Charge{
		GatewayID:    "pix_123",
		Status:       models.PaymentPending,
		PixQRCode:    "qr-data",
		PixCopyPaste: "copy-paste-data",
		ExpiresAt:    &expires,
	}

	p, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Equal(t, "pix_123", p.GatewayID)
	assert.Equal(t, "qr-data", p.PixQRCode)
	assert.Equal(t, "copy-paste-data", p.PixCopyPaste)
	require.NotNil(t, p.ExpiresAt)

	// A pending PIX charge does not release the booking.
	assert.Equal(t, models.StatusWaitingPayment, fx.booking.Status)
	assert.Empty(t, fx.notifier.events)
	assert.Equal(t, []string{"b1"}, fx.locker.released)
}

func TestCreateCardPaymentApprovedReleasesBooking(t *testing.T) {
	fx := newPaymentFixture()
	fx.gateway.card = &Charge{
		GatewayID: "sim_456",
		Status:    models.PaymentApproved,
		Last4:     "4242",
	}

	p, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodCreditCard,
		Amount:        200,
		CardData:      &models.CardData{Token: "tok_abc", Last4: "4242"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentApproved, p.Status)
	assert.Equal(t, "4242", p.CreditCardLast4)
	require.NotNil(t, p.PaymentDate)
	assert.Equal(t, fx.now, *p.PaymentDate)

	assert.Equal(t, models.StatusPending, fx.booking.Status)
	require.Len(t, fx.notifier.events, 1)
	assert.Equal(t, models.EventPaymentApproved, fx.notifier.events[0].Event)
	assert.Equal(t, 200.0, fx.notifier.events[0].Amount)
}

func TestCreateCardPaymentRequiresToken(t *testing.T) {
	fx := newPaymentFixture()

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodCreditCard,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrCardDataRequired)
}

func TestCreateOnSitePayment(t *testing.T) {
	fx := newPaymentFixture()

	p, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodOnSite,
		Amount:        200,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, p.Status)
	assert.Empty(t, p.GatewayID)
	assert.Equal(t, models.StatusWaitingPayment, fx.booking.Status)
}

func TestCreatePaymentAmountMismatch(t *testing.T) {
	fx := newPaymentFixture()

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        199.99,
	})
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestCreatePaymentAfterDeadline(t *testing.T) {
	fx := newPaymentFixture()
	passed := fx.now.Add(-time.Hour)
	fx.booking.PaymentDeadline = &passed

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestCreatePaymentOnSettledBooking(t *testing.T) {
	fx := newPaymentFixture()
	fx.booking.Status = models.StatusConfirmed

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrNotPayable)
}

func TestCreatePaymentNotRequired(t *testing.T) {
	fx := newPaymentFixture()
	fx.booking.RequiresPayment = false
	fx.booking.Status = models.StatusPending
	fx.booking.PaymentDeadline = nil

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrPaymentNotRequired)
	assert.Empty(t, fx.payments.stored)
}

func TestCreatePaymentDuplicateOpen(t *testing.T) {
	fx := newPaymentFixture()
	fx.payments.open = &models.Payment{ID: "p0", BookingID: "b1", Status: models.PaymentPending}

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrDuplicatePayment)
}

func TestCreatePaymentInFlight(t *testing.T) {
	fx := newPaymentFixture()
	fx.locker.available = false

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrPaymentInFlight)
	assert.Empty(t, fx.locker.released)
}

func TestCreatePaymentForeignBooking(t *testing.T) {
	fx := newPaymentFixture()

	_, err := fx.svc.Create(models.Actor{ID: "intruder", Role: models.RoleCustomer}, &models.PaymentCreate{
		BookingID:     "b1",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrNotPermitted)
}

func TestCreatePaymentUnknownBooking(t *testing.T) {
	fx := newPaymentFixture()

	_, err := fx.svc.Create(payer, &models.PaymentCreate{
		BookingID:     "missing",
		PaymentMethod: models.MethodPix,
		Amount:        200,
	})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetPaymentPermissions(t *testing.T) {
	fx := newPaymentFixture()
	fx.payments.stored["p1"] = &models.Payment{
		ID: "p1", BookingID: "b1", UserID: "u1", ArenaID: "a1",
		Status: models.PaymentPending,
	}

	p, err := fx.svc.Get(payer, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	require.NotNil(t, p.Booking)
	assert.Equal(t, "b1", p.Booking.ID)

	_, err = fx.svc.Get(models.Actor{ID: "owner1", Role: models.RoleArenaOwner}, "p1")
	assert.NoError(t, err)

	_, err = fx.svc.Get(models.Actor{ID: "stranger", Role: models.RoleCustomer}, "p1")
	assert.ErrorIs(t, err, ErrNotPermitted)

	_, err = fx.svc.Get(payer, "missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestHandleWebhookApproves(t *testing.T) {
	fx := newPaymentFixture()
	fx.payments.stored["p1"] = &models.Payment{
		ID: "p1", BookingID: "b1", UserID: "u1", ArenaID: "a1",
		GatewayID: "pix_123", Status: models.PaymentPending,
	}

	hook := &models.GatewayWebhook{}
	hook.Data.ID = "pix_123"
	hook.Data.Status = "approved"

	require.NoError(t, fx.svc.HandleWebhook(hook))

	assert.Equal(t, models.PaymentApproved, fx.payments.stored["p1"].Status)
	assert.Contains(t, fx.payments.updates["p1"], "payment_date")
	assert.Equal(t, models.StatusPending, fx.booking.Status)
	require.Len(t, fx.notifier.events, 1)
	assert.Equal(t, models.EventPaymentApproved, fx.notifier.events[0].Event)
}

func TestHandleWebhookCancelledMapsToRejected(t *testing.T) {
	fx := newPaymentFixture()
	fx.payments.stored["p1"] = &models.Payment{
		ID: "p1", BookingID: "b1", UserID: "u1", ArenaID: "a1",
		GatewayID: "pix_123", Status: models.PaymentPending,
	}

	hook := &models.GatewayWebhook{}
	hook.Data.ID = "pix_123"
	hook.Data.Status = "cancelled"

	require.NoError(t, fx.svc.HandleWebhook(hook))
	assert.Equal(t, models.PaymentRejected, fx.payments.stored["p1"].Status)
	assert.Equal(t, models.StatusWaitingPayment, fx.booking.Status)
}

func TestHandleWebhookUnknownChargeIgnored(t *testing.T) {
	fx := newPaymentFixture()

	hook := &models.GatewayWebhook{}
	hook.Data.ID = "nope"
	hook.Data.Status = "approved"

	assert.NoError(t, fx.svc.HandleWebhook(hook))
	assert.Empty(t, fx.payments.updates)
}

func TestHandleWebhookUnknownStatusIgnored(t *testing.T) {
	fx := newPaymentFixture()
	fx.payments.stored["p1"] = &models.Payment{
		ID: "p1", BookingID: "b1", GatewayID: "pix_123", Status: models.PaymentPending,
	}

	hook := &models.GatewayWebhook{}
	hook.Data.ID = "pix_123"
	hook.Data.Status = "in_mediation"

	assert.NoError(t, fx.svc.HandleWebhook(hook))
	assert.Empty(t, fx.payments.updates)
	assert.Equal(t, models.PaymentPending, fx.payments.stored["p1"].Status)
}

func TestHandleWebhookSameStatusIsIdempotent(t *testing.T) {
	fx := newPaymentFixture()
	fx.payments.stored["p1"] = &models.Payment{
		ID: "p1", BookingID: "b1", GatewayID: "pix_123", Status: models.PaymentPending,
	}

	hook := &models.GatewayWebhook{}
	hook.Data.ID = "pix_123"
	hook.Data.Status = "pending"

	assert.NoError(t, fx.svc.HandleWebhook(hook))
	assert.Empty(t, fx.payments.updates)
}

func TestMapGatewayStatus(t *testing.T) {
	assert.Equal(t, models.PaymentApproved, mapGatewayStatus("approved"))
	assert.Equal(t, models.PaymentRejected, mapGatewayStatus("rejected"))
	assert.Equal(t, models.PaymentRejected, mapGatewayStatus("cancelled"))
	assert.Equal(t, models.PaymentRefunded, mapGatewayStatus("refunded"))
	assert.Equal(t, models.PaymentPending, mapGatewayStatus("pending"))
	assert.Equal(t, models.PaymentStatus(""), mapGatewayStatus("in_mediation"))
}
