package arena

import (
	"testing"
	"time"

	"quadras/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type stubArenaRepo struct {
	arenas  map[string]*models.Arena
	ratings []float64
	updates map[string]bson.M
	deleted []string
}

func (f *stubArenaRepo) Create(a *models.Arena) error {
	f.arenas[a.ID] = a
	return nil
}
func (f *stubArenaRepo) UpdateSetDocument(id string, doc bson.M) error {
	if f.updates == nil {
		f.updates = map[string]bson.M{}
	}
	f.updates[id] = doc
	return nil
}
func (f *stubArenaRepo) Delete(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *stubArenaRepo) GetByID(id string) (*models.Arena, error)           { return f.arenas[id], nil }
func (f *stubArenaRepo) ListByOwner(ownerID string) ([]models.Arena, error) { return nil, nil }
func (f *stubArenaRepo) ApplyRating(id string, rating float64) error {
	f.ratings = append(f.ratings, rating)
	return nil
}
func (f *stubArenaRepo) List(filter models.ArenaFilter) ([]models.Arena, int64, error) {
	return nil, 0, nil
}

type stubBookingRepo struct {
	bookings map[string]*models.Booking
}

func (f *stubBookingRepo) Create(b *models.Booking) error                { return nil }
func (f *stubBookingRepo) UpdateSetDocument(id string, doc bson.M) error { return nil }
func (f *stubBookingRepo) GetByID(id string) (*models.Booking, error)    { return f.bookings[id], nil }
func (f *stubBookingRepo) List(filter models.BookingFilter) ([]models.Booking, int64, error) {
	return nil, 0, nil
}
func (f *stubBookingRepo) FindActiveSingleOnDate(courtID, date string) ([]models.Booking, error) {
	return nil, nil
}
func (f *stubBookingRepo) FindActiveSingleInRange(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return nil, nil
}
func (f *stubBookingRepo) FindActiveMonthlyCovering(courtID, date string) ([]models.Booking, error) {
	return nil, nil
}
func (f *stubBookingRepo) FindActiveMonthlyOverlapping(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	return nil, nil
}
func (f *stubBookingRepo) CountActiveForUser(userID string) (int64, error) { return 0, nil }
func (f *stubBookingRepo) FindExpiredWaitingPayment(now time.Time) ([]models.Booking, error) {
	return nil, nil
}

type stubReviewRepo struct {
	byBooking map[string]*models.Review
	created   []*models.Review
}

func (f *stubReviewRepo) Create(r *models.Review) error {
	f.created = append(f.created, r)
	return nil
}
func (f *stubReviewRepo) GetByBooking(bookingID string) (*models.Review, error) {
	return f.byBooking[bookingID], nil
}
func (f *stubReviewRepo) ListByArena(arenaID string, page, perPage int) ([]models.Review, int64, error) {
	return nil, 0, nil
}

type stubUserRepo struct {
	updates map[string]bson.M
}

func (f *stubUserRepo) Create(u *models.User) error { return nil }
func (f *stubUserRepo) Update(u *models.User) error { return nil }
func (f *stubUserRepo) UpdateSetDocument(id string, doc bson.M) error {
	if f.updates == nil {
		f.updates = map[string]bson.M{}
	}
	f.updates[id] = doc
	return nil
}
func (f *stubUserRepo) Delete(id string) error                          { return nil }
func (f *stubUserRepo) GetByID(id string) (*models.User, error)         { return nil, nil }
func (f *stubUserRepo) GetByEmail(email string) (*models.User, error)   { return nil, nil }
func (f *stubUserRepo) GetByUsername(name string) (*models.User, error) { return nil, nil }
func (f *stubUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return nil, nil
}
func (f *stubUserRepo) List(role, search string, page, perPage int) ([]models.User, int64, error) {
	return nil, 0, nil
}

type stubPaymentRepo struct{}

func (stubPaymentRepo) Create(p *models.Payment) error                   { return nil }
func (stubPaymentRepo) UpdateSetDocument(id string, doc bson.M) error    { return nil }
func (stubPaymentRepo) GetByID(id string) (*models.Payment, error)       { return nil, nil }
func (stubPaymentRepo) GetByGatewayID(id string) (*models.Payment, error) { return nil, nil }
func (stubPaymentRepo) GetOpenForBooking(bookingID string) (*models.Payment, error) {
	return nil, nil
}
func (stubPaymentRepo) GetLatestForBooking(bookingID string) (*models.Payment, error) {
	return nil, nil
}
func (stubPaymentRepo) ListForArena(arenaID string, page, perPage int) ([]models.Payment, int64, error) {
	return nil, 0, nil
}

func newArenaService() (*DefaultArenaService, *stubArenaRepo, *stubBookingRepo, *stubReviewRepo, *stubUserRepo) {
	arenas := &stubArenaRepo{arenas: map[string]*models.Arena{
		"a1": {ID: "a1", OwnerID: "owner1", Name: "Arena Central", Active: true},
	}}
	bookings := &stubBookingRepo{bookings: map[string]*models.Booking{}}
	reviews := &stubReviewRepo{byBooking: map[string]*models.Review{}}
	users := &stubUserRepo{}
	svc := &DefaultArenaService{
		Arenas:   arenas,
		Bookings: bookings,
		Reviews:  reviews,
		Payments: stubPaymentRepo{},
		Users:    users,
	}
	return svc, arenas, bookings, reviews, users
}

func TestCreateArenaPromotesCustomer(t *testing.T) {
	svc, arenas, _, _, users := newArenaService()

	arena, err := svc.Create(models.Actor{ID: "u1", Role: models.RoleCustomer}, &models.Arena{Name: "Nova Arena"})
	require.NoError(t, err)

	assert.NotEmpty(t, arena.ID)
	assert.Equal(t, "u1", arena.OwnerID)
	assert.True(t, arena.Active)
	assert.Equal(t, 24, arena.PaymentDeadlineHours)
	assert.Contains(t, arenas.arenas, arena.ID)

	require.Contains(t, users.updates, "u1")
	assert.Equal(t, models.RoleArenaOwner, users.updates["u1"]["role"])
}

func TestCreateArenaKeepsExistingRole(t *testing.T) {
	svc, _, _, _, users := newArenaService()

	_, err := svc.Create(models.Actor{ID: "owner1", Role: models.RoleArenaOwner}, &models.Arena{Name: "Segunda Arena"})
	require.NoError(t, err)
	assert.Empty(t, users.updates)
}

func TestUpdateArenaOwnerOnly(t *testing.T) {
	svc, arenas, _, _, _ := newArenaService()
	name := "Renamed"

	_, err := svc.Update(models.Actor{ID: "stranger", Role: models.RoleCustomer}, "a1", &models.ArenaUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotPermitted)

	_, err = svc.Update(models.Actor{ID: "owner1", Role: models.RoleArenaOwner}, "a1", &models.ArenaUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", arenas.updates["a1"]["name"])
}

func TestDeleteArena(t *testing.T) {
	svc, arenas, _, _, _ := newArenaService()

	assert.ErrorIs(t, svc.Delete(models.Actor{ID: "stranger"}, "a1"), ErrNotPermitted)
	assert.ErrorIs(t, svc.Delete(models.Actor{ID: "owner1"}, "missing"), ErrArenaNotFound)

	require.NoError(t, svc.Delete(models.Actor{ID: "owner1", Role: models.RoleArenaOwner}, "a1"))
	assert.Equal(t, []string{"a1"}, arenas.deleted)
}

func TestAddReview(t *testing.T) {
	actor := models.Actor{ID: "u1", Role: models.RoleCustomer}

	t.Run("happy path folds rating", func(t *testing.T) {
		svc, arenas, bookings, reviews, _ := newArenaService()
		bookings.bookings["b1"] = &models.Booking{ID: "b1", UserID: "u1", ArenaID: "a1", Status: models.StatusCompleted}

		review, err := svc.AddReview(actor, &models.ReviewCreate{
			ArenaID: "a1", BookingID: "b1", Rating: 5, Comment: "great courts",
		})
		require.NoError(t, err)

		assert.Equal(t, 5, review.Rating)
		assert.Equal(t, "u1", review.UserID)
		require.Len(t, reviews.created, 1)
		assert.Equal(t, []float64{5}, arenas.ratings)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc, _, _, _, _ := newArenaService()
		_, err := svc.AddReview(actor, &models.ReviewCreate{ArenaID: "a1", Rating: 6})
		assert.ErrorIs(t, err, ErrInvalidRating)

		_, err = svc.AddReview(actor, &models.ReviewCreate{ArenaID: "a1", Rating: 0})
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("booking must belong to reviewer", func(t *testing.T) {
		svc, _, bookings, _, _ := newArenaService()
		bookings.bookings["b1"] = &models.Booking{ID: "b1", UserID: "someone-else", ArenaID: "a1", Status: models.StatusCompleted}

		_, err := svc.AddReview(actor, &models.ReviewCreate{ArenaID: "a1", BookingID: "b1", Rating: 4})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("booking must be completed", func(t *testing.T) {
		svc, _, bookings, _, _ := newArenaService()
		bookings.bookings["b1"] = &models.Booking{ID: "b1", UserID: "u1", ArenaID: "a1", Status: models.StatusConfirmed}

		_, err := svc.AddReview(actor, &models.ReviewCreate{ArenaID: "a1", BookingID: "b1", Rating: 4})
		assert.ErrorIs(t, err, ErrNotCompleted)
	})

	t.Run("one review per booking", func(t *testing.T) {
		svc, _, bookings, reviews, _ := newArenaService()
		bookings.bookings["b1"] = &models.Booking{ID: "b1", UserID: "u1", ArenaID: "a1", Status: models.StatusCompleted}
		reviews.byBooking["b1"] = &models.Review{ID: "r0", BookingID: "b1"}

		_, err := svc.AddReview(actor, &models.ReviewCreate{ArenaID: "a1", BookingID: "b1", Rating: 4})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("unknown arena", func(t *testing.T) {
		svc, _, _, _, _ := newArenaService()
		_, err := svc.AddReview(actor, &models.ReviewCreate{ArenaID: "missing", Rating: 4})
		assert.ErrorIs(t, err, ErrArenaNotFound)
	})
}
