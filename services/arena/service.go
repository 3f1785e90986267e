package arena

import (
	arenaRepo "quadras/database/repository/arena"
	bookingRepo "quadras/database/repository/booking"
	paymentRepo "quadras/database/repository/payment"
	reviewRepo "quadras/database/repository/review"
	userRepo "quadras/database/repository/user"
	"quadras/models"
	"quadras/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ArenaService manages venues and everything hanging off them: ownership,
// reviews and the arena's payment ledger.
type ArenaService interface {
	Create(actor models.Actor, arena *models.Arena) (*models.Arena, error)
	Update(actor models.Actor, id string, upd *models.ArenaUpdate) (*models.Arena, error)
	Delete(actor models.Actor, id string) error
	Get(id string) (*models.Arena, error)
	List(filter models.ArenaFilter) ([]models.Arena, int64, error)
	ListMine(actor models.Actor) ([]models.Arena, error)
	AddReview(actor models.Actor, req *models.ReviewCreate) (*models.Review, error)
	ListReviews(arenaID string, page, perPage int) ([]models.Review, int64, error)
	ListPayments(actor models.Actor, arenaID string, page, perPage int) ([]models.Payment, int64, error)
}

// DefaultArenaService is the standard ArenaService implementation.
type DefaultArenaService struct {
	Arenas   arenaRepo.ArenaRepository
	Bookings bookingRepo.BookingRepository
	Reviews  reviewRepo.ReviewRepository
	Payments paymentRepo.PaymentRepository
	Users    userRepo.UserRepository
}

// Create registers a venue owned by the actor and promotes customers to
// arena owners.
func (s *DefaultArenaService) Create(actor models.Actor, arena *models.Arena) (*models.Arena, error) {
	arena.ID = uuid.NewString()
	arena.OwnerID = actor.ID
	arena.Active = true
	if arena.PaymentDeadlineHours <= 0 {
		arena.PaymentDeadlineHours = 24
	}
	if err := s.Arenas.Create(arena); err != nil {
		return nil, err
	}

	if actor.Role == models.RoleCustomer {
		if err := s.Users.UpdateSetDocument(actor.ID, bson.M{"role": models.RoleArenaOwner}); err != nil {
			utils.GetLogger().Warn("failed to promote arena owner",
				zap.String("user_id", actor.ID), zap.Error(err))
		}
	}
	return arena, nil
}

// owned fetches an arena and enforces owner-or-admin access.
func (s *DefaultArenaService) owned(actor models.Actor, id string) (*models.Arena, error) {
	arena, err := s.Arenas.GetByID(id)
	if err != nil {
		return nil, err
	}
	if arena == nil {
		return nil, ErrArenaNotFound
	}
	if !actor.IsAdmin() && arena.OwnerID != actor.ID {
		return nil, ErrNotPermitted
	}
	return arena, nil
}

// Update applies changes for the owner or an admin.
func (s *DefaultArenaService) Update(actor models.Actor, id string, upd *models.ArenaUpdate) (*models.Arena, error) {
	if _, err := s.owned(actor, id); err != nil {
		return nil, err
	}

	updateDoc := bson.M{}
	if upd.Name != nil {
		updateDoc["name"] = *upd.Name
	}
	if upd.Description != nil {
		updateDoc["description"] = *upd.Description
	}
	if upd.Address != nil {
		updateDoc["address"] = *upd.Address
	}
	if upd.Phone != nil {
		updateDoc["phone"] = *upd.Phone
	}
	if upd.Email != nil {
		updateDoc["email"] = *upd.Email
	}
	if upd.LogoURL != nil {
		updateDoc["logo_url"] = *upd.LogoURL
	}
	if upd.Photos != nil {
		updateDoc["photos"] = *upd.Photos
	}
	if upd.Amenities != nil {
		updateDoc["amenities"] = *upd.Amenities
	}
	if upd.BusinessHours != nil {
		updateDoc["business_hours"] = *upd.BusinessHours
	}
	if upd.CancellationPolicy != nil {
		updateDoc["cancellation_policy"] = *upd.CancellationPolicy
	}
	if upd.AdvancePaymentRequired != nil {
		updateDoc["advance_payment_required"] = *upd.AdvancePaymentRequired
	}
	if upd.PaymentDeadlineHours != nil {
		updateDoc["payment_deadline_hours"] = *upd.PaymentDeadlineHours
	}
	if upd.Active != nil {
		updateDoc["active"] = *upd.Active
	}

	if len(updateDoc) > 0 {
		if err := s.Arenas.UpdateSetDocument(id, updateDoc); err != nil {
			return nil, err
		}
	}
	return s.Arenas.GetByID(id)
}

// Delete removes a venue for the owner or an admin.
func (s *DefaultArenaService) Delete(actor models.Actor, id string) error {
	if _, err := s.owned(actor, id); err != nil {
		return err
	}
	return s.Arenas.Delete(id)
}

// Get returns one arena.
func (s *DefaultArenaService) Get(id string) (*models.Arena, error) {
	arena, err := s.Arenas.GetByID(id)
	if err != nil {
		return nil, err
	}
	if arena == nil {
		return nil, ErrArenaNotFound
	}
	return arena, nil
}

// List pages over the public catalogue.
func (s *DefaultArenaService) List(filter models.ArenaFilter) ([]models.Arena, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.ItemsPerPage < 1 {
		filter.ItemsPerPage = utils.DefaultPageSize
	}
	if filter.ItemsPerPage > utils.MaxPageSize {
		filter.ItemsPerPage = utils.MaxPageSize
	}
	return s.Arenas.List(filter)
}

// ListMine returns the actor's venues.
func (s *DefaultArenaService) ListMine(actor models.Actor) ([]models.Arena, error) {
	return s.Arenas.ListByOwner(actor.ID)
}

// AddReview records a rating on a completed booking and folds it into the
// arena's average.
func (s *DefaultArenaService) AddReview(actor models.Actor, req *models.ReviewCreate) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	arena, err := s.Arenas.GetByID(req.ArenaID)
	if err != nil {
		return nil, err
	}
	if arena == nil {
		return nil, ErrArenaNotFound
	}

	if req.BookingID != "" {
		b, err := s.Bookings.GetByID(req.BookingID)
		if err != nil {
			return nil, err
		}
		if b == nil || b.UserID != actor.ID {
			return nil, ErrBookingNotFound
		}
		if b.Status != models.StatusCompleted {
			return nil, ErrNotCompleted
		}
		if existing, err := s.Reviews.GetByBooking(req.BookingID); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, ErrAlreadyReviewed
		}
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		ArenaID:   req.ArenaID,
		UserID:    actor.ID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.Reviews.Create(review); err != nil {
		return nil, err
	}

	if err := s.Arenas.ApplyRating(req.ArenaID, float64(req.Rating)); err != nil {
		utils.GetLogger().Warn("failed to update arena rating",
			zap.String("arena_id", req.ArenaID), zap.Error(err))
	}
	return review, nil
}

// ListReviews pages over an arena's reviews with reviewer names attached.
func (s *DefaultArenaService) ListReviews(arenaID string, page, perPage int) ([]models.Review, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = utils.DefaultPageSize
	}
	reviews, total, err := s.Reviews.ListByArena(arenaID, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	for i := range reviews {
		if u, _ := s.Users.GetByIDWithProjection(reviews[i].UserID, nil); u != nil {
			reviews[i].User = &models.UserRef{ID: u.ID, Name: u.FullName()}
		}
	}
	return reviews, total, nil
}

// ListPayments pages over an arena's received payments for its owner or an
// admin.
func (s *DefaultArenaService) ListPayments(actor models.Actor, arenaID string, page, perPage int) ([]models.Payment, int64, error) {
	if _, err := s.owned(actor, arenaID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = utils.DefaultPageSize
	}
	return s.Payments.ListForArena(arenaID, page, perPage)
}
