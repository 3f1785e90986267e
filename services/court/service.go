package court

import (
	arenaRepo "quadras/database/repository/arena"
	courtRepo "quadras/database/repository/court"
	extraRepo "quadras/database/repository/extraservice"
	"quadras/models"
	"quadras/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// CourtService is the court catalogue and its owner-side management,
// including each arena's extra-service offerings.
type CourtService interface {
	Create(actor models.Actor, c *models.Court) (*models.Court, error)
	Update(actor models.Actor, id string, upd *models.CourtUpdate) (*models.Court, error)
	Delete(actor models.Actor, id string) error
	Get(id string) (*models.Court, error)
	List(filter models.CourtFilter) ([]models.Court, int64, error)
	ListByArena(arenaID string) ([]models.Court, error)

	CreateExtraService(actor models.Actor, svc *models.ExtraService) (*models.ExtraService, error)
	UpdateExtraService(actor models.Actor, id string, updateDoc bson.M) (*models.ExtraService, error)
	DeleteExtraService(actor models.Actor, id string) error
	ListExtraServices(arenaID string) ([]models.ExtraService, error)
}

// DefaultCourtService is the standard CourtService implementation.
type DefaultCourtService struct {
	Courts courtRepo.CourtRepository
	Arenas arenaRepo.ArenaRepository
	Extras extraRepo.ExtraServiceRepository
}

// ownsArena enforces owner-or-admin access on an arena.
func (s *DefaultCourtService) ownsArena(actor models.Actor, arenaID string) error {
	arena, err := s.Arenas.GetByID(arenaID)
	if err != nil {
		return err
	}
	if arena == nil {
		return ErrArenaNotFound
	}
	if !actor.IsAdmin() && arena.OwnerID != actor.ID {
		return ErrNotPermitted
	}
	return nil
}

// Create adds a court to an arena the actor owns.
func (s *DefaultCourtService) Create(actor models.Actor, c *models.Court) (*models.Court, error) {
	if err := s.ownsArena(actor, c.ArenaID); err != nil {
		return nil, err
	}
	c.ID = uuid.NewString()
	c.IsAvailable = true
	if err := s.Courts.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update applies court changes for the arena owner or an admin.
func (s *DefaultCourtService) Update(actor models.Actor, id string, upd *models.CourtUpdate) (*models.Court, error) {
	c, err := s.Courts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourtNotFound
	}
	if err := s.ownsArena(actor, c.ArenaID); err != nil {
		return nil, err
	}

	updateDoc := bson.M{}
	if upd.Name != nil {
		updateDoc["name"] = *upd.Name
	}
	if upd.Type != nil {
		updateDoc["type"] = *upd.Type
	}
	if upd.Description != nil {
		updateDoc["description"] = *upd.Description
	}
	if upd.Photos != nil {
		updateDoc["photos"] = *upd.Photos
	}
	if upd.PricePerHour != nil {
		updateDoc["price_per_hour"] = *upd.PricePerHour
	}
	if upd.DiscountedPrice != nil {
		updateDoc["discounted_price"] = *upd.DiscountedPrice
	}
	if upd.MinimumBookingHours != nil {
		updateDoc["minimum_booking_hours"] = *upd.MinimumBookingHours
	}
	if upd.Characteristics != nil {
		updateDoc["characteristics"] = *upd.Characteristics
	}
	if upd.ExtraServices != nil {
		updateDoc["extra_services"] = *upd.ExtraServices
	}
	if upd.IsAvailable != nil {
		updateDoc["is_available"] = *upd.IsAvailable
	}
	if upd.AdvancePaymentRequired != nil {
		updateDoc["advance_payment_required"] = *upd.AdvancePaymentRequired
	}

	if len(updateDoc) > 0 {
		if err := s.Courts.UpdateSetDocument(id, updateDoc); err != nil {
			return nil, err
		}
	}
	return s.Courts.GetByID(id)
}

// Delete removes a court for the arena owner or an admin.
func (s *DefaultCourtService) Delete(actor models.Actor, id string) error {
	c, err := s.Courts.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCourtNotFound
	}
	if err := s.ownsArena(actor, c.ArenaID); err != nil {
		return err
	}
	return s.Courts.Delete(id)
}

// Get returns one court.
func (s *DefaultCourtService) Get(id string) (*models.Court, error) {
	c, err := s.Courts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourtNotFound
	}
	return c, nil
}

// List pages over the public catalogue. Location filters resolve to arena
// IDs first since courts carry no address of their own.
func (s *DefaultCourtService) List(filter models.CourtFilter) ([]models.Court, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.ItemsPerPage < 1 {
		filter.ItemsPerPage = utils.DefaultPageSize
	}
	if filter.ItemsPerPage > utils.MaxPageSize {
		filter.ItemsPerPage = utils.MaxPageSize
	}

	var arenaIDs []string
	if filter.ArenaID == "" && (filter.City != "" || filter.State != "" || filter.Neighborhood != "") {
		active := true
		arenas, _, err := s.Arenas.List(models.ArenaFilter{
			City:         filter.City,
			State:        filter.State,
			Neighborhood: filter.Neighborhood,
			Active:       &active,
			Page:         1,
			ItemsPerPage: utils.MaxPageSize,
		})
		if err != nil {
			return nil, 0, err
		}
		arenaIDs = make([]string, len(arenas))
		for i, a := range arenas {
			arenaIDs[i] = a.ID
		}
	}
	return s.Courts.List(filter, arenaIDs)
}

// ListByArena returns an arena's courts.
func (s *DefaultCourtService) ListByArena(arenaID string) ([]models.Court, error) {
	return s.Courts.ListByArena(arenaID)
}

// CreateExtraService adds a catalogue entry to an arena the actor owns.
func (s *DefaultCourtService) CreateExtraService(actor models.Actor, svc *models.ExtraService) (*models.ExtraService, error) {
	if err := s.ownsArena(actor, svc.ArenaID); err != nil {
		return nil, err
	}
	svc.ID = uuid.NewString()
	svc.Active = true
	if err := s.Extras.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateExtraService applies catalogue changes for the arena owner or an admin.
func (s *DefaultCourtService) UpdateExtraService(actor models.Actor, id string, updateDoc bson.M) (*models.ExtraService, error) {
	svc, err := s.Extras.GetByID(id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	if err := s.ownsArena(actor, svc.ArenaID); err != nil {
		return nil, err
	}
	if len(updateDoc) > 0 {
		if err := s.Extras.UpdateSetDocument(id, updateDoc); err != nil {
			return nil, err
		}
	}
	return s.Extras.GetByID(id)
}

// DeleteExtraService removes a catalogue entry for the arena owner or an admin.
func (s *DefaultCourtService) DeleteExtraService(actor models.Actor, id string) error {
	svc, err := s.Extras.GetByID(id)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}
	if err := s.ownsArena(actor, svc.ArenaID); err != nil {
		return err
	}
	return s.Extras.Delete(id)
}

// ListExtraServices returns an arena's catalogue.
func (s *DefaultCourtService) ListExtraServices(arenaID string) ([]models.ExtraService, error) {
	return s.Extras.ListByArena(arenaID)
}
