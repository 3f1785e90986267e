package courtRepo

import (
	"quadras/models"

	"go.mongodb.org/mongo-driver/bson"
)

// CourtRepository defines persistence operations for courts.
type CourtRepository interface {
	Create(court *models.Court) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Court, error)
	// List pages over courts matching the filter. When arenaIDs is non-nil the
	// results are restricted to those arenas (the city/state filters resolve to
	// arena IDs upstream).
	List(filter models.CourtFilter, arenaIDs []string) ([]models.Court, int64, error)
	ListByArena(arenaID string) ([]models.Court, error)
}
