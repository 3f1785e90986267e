package arenaRepo

import (
	"quadras/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ArenaRepository defines persistence operations for arenas.
type ArenaRepository interface {
	Create(arena *models.Arena) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.Arena, error)
	List(filter models.ArenaFilter) ([]models.Arena, int64, error)
	ListByOwner(ownerID string) ([]models.Arena, error)
	ApplyRating(id string, rating float64) error
}
