package userRepo

import (
	"quadras/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	List(role string, search string, page, perPage int) ([]models.User, int64, error)
}
