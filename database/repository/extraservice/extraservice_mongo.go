package extraRepo

import (
	"context"
	"fmt"
	"time"

	"quadras/database"
	"quadras/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExtraServiceRepository defines persistence operations for the
// arena-level extra-service catalogue.
type ExtraServiceRepository interface {
	Create(service *models.ExtraService) error
	UpdateSetDocument(id string, updateDoc bson.M) error
	Delete(id string) error
	GetByID(id string) (*models.ExtraService, error)
	GetByIDs(ids []string) ([]models.ExtraService, error)
	ListByArena(arenaID string) ([]models.ExtraService, error)
}

// MongoExtraServiceRepo implements ExtraServiceRepository using MongoDB.
type MongoExtraServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoExtraServiceRepo creates a new instance of ExtraServiceRepository using MongoDB.
func NewMongoExtraServiceRepo() ExtraServiceRepository {
	repo := &MongoExtraServiceRepo{coll: database.Collection("extra_services")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoExtraServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "arena_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new extra-service document.
func (r *MongoExtraServiceRepo) Create(service *models.ExtraService) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create extra service: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to an extra-service document.
func (r *MongoExtraServiceRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update extra service with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("extra service with id %s not found", id)
	}
	return nil
}

// Delete removes an extra-service document by its ID.
func (r *MongoExtraServiceRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete extra service with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("extra service with id %s not found", id)
	}
	return nil
}

// GetByID retrieves an extra service by its unique ID.
func (r *MongoExtraServiceRepo) GetByID(id string) (*models.ExtraService, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var service models.ExtraService
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch extra service with id %s: %w", id, err)
	}
	return &service, nil
}

// GetByIDs retrieves all extra services whose IDs are in the given set.
func (r *MongoExtraServiceRepo) GetByIDs(ids []string) ([]models.ExtraService, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve extra services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.ExtraService
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode extra services: %w", err)
	}
	return services, nil
}

// ListByArena returns all extra services an arena offers.
func (r *MongoExtraServiceRepo) ListByArena(arenaID string) ([]models.ExtraService, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"arena_id": arenaID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve extra services for arena %s: %w", arenaID, err)
	}
	defer cursor.Close(ctx)

	var services []models.ExtraService
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode extra services: %w", err)
	}
	return services, nil
}
