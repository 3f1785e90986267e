package arenaRepo

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

// MongoArenaRepo implements ArenaRepository using MongoDB.
type MongoArenaRepo struct {
	coll *mongo.Collection
}

// NewMongoArenaRepo creates a new instance of ArenaRepository using MongoDB.
func NewMongoArenaRepo() ArenaRepository {
	repo := &MongoArenaRepo{coll: database.Collection("arenas")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoArenaRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "address.city", Value: 1}, {Key: "address.state", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new arena document.
func (r *MongoArenaRepo) Create(arena *models.Arena) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	arena.CreatedAt = now
	arena.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, arena); err != nil {
		return fmt.Errorf("failed to create arena: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to an arena document.
func (r *MongoArenaRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update arena with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("arena with id %s not found", id)
	}
	return nil
}

// Delete removes an arena document by its ID.
func (r *MongoArenaRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete arena with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("arena with id %s not found", id)
	}
	return nil
}

// GetByID retrieves an arena by its unique ID.
func (r *MongoArenaRepo) GetByID(id string) (*models.Arena, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var arena models.Arena
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&arena); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch arena with id %s: %w", id, err)
	}
	return &arena, nil
}

// List returns a page of arenas matching the filter with the total match count.
func (r *MongoArenaRepo) List(filter models.ArenaFilter) ([]models.Arena, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Name != "" {
		query["name"] = bson.M{"$regex": filter.Name, "$options": "i"}
	}
	if filter.City != "" {
		query["address.city"] = bson.M{"$regex": filter.City, "$options": "i"}
	}
	if filter.State != "" {
		query["address.state"] = filter.State
	}
	if filter.Neighborhood != "" {
		query["address.neighborhood"] = bson.M{"$regex": filter.Neighborhood, "$options": "i"}
	}
	if filter.Active != nil {
		query["active"] = *filter.Active
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count arenas: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "rating", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.ItemsPerPage)).
		SetLimit(int64(filter.ItemsPerPage))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve arenas: %w", err)
	}
	defer cursor.Close(ctx)

	var arenas []models.Arena
	if err := cursor.All(ctx, &arenas); err != nil {
		return nil, 0, fmt.Errorf("failed to decode arenas: %w", err)
	}
	return arenas, total, nil
}

// ListByOwner returns all arenas owned by the given user.
func (r *MongoArenaRepo) ListByOwner(ownerID string) ([]models.Arena, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve arenas for owner %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var arenas []models.Arena
	if err := cursor.All(ctx, &arenas); err != nil {
		return nil, fmt.Errorf("failed to decode arenas: %w", err)
	}
	return arenas, nil
}

// ApplyRating folds a new review rating into the arena's running average.
func (r *MongoArenaRepo) ApplyRating(id string, rating float64) error {
	arena, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if arena == nil {
		return fmt.Errorf("arena with id %s not found", id)
	}

	count := arena.RatingCount + 1
	avg := (arena.Rating*float64(arena.RatingCount) + rating) / float64(count)

	return r.UpdateSetDocument(id, bson.M{"rating": avg, "rating_count": count})
}
