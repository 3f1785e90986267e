package courtRepo

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

// MongoCourtRepo implements CourtRepository using MongoDB.
type MongoCourtRepo struct {
	coll *mongo.Collection
}

// NewMongoCourtRepo creates a new instance of CourtRepository using MongoDB.
func NewMongoCourtRepo() CourtRepository {
	repo := &MongoCourtRepo{coll: database.Collection("courts")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCourtRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "arena_id", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "price_per_hour", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new court document.
func (r *MongoCourtRepo) Create(court *models.Court) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	court.CreatedAt = now
	court.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, court); err != nil {
		return fmt.Errorf("failed to create court: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a court document.
func (r *MongoCourtRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update court with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("court with id %s not found", id)
	}
	return nil
}

// Delete removes a court document by its ID.
func (r *MongoCourtRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete court with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("court with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a court by its unique ID.
func (r *MongoCourtRepo) GetByID(id string) (*models.Court, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var court models.Court
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&court); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch court with id %s: %w", id, err)
	}
	return &court, nil
}

// List returns a page of courts matching the filter with the total match count.
func (r *MongoCourtRepo) List(filter models.CourtFilter, arenaIDs []string) ([]models.Court, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.ArenaID != "" {
		query["arena_id"] = filter.ArenaID
	} else if arenaIDs != nil {
		query["arena_id"] = bson.M{"$in": arenaIDs}
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}
	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price_per_hour"] = price
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count courts: %w", err)
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch filter.SortBy {
	case "price_asc":
		sort = bson.D{{Key: "price_per_hour", Value: 1}}
	case "price_desc":
		sort = bson.D{{Key: "price_per_hour", Value: -1}}
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64((filter.Page - 1) * filter.ItemsPerPage)).
		SetLimit(int64(filter.ItemsPerPage))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve courts: %w", err)
	}
	defer cursor.Close(ctx)

	var courts []models.Court
	if err := cursor.All(ctx, &courts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode courts: %w", err)
	}
	return courts, total, nil
}

// ListByArena returns all courts belonging to an arena.
func (r *MongoCourtRepo) ListByArena(arenaID string) ([]models.Court, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"arena_id": arenaID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve courts for arena %s: %w", arenaID, err)
	}
	defer cursor.Close(ctx)

	var courts []models.Court
	if err := cursor.All(ctx, &courts); err != nil {
		return nil, fmt.Errorf("failed to decode courts: %w", err)
	}
	return courts, nil
}
