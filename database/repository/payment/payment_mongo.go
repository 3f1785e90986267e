package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB.
type MongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	repo := &MongoPaymentRepo{coll: database.Collection("payments")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "gateway_id", Value: 1}}},
		{Keys: bson.D{{Key: "arena_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment document.
func (r *MongoPaymentRepo) Create(payment *models.Payment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a payment document.
func (r *MongoPaymentRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update payment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment with id %s not found", id)
	}
	return nil
}

func (r *MongoPaymentRepo) findOne(filter bson.M, opts ...*options.FindOneOptions) (*models.Payment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var payment models.Payment
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	return &payment, nil
}

// GetByID retrieves a payment by its unique ID.
func (r *MongoPaymentRepo) GetByID(id string) (*models.Payment, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByGatewayID retrieves a payment by the gateway's charge identifier.
func (r *MongoPaymentRepo) GetByGatewayID(gatewayID string) (*models.Payment, error) {
	return r.findOne(bson.M{"gateway_id": gatewayID})
}

// GetOpenForBooking returns a pending or approved payment on the booking, or
// nil when none exists.
func (r *MongoPaymentRepo) GetOpenForBooking(bookingID string) (*models.Payment, error) {
	return r.findOne(bson.M{
		"booking_id": bookingID,
		"status": bson.M{"$in": []string{
			string(models.PaymentPending),
			string(models.PaymentApproved),
		}},
	})
}

// GetLatestForBooking returns the most recent payment on the booking, or nil
// when none exists.
func (r *MongoPaymentRepo) GetLatestForBooking(bookingID string) (*models.Payment, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findOne(bson.M{"booking_id": bookingID}, opts)
}

// ListForArena returns a page of payments received by an arena, newest first.
func (r *MongoPaymentRepo) ListForArena(arenaID string, page, perPage int) ([]models.Payment, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"arena_id": arenaID}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode payments: %w", err)
	}
	return payments, total, nil
}
