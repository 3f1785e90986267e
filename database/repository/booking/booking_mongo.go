package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "court_id", Value: 1}, {Key: "status", Value: 1}, {Key: "timeslot.date", Value: 1}}},
		{Keys: bson.D{{Key: "arena_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "payment_deadline", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// activeStatuses is the filter clause for bookings that hold court time.
func activeStatuses() bson.M {
	statuses := make([]string, len(models.ActiveBookingStatuses))
	for i, s := range models.ActiveBookingStatuses {
		statuses[i] = string(s)
	}
	return bson.M{"$in": statuses}
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a booking document.
func (r *MongoBookingRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// List returns a page of bookings matching the filter, newest first, with the
// total match count.
func (r *MongoBookingRepo) List(filter models.BookingFilter) ([]models.Booking, int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.ArenaID != "" {
		query["arena_id"] = filter.ArenaID
	}
	if filter.CourtID != "" {
		query["court_id"] = filter.CourtID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.ItemsPerPage)).
		SetLimit(int64(filter.ItemsPerPage))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}

func (r *MongoBookingRepo) find(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// FindActiveSingleOnDate returns slot-holding single bookings for a court on
// one calendar date.
func (r *MongoBookingRepo) FindActiveSingleOnDate(courtID, date string) ([]models.Booking, error) {
	return r.find(bson.M{
		"court_id":      courtID,
		"booking_type":  string(models.BookingSingle),
		"status":        activeStatuses(),
		"timeslot.date": date,
	})
}

// FindActiveSingleInRange returns slot-holding single bookings for a court
// with dates in [startDate, endDate]. A nil endDate leaves the range open.
func (r *MongoBookingRepo) FindActiveSingleInRange(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	dateClause := bson.M{"$gte": startDate}
	if endDate != nil {
		dateClause["$lte"] = *endDate
	}
	return r.find(bson.M{
		"court_id":      courtID,
		"booking_type":  string(models.BookingSingle),
		"status":        activeStatuses(),
		"timeslot.date": dateClause,
	})
}

// FindActiveMonthlyCovering returns slot-holding monthly bookings whose
// recurrence range includes the given date. ISO dates compare correctly as
// strings, which is what the $lte/$gte clauses rely on.
func (r *MongoBookingRepo) FindActiveMonthlyCovering(courtID, date string) ([]models.Booking, error) {
	return r.find(bson.M{
		"court_id":                  courtID,
		"booking_type":              string(models.BookingMonthly),
		"status":                    activeStatuses(),
		"monthly_config.start_date": bson.M{"$lte": date},
		"$or": []bson.M{
			{"monthly_config.end_date": nil},
			{"monthly_config.end_date": bson.M{"$exists": false}},
			{"monthly_config.end_date": bson.M{"$gte": date}},
		},
	})
}

// FindActiveMonthlyOverlapping returns slot-holding monthly bookings whose
// recurrence range intersects [startDate, endDate].
func (r *MongoBookingRepo) FindActiveMonthlyOverlapping(courtID, startDate string, endDate *string) ([]models.Booking, error) {
	filter := bson.M{
		"court_id":     courtID,
		"booking_type": string(models.BookingMonthly),
		"status":       activeStatuses(),
		"$or": []bson.M{
			{"monthly_config.end_date": nil},
			{"monthly_config.end_date": bson.M{"$exists": false}},
			{"monthly_config.end_date": bson.M{"$gte": startDate}},
		},
	}
	if endDate != nil {
		filter["monthly_config.start_date"] = bson.M{"$lte": *endDate}
	}
	return r.find(filter)
}

// CountActiveForUser counts the bookings currently holding court time for a user.
func (r *MongoBookingRepo) CountActiveForUser(userID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"status":  activeStatuses(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings for user %s: %w", userID, err)
	}
	return count, nil
}

// FindExpiredWaitingPayment returns bookings still waiting for payment past
// their deadline.
func (r *MongoBookingRepo) FindExpiredWaitingPayment(now time.Time) ([]models.Booking, error) {
	return r.find(bson.M{
		"status":           string(models.StatusWaitingPayment),
		"payment_deadline": bson.M{"$lt": now},
	})
}
