package settingsRepo

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

const settingsID = "platform"

// SettingsRepository manages the single platform settings document.
type SettingsRepository interface {
	Get() (*models.PlatformSettings, error)
	Save(settings *models.PlatformSettings) error
}

// MongoSettingsRepo implements SettingsRepository using MongoDB.
type MongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo creates a new instance of SettingsRepository using MongoDB.
func NewMongoSettingsRepo() SettingsRepository {
	return &MongoSettingsRepo{coll: database.Collection("settings")}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Get returns the settings document, falling back to defaults when it has
// never been saved.
func (r *MongoSettingsRepo) Get() (*models.PlatformSettings, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var settings models.PlatformSettings
	if err := r.coll.FindOne(ctx, bson.M{"id": settingsID}).Decode(&settings); err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.PlatformSettings{
				ID:                     settingsID,
				DefaultPaymentDeadline: 24,
			}, nil
		}
		return nil, fmt.Errorf("failed to fetch platform settings: %w", err)
	}
	return &settings, nil
}

// Save upserts the settings document.
func (r *MongoSettingsRepo) Save(settings *models.PlatformSettings) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	settings.ID = settingsID
	settings.UpdatedAt = time.Now()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": settingsID}, settings, opts); err != nil {
		return fmt.Errorf("failed to save platform settings: %w", err)
	}
	return nil
}
