// internal/app/store/settings/settingsstore.go
package settingsstore

import (
	"context"
	"time"

	"github.com/dalemusser/cohortsync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the sync_settings collection, which holds a
// single service-wide settings document.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sync_settings")}
}

// Get returns the settings document. When none has been saved yet the
// defaults apply: manual members are preserved.
func (s *Store) Get(ctx context.Context) (models.SyncSettings, error) {
	var settings models.SyncSettings
	err := s.c.FindOne(ctx, bson.M{"_id": models.SyncSettingsID}).Decode(&settings)
	if err == mongo.ErrNoDocuments {
		return models.SyncSettings{
			ID:                    models.SyncSettingsID,
			PreserveManualMembers: true,
		}, nil
	}
	if err != nil {
		return models.SyncSettings{}, err
	}
	return settings, nil
}

// Save upserts the settings document.
func (s *Store) Save(ctx context.Context, settings models.SyncSettings) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"preserve_manual_members": settings.PreserveManualMembers,
			"updated_at":              now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": models.SyncSettingsID}, update, opts)
	return err
}

// Exists reports whether a settings document has been saved.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"_id": models.SyncSettingsID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PreserveManualMembers is the single flag the reconciliation entity
// reads, looked up live so admin changes take effect immediately.
func (s *Store) PreserveManualMembers(ctx context.Context) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return settings.PreserveManualMembers, nil
}
