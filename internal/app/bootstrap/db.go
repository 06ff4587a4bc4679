// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/dalemusser/cohortsync/internal/app/store/audit"
)

// EnsureSchema creates the indexes the service relies on.
//
// The unique (group_id, user_id) index on group_memberships is what
// makes concurrent reconciliation runs safe: a duplicate add surfaces
// as a duplicate-key error instead of a second row.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	memberships := db.Collection("group_memberships")
	_, err := memberships.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "group_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("membership indexes: %w", err)
	}

	groups := db.Collection("groups")
	_, err = groups.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "course_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "id_number", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("group indexes: %w", err)
	}

	sets := db.Collection("group_sets")
	_, err = sets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("group set indexes: %w", err)
	}

	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}

	logger.Info("database schema ensured")
	return nil
}
