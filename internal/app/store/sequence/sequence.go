// internal/app/store/sequence/sequence.go
package sequence

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Counter names used by the stores.
const (
	Groups      = "groups"
	Memberships = "group_memberships"
	GroupSets   = "group_sets"
)

// Store allocates monotonically increasing int64 identities from a
// counters collection. The surrounding system keys everything by
// numeric ids (group id numbers embed them), so ObjectIDs are not an
// option here.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("counters")}
}

// Next returns the next id for the named counter, creating the counter
// on first use. Allocation is atomic; concurrent callers never see the
// same value.
func (s *Store) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc struct {
		Value int64 `bson:"value"`
	}
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Value, nil
}
