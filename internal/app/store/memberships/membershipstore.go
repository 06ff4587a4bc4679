// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/cohortsync/internal/app/store/sequence"
	"github.com/dalemusser/cohortsync/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store owns the group_memberships collection. One row per
// (group_id, user_id), enforced by a unique index.
type Store struct {
	c   *mongo.Collection
	seq *sequence.Store
}

var ErrDuplicateMembership = errors.New("user is already a member of this group")

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("group_memberships"),
		seq: sequence.New(db),
	}
}

// FetchMap returns a group's membership rows sorted ascending by
// membership id. The order carries no meaning but keeps snapshot
// loading deterministic.
func (s *Store) FetchMap(ctx context.Context, groupID int64) ([]models.Membership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []models.Membership
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Add inserts a membership row tagged with its source ("autogroup" for
// automatic reconciliation, "manual" for human adds).
func (s *Store) Add(ctx context.Context, groupID, userID int64, source string) error {
	id, err := s.seq.Next(ctx, sequence.Memberships)
	if err != nil {
		return err
	}

	row := models.Membership{
		ID:        id,
		GroupID:   groupID,
		UserID:    userID,
		Source:    source,
		TimeAdded: time.Now().Unix(),
	}
	if _, err := s.c.InsertOne(ctx, row); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateMembership
		}
		return err
	}
	return nil
}

// Remove deletes the membership row for (groupID, userID).
func (s *Store) Remove(ctx context.Context, groupID, userID int64) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"group_id": groupID, "user_id": userID})
	return err
}

// ManualExists reports whether (groupID, userID) has a membership row
// that was not created by automatic reconciliation.
func (s *Store) ManualExists(ctx context.Context, groupID, userID int64) (bool, error) {
	filter := bson.M{
		"group_id": groupID,
		"user_id":  userID,
		"source":   bson.M{"$ne": models.SourceAutogroup},
	}
	err := s.c.FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByGroup returns the number of membership rows for a group.
func (s *Store) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"group_id": groupID})
}
