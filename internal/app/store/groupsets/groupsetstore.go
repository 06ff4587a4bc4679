// internal/app/store/groupsets/groupsetstore.go
package groupsetstore

import (
	"context"
	"time"

	"github.com/dalemusser/cohortsync/internal/app/store/sequence"
	"github.com/dalemusser/cohortsync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store owns the group_sets collection. The rule engine that populates
// and evaluates sets is upstream; this service reads them to validate
// the autogroups that reference them.
type Store struct {
	c   *mongo.Collection
	seq *sequence.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("group_sets"),
		seq: sequence.New(db),
	}
}

// GetByID returns the set with the given id.
func (s *Store) GetByID(ctx context.Context, id int64) (models.GroupSet, error) {
	var set models.GroupSet
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&set); err != nil {
		return models.GroupSet{}, err
	}
	return set, nil
}

// Exists reports whether a set with the given id exists scoped to the
// given course. A set in another course does not count.
func (s *Store) Exists(ctx context.Context, id, courseID int64) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id, "course_id": courseID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a new set with a freshly allocated id.
func (s *Store) Create(ctx context.Context, set models.GroupSet) (models.GroupSet, error) {
	id, err := s.seq.Next(ctx, sequence.GroupSets)
	if err != nil {
		return models.GroupSet{}, err
	}
	set.ID = id
	set.TimeCreated = time.Now().Unix()
	if _, err := s.c.InsertOne(ctx, set); err != nil {
		return models.GroupSet{}, err
	}
	return set, nil
}
