// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"time"

	"github.com/dalemusser/cohortsync/internal/app/store/sequence"
	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store is the group record store. It owns the groups collection and,
// for the delete primitive, also touches group_memberships so a deleted
// group never leaves orphaned membership rows behind.
type Store struct {
	c       *mongo.Collection
	members *mongo.Collection
	seq     *sequence.Store
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:       db.Collection("groups"),
		members: db.Collection("group_memberships"),
		seq:     sequence.New(db),
	}
}

// FetchRecord returns the raw record for a group id, or (nil, nil) when
// no such group exists. The document's _id is surfaced under the "id"
// key so the record shape matches what the entity's field table expects.
func (s *Store) FetchRecord(ctx context.Context, id int64) (autogroup.Record, error) {
	var doc bson.M
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec := autogroup.Record(doc)
	rec["id"] = doc["_id"]
	delete(rec, "_id")
	return rec, nil
}

// Create inserts a new group record with a freshly allocated id and
// returns that id. The attribute values are stored as given.
func (s *Store) Create(ctx context.Context, rec autogroup.Record) (int64, error) {
	id, err := s.seq.Next(ctx, sequence.Groups)
	if err != nil {
		return 0, err
	}

	doc := bson.M{"_id": id}
	for k, v := range rec {
		if k == "id" {
			continue
		}
		doc[k] = v
	}
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces the stored attribute set for rec's id and stamps
// time_modified. Returns false when no such group exists.
func (s *Store) Update(ctx context.Context, rec autogroup.Record) (bool, error) {
	id, ok := rec["id"].(int64)
	if !ok || id == 0 {
		return false, nil
	}

	set := bson.M{"time_modified": time.Now().Unix()}
	for k, v := range rec {
		if k == "id" || k == "time_modified" {
			continue
		}
		set[k] = v
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a group record and all of its membership rows.
// Returns false when no such group exists.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if res.DeletedCount == 0 {
		return false, nil
	}
	if _, err := s.members.DeleteMany(ctx, bson.M{"group_id": id}); err != nil {
		return false, err
	}
	return true, nil
}

// CountByCourse returns the number of groups in a course.
func (s *Store) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"course_id": courseID})
}

// ListByCourse returns the raw records for every group in a course,
// ordered by id.
func (s *Store) ListByCourse(ctx context.Context, courseID int64) ([]autogroup.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var recs []autogroup.Record
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		rec := autogroup.Record(doc)
		rec["id"] = doc["_id"]
		delete(rec, "_id")
		recs = append(recs, rec)
	}
	return recs, cur.Err()
}
