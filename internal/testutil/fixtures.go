package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/cohortsync/internal/app/store/sequence"
	"github.com/dalemusser/cohortsync/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db  *mongo.Database
	seq *sequence.Store
	t   *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, seq: sequence.New(db), t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGroupSet creates a group set scoped to a course.
func (f *Fixtures) CreateGroupSet(ctx context.Context, courseID int64, name string) models.GroupSet {
	f.t.Helper()

	id, err := f.seq.Next(ctx, sequence.GroupSets)
	if err != nil {
		f.t.Fatalf("failed to allocate group set id: %v", err)
	}
	set := models.GroupSet{
		ID:          id,
		CourseID:    courseID,
		Name:        name,
		TimeCreated: time.Now().Unix(),
	}
	if _, err := f.db.Collection("group_sets").InsertOne(ctx, set); err != nil {
		f.t.Fatalf("failed to create test group set: %v", err)
	}
	return set
}

// CreateGroup creates a group record with the given id number.
func (f *Fixtures) CreateGroup(ctx context.Context, courseID int64, name, idNumber string) models.Group {
	f.t.Helper()

	id, err := f.seq.Next(ctx, sequence.Groups)
	if err != nil {
		f.t.Fatalf("failed to allocate group id: %v", err)
	}
	now := time.Now().Unix()
	g := models.Group{
		ID:            id,
		CourseID:      courseID,
		Name:          name,
		IDNumber:      idNumber,
		Visible:       1,
		Participation: 1,
		TimeCreated:   now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// AddMembership inserts a membership row with the given source tag.
func (f *Fixtures) AddMembership(ctx context.Context, groupID, userID int64, source string) models.Membership {
	f.t.Helper()

	id, err := f.seq.Next(ctx, sequence.Memberships)
	if err != nil {
		f.t.Fatalf("failed to allocate membership id: %v", err)
	}
	m := models.Membership{
		ID:        id,
		GroupID:   groupID,
		UserID:    userID,
		Source:    source,
		TimeAdded: time.Now().Unix(),
	}
	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// SaveSettings writes the service settings document.
func (f *Fixtures) SaveSettings(ctx context.Context, preserveManual bool) {
	f.t.Helper()

	now := time.Now().UTC()
	settings := models.SyncSettings{
		ID:                    models.SyncSettingsID,
		PreserveManualMembers: preserveManual,
		UpdatedAt:             &now,
	}
	opts := options.Replace().SetUpsert(true)
	filter := bson.M{"_id": models.SyncSettingsID}
	if _, err := f.db.Collection("sync_settings").ReplaceOne(ctx, filter, settings, opts); err != nil {
		f.t.Fatalf("failed to save test settings: %v", err)
	}
}
