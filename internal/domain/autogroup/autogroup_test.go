package autogroup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
	"github.com/dalemusser/cohortsync/internal/domain/models"
)

// fakeStore is an in-memory RecordStore.
type fakeStore struct {
	records   map[int64]autogroup.Record
	members   map[int64][]models.Membership
	groupSets map[int64]int64 // set id -> course id
	manual    map[[2]int64]bool

	setLookups int
}

func (f *fakeStore) FetchGroupRecord(ctx context.Context, id int64) (autogroup.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeStore) FetchMembershipMap(ctx context.Context, groupID int64) ([]models.Membership, error) {
	return f.members[groupID], nil
}

func (f *fakeStore) GroupSetExists(ctx context.Context, setID, courseID int64) (bool, error) {
	f.setLookups++
	c, ok := f.groupSets[setID]
	return ok && c == courseID, nil
}

func (f *fakeStore) ManualAssignmentExists(ctx context.Context, groupID, userID int64) (bool, error) {
	return f.manual[[2]int64{groupID, userID}], nil
}

// fakeMutator records every primitive call.
type fakeMutator struct {
	adds    [][3]int64 // group, user; third slot unused
	sources []string
	removes [][2]int64
	deletes []int64
	updates []autogroup.Record
	creates []autogroup.Record

	nextID    int64
	deleteOK  bool
	updateOK  bool
	createErr error
}

func (f *fakeMutator) CreateGroup(ctx context.Context, rec autogroup.Record) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.creates = append(f.creates, rec)
	return f.nextID, nil
}

func (f *fakeMutator) UpdateGroup(ctx context.Context, rec autogroup.Record) (bool, error) {
	f.updates = append(f.updates, rec)
	return f.updateOK, nil
}

func (f *fakeMutator) DeleteGroup(ctx context.Context, id int64) (bool, error) {
	f.deletes = append(f.deletes, id)
	return f.deleteOK, nil
}

func (f *fakeMutator) AddMember(ctx context.Context, groupID, userID int64, source string) error {
	f.adds = append(f.adds, [3]int64{groupID, userID})
	f.sources = append(f.sources, source)
	return nil
}

func (f *fakeMutator) RemoveMember(ctx context.Context, groupID, userID int64) error {
	f.removes = append(f.removes, [2]int64{groupID, userID})
	return nil
}

type fakeConfig struct{ preserve bool }

func (f fakeConfig) PreserveManualMembers(ctx context.Context) (bool, error) {
	return f.preserve, nil
}

func newDeps() (*fakeStore, *fakeMutator, autogroup.Deps) {
	store := &fakeStore{
		records:   map[int64]autogroup.Record{},
		members:   map[int64][]models.Membership{},
		groupSets: map[int64]int64{},
		manual:    map[[2]int64]bool{},
	}
	mut := &fakeMutator{deleteOK: true, updateOK: true, nextID: 100}
	return store, mut, autogroup.Deps{Store: store, Mutator: mut, Config: fakeConfig{}}
}

func validRecord() autogroup.Record {
	return autogroup.Record{
		"id":        int64(5),
		"course_id": int64(2),
		"name":      "G1",
		"id_number": "autogroup|3",
	}
}

func TestNewFromRecord_NotAutogroup(t *testing.T) {
	_, _, deps := newDeps()
	ctx := context.Background()

	rec := validRecord()
	rec["id_number"] = "plain-group-1"

	_, err := autogroup.NewFromRecord(ctx, deps, rec)
	var ige *autogroup.InvalidGroupError
	if !errors.As(err, &ige) {
		t.Fatalf("expected InvalidGroupError, got %v", err)
	}
}

func TestNewFromRecord_EmptyName(t *testing.T) {
	_, _, deps := newDeps()
	ctx := context.Background()

	rec := validRecord()
	rec["name"] = ""

	_, err := autogroup.NewFromRecord(ctx, deps, rec)
	var ige *autogroup.InvalidGroupError
	if !errors.As(err, &ige) {
		t.Fatalf("expected InvalidGroupError, got %v", err)
	}
}

func TestNewFromRecord_DefaultsTimestamps(t *testing.T) {
	_, _, deps := newDeps()
	ctx := context.Background()

	g, err := autogroup.NewFromRecord(ctx, deps, validRecord())
	if err != nil {
		t.Fatalf("NewFromRecord failed: %v", err)
	}

	attrs := g.Attributes()
	if attrs.TimeCreated == 0 {
		t.Error("expected TimeCreated to default to now")
	}
	if attrs.TimeModified != 0 {
		t.Errorf("TimeModified: got %d, want 0", attrs.TimeModified)
	}
}

func TestNewFromRecord_IgnoresUnknownFields(t *testing.T) {
	_, _, deps := newDeps()
	ctx := context.Background()

	rec := validRecord()
	rec["favorite_color"] = "green"

	g, err := autogroup.NewFromRecord(ctx, deps, rec)
	if err != nil {
		t.Fatalf("NewFromRecord failed: %v", err)
	}
	if g.Name() != "G1" {
		t.Errorf("Name: got %q, want %q", g.Name(), "G1")
	}
}

func TestNewFromID_MissingRecord(t *testing.T) {
	_, _, deps := newDeps()
	ctx := context.Background()

	_, err := autogroup.NewFromID(ctx, deps, 42)
	var ige *autogroup.InvalidGroupError
	if !errors.As(err, &ige) {
		t.Fatalf("expected InvalidGroupError, got %v", err)
	}
	if ige.Input != int64(42) {
		t.Errorf("Input: got %v, want 42", ige.Input)
	}
}

func TestNewFromID_LoadsSnapshot(t *testing.T) {
	store, _, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()
	store.members[5] = []models.Membership{
		{ID: 1, GroupID: 5, UserID: 10, Source: models.SourceAutogroup},
		{ID: 2, GroupID: 5, UserID: 11, Source: models.SourceManual},
	}

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}
	if g.MembershipCount() != 2 {
		t.Errorf("MembershipCount: got %d, want 2", g.MembershipCount())
	}
	ids := g.MemberIDs()
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 11 {
		t.Errorf("MemberIDs: got %v, want [10 11]", ids)
	}
}

func TestEnsureMember_AlreadyPresent(t *testing.T) {
	store, mut, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()
	store.members[5] = []models.Membership{{ID: 1, GroupID: 5, UserID: 10}}

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	// Idempotent against the initial snapshot: both calls are no-ops.
	for i := 0; i < 2; i++ {
		added, err := g.EnsureMember(ctx, 10)
		if err != nil {
			t.Fatalf("EnsureMember failed: %v", err)
		}
		if added {
			t.Errorf("call %d: expected no-op for existing member", i+1)
		}
	}
	if len(mut.adds) != 0 {
		t.Errorf("expected no add calls, got %d", len(mut.adds))
	}
}

func TestEnsureMember_AddsWithOriginTag(t *testing.T) {
	store, mut, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	added, err := g.EnsureMember(ctx, 10)
	if err != nil {
		t.Fatalf("EnsureMember failed: %v", err)
	}
	if !added {
		t.Error("expected add to be issued")
	}
	if len(mut.adds) != 1 || mut.adds[0][0] != 5 || mut.adds[0][1] != 10 {
		t.Errorf("adds: got %v, want [[5 10 0]]", mut.adds)
	}
	if mut.sources[0] != autogroup.Origin {
		t.Errorf("source tag: got %q, want %q", mut.sources[0], autogroup.Origin)
	}

	// The snapshot is deliberately not refreshed, so a second call for
	// the same user issues a second add.
	added, err = g.EnsureMember(ctx, 10)
	if err != nil {
		t.Fatalf("EnsureMember failed: %v", err)
	}
	if !added || len(mut.adds) != 2 {
		t.Errorf("expected second add against stale snapshot, adds=%d", len(mut.adds))
	}
}

func TestEnsureNotMember_RemovesOnce(t *testing.T) {
	store, mut, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()
	store.members[5] = []models.Membership{{ID: 1, GroupID: 5, UserID: 10}}

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	removed, err := g.EnsureNotMember(ctx, 10)
	if err != nil {
		t.Fatalf("EnsureNotMember failed: %v", err)
	}
	if !removed {
		t.Error("expected remove to be issued")
	}

	// The removed entry is dropped from the snapshot, so true is never
	// returned twice for the same entry.
	removed, err = g.EnsureNotMember(ctx, 10)
	if err != nil {
		t.Fatalf("EnsureNotMember failed: %v", err)
	}
	if removed {
		t.Error("expected second call to be a no-op")
	}
	if len(mut.removes) != 1 {
		t.Errorf("expected exactly one remove call, got %d", len(mut.removes))
	}
}

func TestEnsureNotMember_NotFound(t *testing.T) {
	store, mut, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	removed, err := g.EnsureNotMember(ctx, 99)
	if err != nil {
		t.Fatalf("EnsureNotMember failed: %v", err)
	}
	if removed || len(mut.removes) != 0 {
		t.Error("expected no-op for non-member")
	}
}

func TestEnsureNotMember_PreservesManualAssignment(t *testing.T) {
	store, mut, deps := newDeps()
	deps.Config = fakeConfig{preserve: true}
	ctx := context.Background()

	store.records[5] = validRecord()
	store.members[5] = []models.Membership{{ID: 1, GroupID: 5, UserID: 10, Source: models.SourceManual}}
	store.manual[[2]int64{5, 10}] = true

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	removed, err := g.EnsureNotMember(ctx, 10)
	if err != nil {
		t.Fatalf("EnsureNotMember failed: %v", err)
	}
	if removed {
		t.Error("expected manual member to be preserved")
	}
	if len(mut.removes) != 0 {
		t.Errorf("expected no remove calls, got %d", len(mut.removes))
	}
	if g.MembershipCount() != 1 {
		t.Errorf("snapshot should be untouched, count=%d", g.MembershipCount())
	}
}

func TestEnsureNotMember_PreserveOffRemovesManual(t *testing.T) {
	store, mut, deps := newDeps()
	deps.Config = fakeConfig{preserve: false}
	ctx := context.Background()

	store.records[5] = validRecord()
	store.members[5] = []models.Membership{{ID: 1, GroupID: 5, UserID: 10, Source: models.SourceManual}}
	store.manual[[2]int64{5, 10}] = true

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	removed, err := g.EnsureNotMember(ctx, 10)
	if err != nil {
		t.Fatalf("EnsureNotMember failed: %v", err)
	}
	if !removed || len(mut.removes) != 1 {
		t.Error("expected manual member to be removed when preserve flag is off")
	}
}

func TestParseGroupSetID(t *testing.T) {
	cases := []struct {
		idNumber string
		want     int64
		ok       bool
	}{
		{"autogroup|3", 3, true},
		{"autogroup|124", 124, true},
		{"autogroup|0", 0, false},
		{"autogroup|-1", 0, false},
		{"autogroup|abc", 0, false},
		{"autogroup|", 0, false},
		{"plain-group-1", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := autogroup.ParseGroupSetID(c.idNumber)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseGroupSetID(%q): got (%d, %v), want (%d, %v)",
				c.idNumber, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidAutogroup_MalformedSuffix(t *testing.T) {
	store, _, deps := newDeps()
	ctx := context.Background()

	for _, idNumber := range []string{"autogroup|0", "autogroup|-1", "autogroup|abc"} {
		rec := validRecord()
		rec["id_number"] = idNumber

		g, err := autogroup.NewFromRecord(ctx, deps, rec)
		if err != nil {
			t.Fatalf("NewFromRecord(%q) failed: %v", idNumber, err)
		}
		valid, err := g.IsValidAutogroup(ctx)
		if err != nil {
			t.Fatalf("IsValidAutogroup failed: %v", err)
		}
		if valid {
			t.Errorf("%q: expected invalid", idNumber)
		}
	}
	if store.setLookups != 0 {
		t.Errorf("malformed suffixes must short-circuit, got %d lookups", store.setLookups)
	}
}

func TestIsValidAutogroup_CourseScope(t *testing.T) {
	store, _, deps := newDeps()
	ctx := context.Background()

	store.groupSets[3] = 2

	g, err := autogroup.NewFromRecord(ctx, deps, validRecord())
	if err != nil {
		t.Fatalf("NewFromRecord failed: %v", err)
	}

	valid, err := g.IsValidAutogroup(ctx)
	if err != nil {
		t.Fatalf("IsValidAutogroup failed: %v", err)
	}
	if !valid {
		t.Error("expected valid for set 3 in course 2")
	}

	// Same set id scoped to a different course flips the result.
	store.groupSets[3] = 9
	valid, err = g.IsValidAutogroup(ctx)
	if err != nil {
		t.Fatalf("IsValidAutogroup failed: %v", err)
	}
	if valid {
		t.Error("expected invalid when the set belongs to another course")
	}
}

func TestRemove_NonAutogroup(t *testing.T) {
	store, mut, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	// Detach the group from auto-management, then try to remove it.
	g.SetIDNumber("plain-group-1")

	ok, err := g.Remove(ctx)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok {
		t.Error("expected Remove to refuse a group without the marker")
	}
	if len(mut.deletes) != 0 {
		t.Errorf("expected no delete calls, got %d", len(mut.deletes))
	}
}

func TestRemove_Autogroup(t *testing.T) {
	store, mut, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	ok, err := g.Remove(ctx)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !ok {
		t.Error("expected delete to be delegated")
	}
	if len(mut.deletes) != 1 || mut.deletes[0] != 5 {
		t.Errorf("deletes: got %v, want [5]", mut.deletes)
	}
}

func TestCreate_AdoptsID(t *testing.T) {
	_, mut, deps := newDeps()
	ctx := context.Background()

	rec := validRecord()
	rec["id"] = int64(0)

	g, err := autogroup.NewFromRecord(ctx, deps, rec)
	if err != nil {
		t.Fatalf("NewFromRecord failed: %v", err)
	}
	if g.ID() != 0 {
		t.Fatalf("precondition: ID should be 0, got %d", g.ID())
	}

	if err := g.Create(ctx); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != 100 {
		t.Errorf("ID: got %d, want 100", g.ID())
	}
	if len(mut.creates) != 1 {
		t.Fatalf("expected one create call, got %d", len(mut.creates))
	}
	if mut.creates[0]["name"] != "G1" {
		t.Errorf("create payload name: got %v, want G1", mut.creates[0]["name"])
	}

	// Already persisted: no second create.
	if err := g.Create(ctx); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(mut.creates) != 1 {
		t.Errorf("Create on persisted entity must be a no-op, got %d calls", len(mut.creates))
	}
}

func TestUpdate_Unpersisted(t *testing.T) {
	_, mut, deps := newDeps()
	ctx := context.Background()

	rec := validRecord()
	rec["id"] = int64(0)

	g, err := autogroup.NewFromRecord(ctx, deps, rec)
	if err != nil {
		t.Fatalf("NewFromRecord failed: %v", err)
	}

	ok, err := g.Update(ctx)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if ok || len(mut.updates) != 0 {
		t.Error("Update on unpersisted entity must be a no-op returning false")
	}
}

func TestUpdate_Persisted(t *testing.T) {
	store, mut, deps := newDeps()
	ctx := context.Background()

	store.records[5] = validRecord()

	g, err := autogroup.NewFromID(ctx, deps, 5)
	if err != nil {
		t.Fatalf("NewFromID failed: %v", err)
	}

	ok, err := g.Update(ctx)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !ok {
		t.Error("expected update to be delegated")
	}
	if len(mut.updates) != 1 {
		t.Fatalf("expected one update call, got %d", len(mut.updates))
	}
	if mut.updates[0]["id"] != int64(5) {
		t.Errorf("update payload id: got %v, want 5", mut.updates[0]["id"])
	}
}
