package groupsetstore_test

import (
	"testing"

	groupsetstore "github.com/dalemusser/cohortsync/internal/app/store/groupsets"
	"github.com/dalemusser/cohortsync/internal/domain/models"
	"github.com/dalemusser/cohortsync/internal/testutil"
)

func TestStore_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupsetstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	set := fixtures.CreateGroupSet(ctx, 2, "By Department")

	ok, err := store.Exists(ctx, set.ID, 2)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !ok {
		t.Error("expected set to exist for its own course")
	}
}

func TestStore_Exists_WrongCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupsetstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	set := fixtures.CreateGroupSet(ctx, 2, "By Department")

	ok, err := store.Exists(ctx, set.ID, 9)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("a set scoped to another course must not count")
	}
}

func TestStore_Exists_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupsetstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ok, err := store.Exists(ctx, 9999, 2)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if ok {
		t.Error("expected missing set to not exist")
	}
}

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupsetstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	set, err := store.Create(ctx, models.GroupSet{CourseID: 2, Name: "By Year"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if set.ID <= 0 {
		t.Errorf("expected positive id, got %d", set.ID)
	}
	if set.TimeCreated == 0 {
		t.Error("expected TimeCreated to be stamped")
	}

	got, err := store.GetByID(ctx, set.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "By Year" {
		t.Errorf("Name: got %q, want %q", got.Name, "By Year")
	}
}
