// internal/domain/autogroup/ports.go
package autogroup

import (
	"context"

	"github.com/dalemusser/cohortsync/internal/domain/models"
)

// Record is the raw, untyped row shape the external record store hands
// back. Keys match the store's field names ("id", "course_id", "name",
// "id_number", ...). Hydration copies the keys it recognizes and
// ignores the rest.
type Record map[string]any

// RecordStore is the read side of the external store.
type RecordStore interface {
	// FetchGroupRecord returns the raw record for a group id, or
	// (nil, nil) when no such record exists.
	FetchGroupRecord(ctx context.Context, id int64) (Record, error)

	// FetchMembershipMap returns the group's membership rows sorted
	// ascending by membership id. The order is not semantically
	// significant, but it must be deterministic.
	FetchMembershipMap(ctx context.Context, groupID int64) ([]models.Membership, error)

	// GroupSetExists reports whether a group set with the given id
	// exists and is scoped to the given course.
	GroupSetExists(ctx context.Context, setID, courseID int64) (bool, error)

	// ManualAssignmentExists reports whether (groupID, userID) has a
	// membership row created by a human rather than by reconciliation.
	ManualAssignmentExists(ctx context.Context, groupID, userID int64) (bool, error)
}

// Mutator is the write side: the primitive operations that physically
// create, update, and delete group records and membership rows. The
// primitives emit whatever system events the surrounding platform
// expects; this entity never does.
type Mutator interface {
	CreateGroup(ctx context.Context, rec Record) (int64, error)
	UpdateGroup(ctx context.Context, rec Record) (bool, error)
	DeleteGroup(ctx context.Context, id int64) (bool, error)

	// AddMember adds userID to groupID tagged with a source marker
	// (Origin for automatic adds) for audit purposes.
	AddMember(ctx context.Context, groupID, userID int64, source string) error
	RemoveMember(ctx context.Context, groupID, userID int64) error
}

// ConfigSource supplies the one configuration value this entity reads.
type ConfigSource interface {
	// PreserveManualMembers reports whether manually assigned members
	// are protected from automatic removal.
	PreserveManualMembers(ctx context.Context) (bool, error)
}

// Deps bundles the ports a Group needs. All collaborators are injected
// here; the entity performs no ambient lookups.
type Deps struct {
	Store   RecordStore
	Mutator Mutator
	Config  ConfigSource
}
