// internal/domain/autogroup/autogroup.go

// Package autogroup models a single auto-managed course group: a group
// record that is created, populated, and retired by group-set logic
// while behaving like any other group to the rest of the system.
//
// A Group instance is built for one short sequence of reconciliation
// calls and then discarded. The membership snapshot is loaded exactly
// once at construction and never refreshed, so callers that need fresh
// state build a new instance. There is no internal locking; callers
// that require strict consistency serialize access per group id.
package autogroup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dalemusser/cohortsync/internal/domain/models"
)

const (
	// Marker tags a group's id number as auto-managed. The full
	// convention is "autogroup|<groupSetId>" with the set id rendered
	// in decimal, no leading zeros.
	Marker = "autogroup|"

	// Origin is the source tag recorded on membership rows created by
	// automatic reconciliation.
	Origin = "autogroup"
)

// Group is one auto-managed group entity hydrated from the external
// store, with a point-in-time membership snapshot.
type Group struct {
	deps    Deps
	data    models.Group
	members []models.Membership // sorted ascending by membership id
}

// NewFromID builds an entity from a persisted group id. A missing
// record does not fail the fetch itself; it simply leaves nothing that
// validates, so construction ends in *InvalidGroupError.
func NewFromID(ctx context.Context, deps Deps, id int64) (*Group, error) {
	if id <= 0 {
		return nil, &InvalidGroupError{Input: id}
	}
	rec, err := deps.Store.FetchGroupRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if !validate(rec) {
		return nil, &InvalidGroupError{Input: id}
	}
	return build(ctx, deps, rec)
}

// NewFromRecord builds an entity from an already-fetched raw record,
// skipping the store round trip. Bulk callers that fetch many rows at
// once use this path.
func NewFromRecord(ctx context.Context, deps Deps, rec Record) (*Group, error) {
	if !validate(rec) {
		return nil, &InvalidGroupError{Input: rec}
	}
	return build(ctx, deps, rec)
}

func build(ctx context.Context, deps Deps, rec Record) (*Group, error) {
	g := &Group{deps: deps, data: hydrate(rec)}
	members, err := deps.Store.FetchMembershipMap(ctx, g.data.ID)
	if err != nil {
		return nil, err
	}
	g.members = members
	return g, nil
}

// ID returns the persisted identity, 0 when the entity has not been
// persisted yet.
func (g *Group) ID() int64 { return g.data.ID }

// CourseID returns the course the group belongs to.
func (g *Group) CourseID() int64 { return g.data.CourseID }

// Name returns the group's display name.
func (g *Group) Name() string { return g.data.Name }

// IDNumber returns the raw id number, marker and all.
func (g *Group) IDNumber() string { return g.data.IDNumber }

// Attributes returns a copy of the hydrated attribute set.
func (g *Group) Attributes() models.Group { return g.data }

// SetName changes the in-memory display name; Update persists it.
func (g *Group) SetName(name string) { g.data.Name = name }

// SetDescription changes the in-memory description and its format.
func (g *Group) SetDescription(desc string, format int64) {
	g.data.Description = desc
	g.data.DescriptionFormat = format
}

// SetIDNumber changes the in-memory id number. Handing a group an id
// number without the marker detaches it from auto-management: Remove
// and IsValidAutogroup treat it as an ordinary group from then on.
func (g *Group) SetIDNumber(idNumber string) { g.data.IDNumber = idNumber }

// GroupSetID returns the group-set id parsed from the id number, and
// whether one could be parsed.
func (g *Group) GroupSetID() (int64, bool) { return ParseGroupSetID(g.data.IDNumber) }

// MembershipCount returns the size of the membership snapshot.
func (g *Group) MembershipCount() int { return len(g.members) }

// MemberIDs returns the user ids in the snapshot, in snapshot order.
func (g *Group) MemberIDs() []int64 {
	ids := make([]int64, len(g.members))
	for i, m := range g.members {
		ids[i] = m.UserID
	}
	return ids
}

// EnsureMember makes userID a member of this group if the snapshot says
// they are not one already. Returns true when an add was issued.
//
// The snapshot is not updated after a successful add. A second call for
// the same user issues a second add, which the store's uniqueness
// constraint turns into a no-op or a surfaced error; callers that need
// current state build a fresh entity.
func (g *Group) EnsureMember(ctx context.Context, userID int64) (bool, error) {
	for _, m := range g.members {
		if m.UserID == userID {
			return false, nil
		}
	}
	if err := g.deps.Mutator.AddMember(ctx, g.data.ID, userID, Origin); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureNotMember removes userID from this group if the snapshot says
// they are a member. Returns true when a remove was issued.
//
// When the preserve-manual-members flag is set and a manual assignment
// row exists for (userID, group), the user is left alone and false is
// returned before the snapshot is consulted at all.
//
// Only the first matching snapshot entry is removed; a user holds at
// most one membership row per group, and the removed entry is dropped
// from the snapshot so a repeat call cannot issue a second remove.
func (g *Group) EnsureNotMember(ctx context.Context, userID int64) (bool, error) {
	preserve, err := g.deps.Config.PreserveManualMembers(ctx)
	if err != nil {
		return false, err
	}
	if preserve {
		manual, err := g.deps.Store.ManualAssignmentExists(ctx, g.data.ID, userID)
		if err != nil {
			return false, err
		}
		if manual {
			return false, nil
		}
	}
	for i, m := range g.members {
		if m.UserID == userID {
			if err := g.deps.Mutator.RemoveMember(ctx, g.data.ID, userID); err != nil {
				return false, err
			}
			g.members = append(g.members[:i], g.members[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Create persists an unpersisted entity through the create primitive
// and adopts the returned identity. On an already-persisted entity it
// is a no-op.
func (g *Group) Create(ctx context.Context) error {
	if g.data.ID != 0 {
		return nil
	}
	id, err := g.deps.Mutator.CreateGroup(ctx, serialize(&g.data))
	if err != nil {
		return err
	}
	g.data.ID = id
	return nil
}

// Update pushes the full current attribute set through the update
// primitive. Returns false without side effects when the entity has
// never been persisted.
func (g *Group) Update(ctx context.Context) (bool, error) {
	if g.data.ID == 0 {
		return false, nil
	}
	return g.deps.Mutator.UpdateGroup(ctx, serialize(&g.data))
}

// Remove deletes the group through the delete primitive. Groups whose
// id number lacks the autogroup marker are never deleted here; for
// those Remove returns false without side effects. The entity object
// stays usable for reads afterward.
func (g *Group) Remove(ctx context.Context) (bool, error) {
	if !strings.Contains(g.data.IDNumber, Marker) {
		return false, nil
	}
	return g.deps.Mutator.DeleteGroup(ctx, g.data.ID)
}

// IsValidAutogroup reports whether this group is a live member of a
// known group set: the id number carries the marker, the suffix parses
// to a set id >= 1, and a set with that id exists for this group's
// course. Each failed step short-circuits to false; a malformed suffix
// is not an error.
func (g *Group) IsValidAutogroup(ctx context.Context) (bool, error) {
	setID, ok := ParseGroupSetID(g.data.IDNumber)
	if !ok {
		return false, nil
	}
	return g.deps.Store.GroupSetExists(ctx, setID, g.data.CourseID)
}

// ParseGroupSetID extracts the group-set id from an id number. The id
// is everything after the marker and must parse as a decimal integer
// >= 1.
func ParseGroupSetID(idNumber string) (int64, bool) {
	i := strings.Index(idNumber, Marker)
	if i < 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(idNumber[i+len(Marker):], 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// IDNumberFor renders the id number for a group set, following the
// "autogroup|<id>" convention exactly.
func IDNumberFor(setID int64) string {
	return fmt.Sprintf("%s%d", Marker, setID)
}
