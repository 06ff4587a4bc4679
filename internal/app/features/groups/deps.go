// internal/app/features/groups/deps.go
package groups

import (
	"context"

	groupstore "github.com/dalemusser/cohortsync/internal/app/store/groups"
	groupsetstore "github.com/dalemusser/cohortsync/internal/app/store/groupsets"
	membershipstore "github.com/dalemusser/cohortsync/internal/app/store/memberships"
	settingsstore "github.com/dalemusser/cohortsync/internal/app/store/settings"
	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
	"github.com/dalemusser/cohortsync/internal/domain/models"
)

// The entity's ports are assembled here from the mongo stores. The
// entity itself never sees a *mongo.Database.

type recordPorts struct {
	groups  *groupstore.Store
	members *membershipstore.Store
	sets    *groupsetstore.Store
}

var _ autogroup.RecordStore = recordPorts{}

func (p recordPorts) FetchGroupRecord(ctx context.Context, id int64) (autogroup.Record, error) {
	return p.groups.FetchRecord(ctx, id)
}

func (p recordPorts) FetchMembershipMap(ctx context.Context, groupID int64) ([]models.Membership, error) {
	return p.members.FetchMap(ctx, groupID)
}

func (p recordPorts) GroupSetExists(ctx context.Context, setID, courseID int64) (bool, error) {
	return p.sets.Exists(ctx, setID, courseID)
}

func (p recordPorts) ManualAssignmentExists(ctx context.Context, groupID, userID int64) (bool, error) {
	return p.members.ManualExists(ctx, groupID, userID)
}

type mutatorPorts struct {
	groups  *groupstore.Store
	members *membershipstore.Store
}

var _ autogroup.Mutator = mutatorPorts{}

func (p mutatorPorts) CreateGroup(ctx context.Context, rec autogroup.Record) (int64, error) {
	return p.groups.Create(ctx, rec)
}

func (p mutatorPorts) UpdateGroup(ctx context.Context, rec autogroup.Record) (bool, error) {
	return p.groups.Update(ctx, rec)
}

func (p mutatorPorts) DeleteGroup(ctx context.Context, id int64) (bool, error) {
	return p.groups.Delete(ctx, id)
}

func (p mutatorPorts) AddMember(ctx context.Context, groupID, userID int64, source string) error {
	return p.members.Add(ctx, groupID, userID, source)
}

func (p mutatorPorts) RemoveMember(ctx context.Context, groupID, userID int64) error {
	return p.members.Remove(ctx, groupID, userID)
}

var _ autogroup.ConfigSource = (*settingsstore.Store)(nil)

// entityDeps builds a fresh port bundle for one request.
func (h *Handler) entityDeps() autogroup.Deps {
	groups := groupstore.New(h.DB)
	members := membershipstore.New(h.DB)
	sets := groupsetstore.New(h.DB)

	return autogroup.Deps{
		Store:   recordPorts{groups: groups, members: members, sets: sets},
		Mutator: mutatorPorts{groups: groups, members: members},
		Config:  settingsstore.New(h.DB),
	}
}
