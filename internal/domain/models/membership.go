// internal/domain/models/membership.go
package models

// Membership source tags. Automatic adds carry SourceAutogroup so that
// reconciliation can tell its own rows apart from ones a human created.
const (
	SourceAutogroup = "autogroup"
	SourceManual    = "manual"
)

// Membership is the authoritative join between users and groups.
// Exactly one row per (group_id, user_id); Source records who put it there.
type Membership struct {
	ID      int64  `bson:"_id" json:"id"`
	GroupID int64  `bson:"group_id" json:"group_id"`
	UserID  int64  `bson:"user_id" json:"user_id"`
	Source  string `bson:"source" json:"source"`

	TimeAdded int64 `bson:"time_added" json:"time_added"`
}

// Manual reports whether this membership was created by a human rather
// than by automatic reconciliation.
func (m Membership) Manual() bool {
	return m.Source != SourceAutogroup
}
