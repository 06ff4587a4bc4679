// internal/domain/models/groupset.go
package models

// GroupSet is the rule configuration that a family of autogroups in a
// course hangs off. The rule engine that evaluates a set's criteria is
// upstream of this service; cohortsync only needs the set's identity and
// course scope to validate the groups that reference it.
type GroupSet struct {
	ID       int64  `bson:"_id" json:"id"`
	CourseID int64  `bson:"course_id" json:"course_id"`
	Name     string `bson:"name" json:"name"`

	TimeCreated int64 `bson:"time_created" json:"time_created"`
}
