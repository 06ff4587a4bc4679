// internal/domain/models/group.go
package models

// Group is one row in the groups collection.
//
// NOTE:
//   - Identities are int64 and allocated from the sequence store
//     (0 means the record has not been persisted yet).
//   - An auto-managed group carries an IDNumber of the form
//     "autogroup|<groupSetId>"; manually created groups carry
//     whatever id number the admin typed, usually "".
//   - Member lists are not embedded; all membership lives in the
//     group_memberships collection.
type Group struct {
	ID                int64  `bson:"_id" json:"id"`
	CourseID          int64  `bson:"course_id" json:"course_id"`
	Name              string `bson:"name" json:"name"`
	IDNumber          string `bson:"id_number" json:"id_number"`
	Description       string `bson:"description" json:"description"`
	DescriptionFormat int64  `bson:"description_format" json:"description_format"`

	// Policy attributes carried opaquely for the surrounding system.
	EnrolmentKey  string `bson:"enrolment_key" json:"-"`
	Picture       int64  `bson:"picture" json:"picture"`
	Visible       int64  `bson:"visible" json:"visible"`
	Participation int64  `bson:"participation" json:"participation"`

	// Unix seconds, matching the record shape of the upstream system.
	TimeCreated  int64 `bson:"time_created" json:"time_created"`
	TimeModified int64 `bson:"time_modified" json:"time_modified"`
}
