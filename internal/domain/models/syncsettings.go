// internal/domain/models/syncsettings.go
package models

import "time"

// SyncSettings is the single service-wide settings document.
type SyncSettings struct {
	ID string `bson:"_id" json:"id"`

	// PreserveManualMembers protects members a human added from being
	// removed by automatic reconciliation.
	PreserveManualMembers bool `bson:"preserve_manual_members" json:"preserve_manual_members"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SyncSettingsID is the _id of the one settings document.
const SyncSettingsID = "settings"
