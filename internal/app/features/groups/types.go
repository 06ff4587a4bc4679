// internal/app/features/groups/types.go
package groups

import (
	"encoding/json"
	"net/http"
)

// createRequest is the body for POST /api/groups.
type createRequest struct {
	CourseID          int64  `json:"course_id"`
	GroupSetID        int64  `json:"group_set_id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	DescriptionFormat int64  `json:"description_format,omitempty"`
}

// groupResponse is returned by the create and view handlers.
type groupResponse struct {
	ID              int64  `json:"id"`
	CourseID        int64  `json:"course_id"`
	Name            string `json:"name"`
	IDNumber        string `json:"id_number"`
	GroupSetID      int64  `json:"group_set_id"`
	MembershipCount int    `json:"membership_count"`
	Valid           bool   `json:"valid"`
}

// syncRequest is the body for POST /api/groups/{id}/sync. MemberIDs is
// the full desired roster for the group.
type syncRequest struct {
	MemberIDs []int64 `json:"member_ids"`
}

// syncResponse reports what one reconciliation run did.
type syncResponse struct {
	SyncRunID string `json:"sync_run_id"`
	GroupID   int64  `json:"group_id"`
	Added     int    `json:"added"`
	Removed   int    `json:"removed"`
	Preserved int    `json:"preserved"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
