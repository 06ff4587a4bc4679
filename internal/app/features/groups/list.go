// internal/app/features/groups/list.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	groupstore "github.com/dalemusser/cohortsync/internal/app/store/groups"
	"github.com/dalemusser/cohortsync/internal/app/system/timeouts"
	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
)

type listResponse struct {
	CourseID int64           `json:"course_id"`
	Count    int             `json:"count"`
	Groups   []groupResponse `json:"groups"`
}

// List handles GET /api/groups?course_id=N. Every stored group in the
// course is hydrated through the raw-record entity path; rows that no
// longer validate as autogroups are skipped rather than failing the
// whole listing.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courseID, err := strconv.ParseInt(r.URL.Query().Get("course_id"), 10, 64)
	if err != nil || courseID <= 0 {
		writeError(w, http.StatusBadRequest, "course_id query parameter is required")
		return
	}

	recs, err := groupstore.New(h.DB).ListByCourse(ctx, courseID)
	if err != nil {
		h.Log.Error("list-groups: query failed", zap.Int64("course_id", courseID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list groups")
		return
	}

	deps := h.entityDeps()
	resp := listResponse{CourseID: courseID, Groups: []groupResponse{}}
	for _, rec := range recs {
		entity, err := autogroup.NewFromRecord(ctx, deps, rec)
		if err != nil {
			var invalid *autogroup.InvalidGroupError
			if errors.As(err, &invalid) {
				continue
			}
			h.Log.Error("list-groups: hydrate failed", zap.Int64("course_id", courseID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not list groups")
			return
		}
		resp.Groups = append(resp.Groups, groupResponseFor(ctx, entity))
	}
	resp.Count = len(resp.Groups)

	writeJSON(w, http.StatusOK, resp)
}
