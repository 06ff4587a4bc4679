// internal/app/features/groups/create.go
package groups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	groupsetstore "github.com/dalemusser/cohortsync/internal/app/store/groupsets"
	"github.com/dalemusser/cohortsync/internal/app/system/htmlsanitize"
	"github.com/dalemusser/cohortsync/internal/app/system/timeouts"
	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
)

// Create handles POST /api/groups. It builds a new auto-managed group
// for the requested group set and persists it.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	switch {
	case req.CourseID <= 0:
		writeError(w, http.StatusBadRequest, "course_id is required")
		return
	case req.GroupSetID <= 0:
		writeError(w, http.StatusBadRequest, "group_set_id is required")
		return
	case req.Name == "":
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	// The group set must belong to the course before we mint an
	// id_number pointing at it.
	sets := groupsetstore.New(h.DB)
	ok, err := sets.Exists(ctx, req.GroupSetID, req.CourseID)
	if err != nil {
		h.Log.Error("create-group: group set lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "group set lookup failed")
		return
	}
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "group set not found in course")
		return
	}

	rec := autogroup.Record{
		"course_id":          req.CourseID,
		"name":               req.Name,
		"id_number":          autogroup.IDNumberFor(req.GroupSetID),
		"description":        htmlsanitize.Sanitize(req.Description),
		"description_format": req.DescriptionFormat,
	}

	entity, err := autogroup.NewFromRecord(ctx, h.entityDeps(), rec)
	if err != nil {
		var invalid *autogroup.InvalidGroupError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.Log.Error("create-group: build failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not build group")
		return
	}

	if err := entity.Create(ctx); err != nil {
		h.Log.Error("create-group: persist failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create group")
		return
	}

	h.Audit.GroupCreated(ctx, entity.ID(), entity.CourseID(), "")
	h.Log.Info("create-group: created",
		zap.Int64("group_id", entity.ID()),
		zap.Int64("course_id", entity.CourseID()))

	writeJSON(w, http.StatusCreated, groupResponseFor(ctx, entity))
}
