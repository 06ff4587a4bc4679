// internal/app/features/groups/update.go
package groups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/cohortsync/internal/app/system/htmlsanitize"
	"github.com/dalemusser/cohortsync/internal/app/system/timeouts"
	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
)

// updateRequest is the body for PATCH /api/groups/{groupID}. Only the
// fields present in the body change; the id number is not editable
// through the API.
type updateRequest struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	DescriptionFormat *int64  `json:"description_format,omitempty"`
}

// Update handles PATCH /api/groups/{groupID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, http.StatusBadRequest, "name must not be blank")
		return
	}

	entity, err := autogroup.NewFromID(ctx, h.entityDeps(), id)
	if err != nil {
		var invalid *autogroup.InvalidGroupError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("update-group: load failed", zap.Int64("group_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load group")
		return
	}

	if req.Name != nil {
		entity.SetName(strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		format := entity.Attributes().DescriptionFormat
		if req.DescriptionFormat != nil {
			format = *req.DescriptionFormat
		}
		entity.SetDescription(htmlsanitize.Sanitize(*req.Description), format)
	}

	updated, err := entity.Update(ctx)
	if err != nil {
		h.Log.Error("update-group: persist failed", zap.Int64("group_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update group")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}

	h.Audit.GroupUpdated(ctx, entity.ID(), entity.CourseID(), "")
	writeJSON(w, http.StatusOK, groupResponseFor(ctx, entity))
}
