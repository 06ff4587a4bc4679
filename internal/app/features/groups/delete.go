// internal/app/features/groups/delete.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/cohortsync/internal/app/system/timeouts"
	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
)

// Delete handles DELETE /api/groups/{groupID}. Only auto-managed
// groups are deletable through this API; a group whose id_number lost
// its marker is refused.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	entity, err := autogroup.NewFromID(ctx, h.entityDeps(), id)
	if err != nil {
		var invalid *autogroup.InvalidGroupError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("delete-group: load failed", zap.Int64("group_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load group")
		return
	}

	courseID := entity.CourseID()

	removed, err := entity.Remove(ctx)
	if err != nil {
		h.Log.Error("delete-group: remove failed", zap.Int64("group_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete group")
		return
	}
	if !removed {
		writeError(w, http.StatusConflict, "group is not auto-managed")
		return
	}

	h.Audit.GroupDeleted(ctx, id, courseID, "")
	h.Log.Info("delete-group: deleted",
		zap.Int64("group_id", id),
		zap.Int64("course_id", courseID))

	w.WriteHeader(http.StatusNoContent)
}
