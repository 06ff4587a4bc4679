// internal/app/features/groups/view.go
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

// View handles GET /api/groups/{groupID}.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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
		h.Log.Error("view-group: load failed", zap.Int64("group_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load group")
		return
	}

	writeJSON(w, http.StatusOK, groupResponseFor(ctx, entity))
}

// groupResponseFor converts an entity into the API representation. A
// failed set lookup degrades to valid=false rather than failing the
// whole request.
func groupResponseFor(ctx context.Context, entity *autogroup.Group) groupResponse {
	setID, _ := entity.GroupSetID()
	valid, err := entity.IsValidAutogroup(ctx)
	if err != nil {
		valid = false
	}

	return groupResponse{
		ID:              entity.ID(),
		CourseID:        entity.CourseID(),
		Name:            entity.Name(),
		IDNumber:        entity.IDNumber(),
		GroupSetID:      setID,
		MembershipCount: entity.MembershipCount(),
		Valid:           valid,
	}
}
