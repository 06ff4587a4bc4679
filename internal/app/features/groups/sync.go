// internal/app/features/groups/sync.go
package groups

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dalemusser/cohortsync/internal/app/system/timeouts"
	"github.com/dalemusser/cohortsync/internal/domain/autogroup"
)

// Sync handles POST /api/groups/{groupID}/sync. The request carries
// the full desired roster; the handler reconciles the stored
// memberships against it. Members added by hand are kept when the
// preserve-manual setting is on, and each decision is written to the
// audit trail under one sync run id.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entity, err := autogroup.NewFromID(ctx, h.entityDeps(), id)
	if err != nil {
		var invalid *autogroup.InvalidGroupError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("sync-group: load failed", zap.Int64("group_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load group")
		return
	}

	runID := uuid.NewString()
	resp := syncResponse{SyncRunID: runID, GroupID: id}

	desired := make(map[int64]bool, len(req.MemberIDs))
	for _, userID := range req.MemberIDs {
		desired[userID] = true
	}

	// The roster snapshot is taken before any removals so every current
	// member gets exactly one keep-or-drop decision.
	current := entity.MemberIDs()

	for _, userID := range req.MemberIDs {
		added, err := entity.EnsureMember(ctx, userID)
		if err != nil {
			h.syncFailed(w, "add", id, userID, err)
			return
		}
		if added {
			resp.Added++
			h.Audit.MemberAdded(ctx, id, userID, runID)
		}
	}

	for _, userID := range current {
		if desired[userID] {
			continue
		}
		removed, err := entity.EnsureNotMember(ctx, userID)
		if err != nil {
			h.syncFailed(w, "remove", id, userID, err)
			return
		}
		if removed {
			resp.Removed++
			h.Audit.MemberRemoved(ctx, id, userID, runID)
		} else {
			resp.Preserved++
			h.Audit.MemberPreserved(ctx, id, userID, runID)
		}
	}

	h.Log.Info("sync-group: reconciled",
		zap.Int64("group_id", id),
		zap.String("sync_run_id", runID),
		zap.Int("added", resp.Added),
		zap.Int("removed", resp.Removed),
		zap.Int("preserved", resp.Preserved))

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) syncFailed(w http.ResponseWriter, op string, groupID, userID int64, err error) {
	h.Log.Error("sync-group: "+op+" failed",
		zap.Int64("group_id", groupID),
		zap.Int64("user_id", userID),
		zap.Error(err))
	writeError(w, http.StatusInternalServerError, "reconciliation failed")
}
