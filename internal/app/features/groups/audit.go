// internal/app/features/groups/audit.go
package groups

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/cohortsync/internal/app/store/audit"
	"github.com/dalemusser/cohortsync/internal/app/system/timeouts"
)

type auditEventResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id,omitempty"`
	SyncRunID string    `json:"sync_run_id,omitempty"`
}

type auditListResponse struct {
	GroupID int64                `json:"group_id"`
	Events  []auditEventResponse `json:"events"`
}

// AuditTrail handles GET /api/groups/{groupID}/audit. Newest events
// first; ?limit caps the result (default 100).
func (h *Handler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "groupID"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	events, err := audit.New(h.DB).ListByGroup(ctx, id, limit)
	if err != nil {
		h.Log.Error("group-audit: query failed", zap.Int64("group_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load audit trail")
		return
	}

	resp := auditListResponse{GroupID: id, Events: make([]auditEventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, auditEventResponse{
			Timestamp: e.Timestamp,
			Category:  e.Category,
			EventType: e.EventType,
			UserID:    e.UserID,
			SyncRunID: e.SyncRunID,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
