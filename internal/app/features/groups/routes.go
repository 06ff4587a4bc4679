// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter for the groups API. It is mounted under
// /api/groups by the bootstrap BuildHandler.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{groupID}", h.View)
	r.Patch("/{groupID}", h.Update)
	r.Delete("/{groupID}", h.Delete)
	r.Post("/{groupID}/sync", h.Sync)
	r.Get("/{groupID}/audit", h.AuditTrail)

	return r
}
