// internal/app/features/meetings/routes.go
package meetings

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/meethub/internal/app/system/auth"
)

// Routes returns the meetings subrouter, mounted under /api.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/meetings", h.ListMine)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		r.Post("/meetings", h.Create)
		r.Put("/meetings/{meetingID}", h.Edit)
		r.Delete("/meetings/{meetingID}", h.Delete)
		r.Get("/users/{userID}/meetings", h.ListForUser)
	})

	return r
}
