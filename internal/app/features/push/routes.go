// internal/app/features/push/routes.go
package push

import "github.com/go-chi/chi/v5"

// Routes returns the push subrouter; the websocket endpoint is mounted at
// the root so clients dial /ws directly.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
