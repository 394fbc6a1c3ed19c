// internal/app/features/track/routes.go
package track

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter that serves the tracking pixel.
// Typically: r.Mount("/track", track.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePixel)
	return r
}
