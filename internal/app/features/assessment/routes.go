// internal/app/features/assessment/routes.go
package assessment

import (
	"github.com/punxlabs/teampulse/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the assessment routes.
// Typically: r.Mount("/assessment", assessment.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/profile", h.ServeProfile)
		pr.Post("/profile", h.HandleSubmit)
	})

	return r
}
