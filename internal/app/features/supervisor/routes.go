// internal/app/features/supervisor/routes.go
package supervisor

import (
	"github.com/punxlabs/teampulse/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the supervisor dashboard routes.
// Typically: r.Mount("/supervisor", supervisor.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(auth.RoleSupervisor))

		pr.Get("/roster", h.ServeRoster)
		pr.Post("/roster", h.HandleLink)
		pr.Delete("/roster/{employeeID}", h.HandleUnlink)

		pr.Get("/employees", h.ServeEmployees)
		pr.Get("/employees/{employeeID}", h.ServeEmployeeDetail)
		pr.Put("/employees/{employeeID}/tags/{field}", h.HandleSetTagField)
		pr.Put("/employees/{employeeID}/notes", h.HandleSaveNotes)
		pr.Delete("/employees/{employeeID}", h.HandlePurge)
	})

	return r
}
